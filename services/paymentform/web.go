package paymentform

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutform/lib/mycontext"
	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/lib/myhttp"
	"github.com/MarcGrol/checkoutform/lib/mylog"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
	"github.com/MarcGrol/checkoutform/services/checkoutapi"
)

type Config struct {
	PublishableKey string
	SuccessAlert   bool
}

type webService struct {
	service        *service
	carts          CartReader
	publishableKey string
	formDecoder    *form.Decoder
	logger         mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(cfg Config, store mystore.Store[FormState], carts CartReader, tokenizer Tokenizer, submitter checkoutapi.Submitter,
	nower mytime.Nower, uuider myuuid.UUIDer, notifiers ...SuccessNotifier) *webService {
	logger := mylog.New("paymentform")
	successAlert := ""
	if cfg.SuccessAlert {
		successAlert = DefaultSuccessAlert
	}
	return &webService{
		service:        newService(store, carts, tokenizer, submitter, successAlert, nower, uuider, logger, notifiers...),
		carts:          carts,
		publishableKey: cfg.PublishableKey,
		formDecoder:    form.NewDecoder(),
		logger:         logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/cart/{cartUID}/checkout", s.mountFormPage()).Methods("GET")
	router.HandleFunc("/checkout/{formUID}", s.formPage()).Methods("GET")
	router.HandleFunc("/checkout/{formUID}", s.submitPage()).Methods("POST")
	router.HandleFunc("/checkout/{formUID}", s.discardPage()).Methods("DELETE")
	router.HandleFunc("/checkout/{formUID}/field", s.updateFieldPage()).Methods("POST")
	router.HandleFunc(PostPurchaseRoute, s.paymentMethodPage()).Methods("GET")
}

//go:embed templates
var templateFolder embed.FS
var (
	checkoutFormPageTemplate  *template.Template
	paymentMethodPageTemplate *template.Template
)

func init() {
	checkoutFormPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/checkout_form.html"))
	paymentMethodPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/payment_method.html"))
}

type fieldView struct {
	Name      string
	Label     string
	InputType string
	Value     string
	Violation string
}

type checkoutFormPageData struct {
	Form           FormState
	Cart           cartmodel.Cart
	Amount         string
	Currency       string
	ErrorMessage   string
	Fields         []fieldView
	PublishableKey string
}

func (s *webService) pageData(c context.Context, form FormState, err error) checkoutFormPageData {
	data := checkoutFormPageData{
		Form:           form,
		Currency:       strings.ToUpper(checkoutapi.CurrencyUSD),
		ErrorMessage:   form.ErrorMessage,
		PublishableKey: s.publishableKey,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	cart, cartErr := s.carts.GetCart(c, form.CartUID)
	if cartErr != nil {
		s.logger.Log(c, form.UID, mylog.SeverityWarn, "Error fetching cart %s of form %s: %s", form.CartUID, form.UID, cartErr)
	} else {
		data.Cart = cart
		data.Amount = TotalAmount(cart)
	}

	for _, fieldName := range FieldNames {
		inputType := "text"
		switch fieldName {
		case FieldEmail:
			inputType = "email"
		case FieldPhone:
			inputType = "tel"
		}
		data.Fields = append(data.Fields, fieldView{
			Name:      fieldName,
			Label:     fieldLabels[fieldName],
			InputType: inputType,
			Value:     form.Billing.Get(fieldName),
			Violation: form.Violations[fieldName],
		})
	}

	return data
}

func (s *webService) renderForm(c context.Context, w http.ResponseWriter, httpStatus int, form FormState, err error) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(httpStatus)
	err = checkoutFormPageTemplate.Execute(w, s.pageData(c, form, err))
	if err != nil {
		s.logger.Log(c, form.UID, mylog.SeverityError, "Error rendering checkout form %s: %s", form.UID, err)
	}
}

func (s *webService) mountFormPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cartUID := mux.Vars(r)["cartUID"]

		form, err := s.service.mount(c, cartUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/checkout/%s", myhttp.HostnameWithScheme(r), form.UID), http.StatusSeeOther)
	}
}

func (s *webService) formPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		formUID := mux.Vars(r)["formUID"]

		form, err := s.service.getForm(c, formUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		s.renderForm(c, w, http.StatusOK, form, nil)
	}
}

type fieldUpdateRequest struct {
	Field string `json:"field" form:"field"`
	Value string `json:"value" form:"value"`
}

func (s *webService) decodeFieldUpdate(r *http.Request) (fieldUpdateRequest, error) {
	req := fieldUpdateRequest{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			return req, myerrors.NewInvalidInputError(fmt.Errorf("error parsing field update: %s", err))
		}
		return req, nil
	}

	err := r.ParseForm()
	if err != nil {
		return req, myerrors.NewInvalidInputError(err)
	}
	err = s.formDecoder.Decode(&req, r.PostForm)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding field update: %s", err))
	}
	return req, nil
}

func (s *webService) updateFieldPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		formUID := mux.Vars(r)["formUID"]

		req, err := s.decodeFieldUpdate(r)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		form, err := s.service.updateField(c, formUID, req.Field, req.Value)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, form.Billing)
	}
}

func (s *webService) submitPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		formUID := mux.Vars(r)["formUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(err))
			return
		}

		posted := BillingDetails{}
		err = s.formDecoder.Decode(&posted, r.PostForm)
		if err != nil {
			errorWriter.WriteError(c, w, 6, myerrors.NewInvalidInputError(fmt.Errorf("error decoding billing details: %s", err)))
			return
		}

		postedFields := []string{}
		for _, fieldName := range FieldNames {
			if _, found := r.PostForm[fieldName]; found {
				postedFields = append(postedFields, fieldName)
			}
		}

		if len(postedFields) > 0 {
			_, err = s.service.updateFields(c, formUID, posted, postedFields)
			if err != nil {
				errorWriter.WriteError(c, w, 7, err)
				return
			}
		}

		form, err := s.service.submit(c, formUID, CardInput{
			Token:         r.PostForm.Get("cardToken"),
			ProviderError: r.PostForm.Get("cardError"),
		}, newBrowserNavigator(w, r))
		if err != nil {
			if form.UID == "" {
				errorWriter.WriteError(c, w, 8, err)
				return
			}
			s.renderForm(c, w, myerrors.GetHTTPStatus(err), form, err)
			return
		}
	}
}

func (s *webService) discardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		formUID := mux.Vars(r)["formUID"]

		err := s.service.discard(c, formUID)
		if err != nil {
			errorWriter.WriteError(c, w, 9, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Checkout form %s discarded", formUID),
		})
	}
}

func (s *webService) paymentMethodPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		flash := myhttp.PopFlash(w, r)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := paymentMethodPageTemplate.Execute(w, struct {
			Alert string
		}{
			Alert: flash,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 10, myerrors.NewInternalError(err))
			return
		}
	}
}
