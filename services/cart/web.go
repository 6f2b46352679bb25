package cart

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/checkoutform/lib/mycontext"
	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/lib/myhttp"
	"github.com/MarcGrol/checkoutform/lib/mylog"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(store mystore.Store[cartmodel.Cart], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("cart")
	return &webService{
		service: newService(store, nower, uuider, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/", s.cartListPage()).Methods("GET")
	router.HandleFunc("/cart", s.cartListPage()).Methods("GET")
	router.HandleFunc("/cart", s.createNewCartPage()).Methods("POST")
	router.HandleFunc("/cart/{cartUID}", s.cartDetailsPage()).Methods("GET")
	router.HandleFunc("/cart/{cartUID}/item", s.addItemPage()).Methods("POST")
}

// GetCart gives the checkout form read-only access to a cart.
func (s *webService) GetCart(c context.Context, cartUID string) (cartmodel.Cart, error) {
	return s.service.getCart(c, cartUID)
}

//go:embed templates
var templateFolder embed.FS
var (
	cartListPageTemplate   *template.Template
	cartDetailPageTemplate *template.Template
)

func init() {
	cartListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart_list.html"))
	cartDetailPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart_detail.html"))
}

func (s *webService) cartListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		carts, err := s.service.listCarts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = cartListPageTemplate.Execute(w, carts)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) createNewCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart, err := s.service.createNewCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/cart/%s", myhttp.HostnameWithScheme(r), cart.UID), http.StatusSeeOther)
	}
}

func (s *webService) cartDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cartUID := mux.Vars(r)["cartUID"]

		cart, err := s.service.getCart(c, cartUID)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = cartDetailPageTemplate.Execute(w, cart)
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *webService) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cartUID := mux.Vars(r)["cartUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 6, myerrors.NewInvalidInputError(err))
			return
		}

		cart, err := s.service.addItem(c, cartUID, r.Form.Get("description"), r.Form.Get("price"))
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		http.Redirect(w, r, fmt.Sprintf("%s/cart/%s", myhttp.HostnameWithScheme(r), cart.UID), http.StatusSeeOther)
	}
}
