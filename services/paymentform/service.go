package paymentform

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/lib/mylog"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
	"github.com/MarcGrol/checkoutform/services/checkoutapi"
	"github.com/MarcGrol/checkoutform/services/paymentform/paymentevents"
)

const DefaultSuccessAlert = "Payment processed successfully"

type CartReader interface {
	GetCart(c context.Context, cartUID string) (cartmodel.Cart, error)
}

type service struct {
	formStore    mystore.Store[FormState]
	carts        CartReader
	tokenizer    Tokenizer
	submitter    checkoutapi.Submitter
	notifiers    []SuccessNotifier
	successAlert string
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(formStore mystore.Store[FormState], carts CartReader, tokenizer Tokenizer, submitter checkoutapi.Submitter,
	successAlert string, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, notifiers ...SuccessNotifier) *service {
	return &service{
		formStore:    formStore,
		carts:        carts,
		tokenizer:    tokenizer,
		submitter:    submitter,
		notifiers:    notifiers,
		successAlert: successAlert,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

func (s *service) mount(c context.Context, cartUID string) (FormState, error) {
	_, err := s.carts.GetCart(c, cartUID)
	if err != nil {
		return FormState{}, err
	}

	form := FormState{
		UID:       s.uuider.Create(),
		CartUID:   cartUID,
		State:     SubmissionStateIdle,
		CreatedAt: s.nower.Now(),
	}

	s.logger.Log(c, form.UID, mylog.SeverityInfo, "Mount checkout form %s for cart %s", form.UID, cartUID)

	err = s.formStore.Put(c, form.UID, form)
	if err != nil {
		return FormState{}, myerrors.NewInternalError(err)
	}

	return form, nil
}

func (s *service) getForm(c context.Context, formUID string) (FormState, error) {
	form, found, err := s.formStore.Get(c, formUID)
	if err != nil {
		return FormState{}, myerrors.NewInternalError(err)
	}
	if !found {
		return FormState{}, myerrors.NewNotFoundError(fmt.Errorf("checkout form with uid %s not found", formUID))
	}
	return form, nil
}

func (s *service) discard(c context.Context, formUID string) error {
	s.logger.Log(c, formUID, mylog.SeverityInfo, "Discard checkout form %s", formUID)

	err := s.formStore.Delete(c, formUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

// updateField replaces a single billing field and leaves every other field untouched.
func (s *service) updateField(c context.Context, formUID string, fieldName string, value string) (FormState, error) {
	return s.modifyForm(c, formUID, func(form *FormState) error {
		billing, err := form.Billing.With(fieldName, value)
		if err != nil {
			return err
		}
		form.Billing = billing
		return nil
	})
}

// updateFields applies the named fields of the posted billing details one field at a time.
func (s *service) updateFields(c context.Context, formUID string, posted BillingDetails, fieldNames []string) (FormState, error) {
	return s.modifyForm(c, formUID, func(form *FormState) error {
		billing := form.Billing
		for _, fieldName := range fieldNames {
			var err error
			billing, err = billing.With(fieldName, posted.Get(fieldName))
			if err != nil {
				return err
			}
		}
		form.Billing = billing
		return nil
	})
}

// CardInput is what the card widget in the browser produced: a token, or the provider's reason for not producing one.
type CardInput struct {
	Token         string
	ProviderError string
}

type attempt struct {
	form            FormState
	billing         BillingDetails
	card            CardInput
	amount          string
	paymentMethodID string
}

type stage struct {
	state SubmissionState
	run   func(c context.Context, a *attempt) error
}

// submitSequence lists the stages of a submit in order. Each stage is an exit point.
func (s *service) submitSequence() []stage {
	return []stage{
		{state: SubmissionStateValidating, run: s.validate},
		{state: SubmissionStateTokenizing, run: s.tokenize},
		{state: SubmissionStateSubmitting, run: s.submitCheckout},
	}
}

func (s *service) submit(c context.Context, formUID string, card CardInput, navigator Navigator) (updated FormState, err error) {
	form, err := s.startAttempt(c, formUID)
	if err != nil {
		return form, err
	}

	a := &attempt{
		form: form,
		card: card,
	}

	// A panicking collaborator must not leave the form claimed forever.
	defer func() {
		if r := recover(); r != nil {
			s.logger.Log(c, formUID, mylog.SeverityError, "Panic during submit of form %s: %v", formUID, r)
			updated, err = s.failAttempt(c, a.form, myerrors.NewInternalError(fmt.Errorf("payment could not be processed: %v", r)))
		}
	}()

	for _, st := range s.submitSequence() {
		err = s.transition(c, &a.form, st.state)
		if err != nil {
			return s.failAttempt(c, a.form, err)
		}

		err = st.run(c, a)
		if err != nil {
			return s.failAttempt(c, a.form, err)
		}
	}

	return s.completeAttempt(c, a, navigator)
}

// startAttempt claims the form for this submit; a second submit while one is running is refused.
func (s *service) startAttempt(c context.Context, formUID string) (FormState, error) {
	var form FormState
	err := s.formStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		form, found, err = s.formStore.Get(c, formUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout form with uid %s not found", formUID))
		}
		if form.InProgress {
			return myerrors.NewConflictError(fmt.Errorf("a payment for this form is already being processed"))
		}

		now := s.nower.Now()
		form.InProgress = true
		form.Attempts++
		form.ErrorMessage = ""
		form.Violations = nil
		form.LastModified = &now

		err = s.formStore.Put(c, formUID, form)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return form, err
	}

	s.logger.Log(c, formUID, mylog.SeverityInfo, "Start submit attempt %d of form %s", form.Attempts, formUID)

	return form, nil
}

func (s *service) transition(c context.Context, form *FormState, next SubmissionState) error {
	s.logger.Log(c, form.UID, mylog.SeverityInfo, "Form %s: %s -> %s", form.UID, form.State, next)

	form.State = next
	_, err := s.modifyForm(c, form.UID, func(stored *FormState) error {
		stored.State = next
		return nil
	})
	return err
}

func (s *service) validate(c context.Context, a *attempt) error {
	err := validateBilling(a.form.Billing)
	if err != nil {
		return err
	}
	a.billing = a.form.Billing.Trimmed()

	cart, err := s.carts.GetCart(c, a.form.CartUID)
	if err != nil {
		return err
	}
	a.amount = TotalAmount(cart)

	return nil
}

func (s *service) tokenize(c context.Context, a *attempt) error {
	if a.card.ProviderError != "" {
		return &TokenizationError{Message: a.card.ProviderError}
	}
	if a.card.Token == "" {
		return &TokenizationError{Message: "Card details are incomplete"}
	}

	result, err := s.tokenizer.CreatePaymentMethod(c, a.card.Token, a.billing)
	if err != nil {
		return &TokenizationError{Message: err.Error()}
	}
	if result.ErrorMessage != "" {
		return &TokenizationError{Message: result.ErrorMessage}
	}
	if result.PaymentMethodID == "" {
		return &TokenizationError{Message: "Payment provider returned no payment method"}
	}

	a.paymentMethodID = result.PaymentMethodID

	return nil
}

func (s *service) submitCheckout(c context.Context, a *attempt) error {
	err := s.submitter.Submit(c, checkoutapi.CheckoutRequest{
		PaymentMethodID: a.paymentMethodID,
		Amount:          a.amount,
		Currency:        checkoutapi.CurrencyUSD,
		BillingDetails:  a.billing.toCheckoutAPI(),
		Email:           a.billing.Email,
	})
	if err != nil {
		return &SubmissionError{Err: err}
	}
	return nil
}

// failAttempt records the failure and hands the form back for input; typed values stay as they are.
func (s *service) failAttempt(c context.Context, form FormState, cause error) (FormState, error) {
	s.logger.Log(c, form.UID, mylog.SeverityWarn, "Submit attempt %d of form %s failed in state %s: %s", form.Attempts, form.UID, form.State, cause)

	failed, err := s.modifyForm(c, form.UID, func(stored *FormState) error {
		stored.State = SubmissionStateFailed
		stored.ErrorMessage = cause.Error()
		stored.InProgress = false

		var validationErr *ValidationError
		if errors.As(cause, &validationErr) {
			stored.Violations = validationErr.ViolationsByField()
		}
		return nil
	})
	if err != nil {
		return form, err
	}

	return failed, cause
}

func (s *service) completeAttempt(c context.Context, a *attempt, navigator Navigator) (FormState, error) {
	form := a.form
	form.State = SubmissionStateSucceeded
	form.InProgress = false

	s.logger.Log(c, form.UID, mylog.SeverityInfo, "Form %s: %s -> %s (payment method %s, amount %s %s)",
		form.UID, a.form.State, form.State, a.paymentMethodID, a.amount, checkoutapi.CurrencyUSD)

	err := s.formStore.Delete(c, form.UID)
	if err != nil {
		s.logger.Log(c, form.UID, mylog.SeverityError, "Error discarding form %s: %s", form.UID, err)
	}

	event := paymentevents.PaymentSucceeded{
		FormUID:         form.UID,
		CartUID:         form.CartUID,
		PaymentMethodID: a.paymentMethodID,
		Amount:          a.amount,
		AmountInCents:   amountInCents(a.amount),
		Currency:        checkoutapi.CurrencyUSD,
	}
	for _, notifier := range s.notifiers {
		// The payment went through: a failing notification must not turn it into a failure.
		err := notifier.NotifySuccess(c, event)
		if err != nil {
			s.logger.Log(c, form.UID, mylog.SeverityError, "Error notifying success of form %s: %s", form.UID, err)
		}
	}

	if navigator != nil {
		if alerter, ok := navigator.(Alerter); ok && s.successAlert != "" {
			alerter.Alert(s.successAlert)
		}
		navigator.GoTo(PostPurchaseRoute)
	}

	return form, nil
}

func (s *service) modifyForm(c context.Context, formUID string, modify func(form *FormState) error) (FormState, error) {
	var form FormState
	err := s.formStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		var err error
		form, found, err = s.formStore.Get(c, formUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout form with uid %s not found", formUID))
		}

		err = modify(&form)
		if err != nil {
			return err
		}

		now := s.nower.Now()
		form.LastModified = &now

		err = s.formStore.Put(c, formUID, form)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return FormState{}, err
	}

	return form, nil
}
