package paymentform

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/checkoutform/lib/myerrors"
	"github.com/MarcGrol/checkoutform/lib/mylog"
	"github.com/MarcGrol/checkoutform/lib/mystore"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
	"github.com/MarcGrol/checkoutform/services/checkoutapi"
	"github.com/MarcGrol/checkoutform/services/paymentform/paymentevents"
)

const (
	formUID = "form_123"
	cartUID = "cart_123"
)

var (
	cart1 = cartmodel.Cart{UID: cartUID, CreatedAt: mytime.ExampleTime, Items: []cartmodel.CartItem{
		{UID: "product_hockey_stick", Description: "Hockey stick", Price: decimal.RequireFromString("19.99")},
		{UID: "product_tennis_balls", Description: "Tennis balls", Price: decimal.RequireFromString("5.00")},
	}}
	validBilling = BillingDetails{
		Name:         "Marc Grol",
		Email:        "marc.grol@gmail.com",
		AddressLine1: "Heemdstrakwartier 79",
		City:         "De Bilt",
		PostalCode:   "3731TB",
		Country:      "NL",
		Phone:        "+31648928856",
	}
)

type cartReaderStub map[string]cartmodel.Cart

func (s cartReaderStub) GetCart(c context.Context, cartUID string) (cartmodel.Cart, error) {
	cart, found := s[cartUID]
	if !found {
		return cartmodel.Cart{}, myerrors.NewNotFoundError(fmt.Errorf("cart with uid %s not found", cartUID))
	}
	return cart, nil
}

type navigatorSpy struct {
	paths  []string
	alerts []string
}

func (n *navigatorSpy) GoTo(path string) {
	n.paths = append(n.paths, path)
}

func (n *navigatorSpy) Alert(message string) {
	n.alerts = append(n.alerts, message)
}

type silentNavigatorSpy struct {
	paths []string
}

func (n *silentNavigatorSpy) GoTo(path string) {
	n.paths = append(n.paths, path)
}

type testContext struct {
	ctx       context.Context
	sut       *service
	formStore mystore.Store[FormState]
	tokenizer *MockTokenizer
	submitter *checkoutapi.MockSubmitter
	notifier  *MockSuccessNotifier
	uuider    *myuuid.MockUUIDer
}

func setupService(t *testing.T, ctrl *gomock.Controller, carts cartReaderStub) testContext {
	c := context.TODO()
	formStore, formStoreCleanup, err := mystore.New[FormState](c)
	require.NoError(t, err)
	t.Cleanup(formStoreCleanup)

	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider := myuuid.NewMockUUIDer(ctrl)
	tokenizer := NewMockTokenizer(ctrl)
	submitter := checkoutapi.NewMockSubmitter(ctrl)
	notifier := NewMockSuccessNotifier(ctrl)

	sut := newService(formStore, carts, tokenizer, submitter, DefaultSuccessAlert, nower, uuider, mylog.New("paymentform"), notifier)

	return testContext{
		ctx:       c,
		sut:       sut,
		formStore: formStore,
		tokenizer: tokenizer,
		submitter: submitter,
		notifier:  notifier,
		uuider:    uuider,
	}
}

func givenForm(t *testing.T, tc testContext, billing BillingDetails) {
	err := tc.formStore.Put(tc.ctx, formUID, FormState{
		UID:       formUID,
		CartUID:   cartUID,
		Billing:   billing,
		State:     SubmissionStateIdle,
		CreatedAt: mytime.ExampleTime,
	})
	require.NoError(t, err)
}

func TestMount(t *testing.T) {

	t.Run("Mount starts empty and idle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		tc.uuider.EXPECT().Create().Return(formUID)

		// when
		form, err := tc.sut.mount(tc.ctx, cartUID)

		// then
		require.NoError(t, err)
		assert.Equal(t, formUID, form.UID)
		assert.Equal(t, BillingDetails{}, form.Billing)
		assert.Equal(t, SubmissionStateIdle, form.State)
		assert.False(t, form.HasError())
		assert.False(t, form.IsSubmitDisabled())
		_, found, _ := tc.formStore.Get(tc.ctx, formUID)
		assert.True(t, found)
	})

	t.Run("Mount for unknown cart", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{})

		// when
		_, err := tc.sut.mount(tc.ctx, cartUID)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})
}

func TestUpdateField(t *testing.T) {

	t.Run("Only the named field changes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)

		// when
		form, err := tc.sut.updateField(tc.ctx, formUID, FieldCity, "Utrecht")

		// then
		require.NoError(t, err)
		expected := validBilling
		expected.City = "Utrecht"
		assert.Equal(t, expected, form.Billing)
		assert.Equal(t, "De Bilt", validBilling.City)
	})

	t.Run("No validation while typing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, BillingDetails{})

		// when
		form, err := tc.sut.updateField(tc.ctx, formUID, FieldEmail, "not-an-email")

		// then
		require.NoError(t, err)
		assert.Equal(t, "not-an-email", form.Billing.Email)
		assert.False(t, form.HasError())
	})

	t.Run("Unknown field", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)

		// when
		_, err := tc.sut.updateField(tc.ctx, formUID, "iban", "NL91ABNA0417164300")

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		stored, _, _ := tc.formStore.Get(tc.ctx, formUID)
		assert.Equal(t, validBilling, stored.Billing)
	})

	t.Run("Unknown form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// when
		_, err := tc.sut.updateField(tc.ctx, formUID, FieldCity, "Utrecht")

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})

	t.Run("Update a subset of fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)

		// when
		form, err := tc.sut.updateFields(tc.ctx, formUID, BillingDetails{Name: "Eva Grol", City: "Utrecht"}, []string{FieldName})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Eva Grol", form.Billing.Name)
		assert.Equal(t, "De Bilt", form.Billing.City)
	})
}

func TestSubmit(t *testing.T) {

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), "tok_visa", validBilling).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		tc.submitter.EXPECT().Submit(gomock.Any(), checkoutapi.CheckoutRequest{
			PaymentMethodID: "pm_123",
			Amount:          "24.99",
			Currency:        "usd",
			BillingDetails:  validBilling.toCheckoutAPI(),
			Email:           validBilling.Email,
		}).Return(nil)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), paymentevents.PaymentSucceeded{
			FormUID:         formUID,
			CartUID:         cartUID,
			PaymentMethodID: "pm_123",
			Amount:          "24.99",
			AmountInCents:   2499,
			Currency:        "usd",
		}).Return(nil)
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, navigator)

		// then
		require.NoError(t, err)
		assert.Equal(t, SubmissionStateSucceeded, form.State)
		assert.False(t, form.InProgress)
		assert.Equal(t, []string{"/PaymentMethod"}, navigator.paths)
		assert.Equal(t, []string{"Payment processed successfully"}, navigator.alerts)
		_, found, _ := tc.formStore.Get(tc.ctx, formUID)
		assert.False(t, found)
	})

	t.Run("Success without alert support", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), "tok_visa", validBilling).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(nil)
		navigator := &silentNavigatorSpy{}

		// when
		_, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, navigator)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"/PaymentMethod"}, navigator.paths)
	})

	t.Run("Failing notification does not fail the payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(fmt.Errorf("pubsub down"))
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, navigator)

		// then
		require.NoError(t, err)
		assert.Equal(t, SubmissionStateSucceeded, form.State)
		assert.Equal(t, []string{"/PaymentMethod"}, navigator.paths)
	})

	t.Run("Amount is rounded half-up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: {UID: cartUID, Items: []cartmodel.CartItem{
			{UID: "a", Price: decimal.RequireFromString("10.005")},
			{UID: "b", Price: decimal.RequireFromString("5")},
		}}})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		var submitted checkoutapi.CheckoutRequest
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(c context.Context, req checkoutapi.CheckoutRequest) error {
				submitted = req
				return nil
			})
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(nil)

		// when
		_, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		require.NoError(t, err)
		assert.Equal(t, "15.01", submitted.Amount)
	})

	t.Run("Submits trimmed billing details", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		padded := validBilling
		padded.Name = "  Marc Grol "
		givenForm(t, tc, padded)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), "tok_visa", validBilling).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(nil)

		// when
		_, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		require.NoError(t, err)
	})

	t.Run("Validation failure never reaches the tokenizer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		invalid := validBilling
		invalid.Name = "   "
		invalid.Email = "marc.grol"
		givenForm(t, tc, invalid)
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, navigator)

		// then
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 2)
		assert.Equal(t, "Name is required, Invalid email", err.Error())
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.Equal(t, "Name is required, Invalid email", form.ErrorMessage)
		assert.Equal(t, map[string]string{"name": "Name is required", "email": "Invalid email"}, form.Violations)
		assert.False(t, form.InProgress)
		assert.Equal(t, invalid, form.Billing)
		assert.Empty(t, navigator.paths)
	})

	t.Run("Missing card token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{}, &navigatorSpy{})

		// then
		var tokenizationErr *TokenizationError
		require.ErrorAs(t, err, &tokenizationErr)
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.False(t, form.InProgress)
	})

	t.Run("Card error reported by the browser is shown verbatim", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{ProviderError: "Your card number is incomplete."}, navigator)

		// then
		var tokenizationErr *TokenizationError
		require.ErrorAs(t, err, &tokenizationErr)
		assert.Equal(t, "Your card number is incomplete.", err.Error())
		assert.Equal(t, http.StatusPaymentRequired, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "Your card number is incomplete.", form.ErrorMessage)
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.False(t, form.InProgress)
		assert.Empty(t, navigator.paths)
	})

	t.Run("Panicking tokenizer releases the form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		gomock.InOrder(
			tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(c context.Context, cardToken string, billing BillingDetails) (TokenizeResult, error) {
					panic("nil map")
				}),
			tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(TokenizeResult{ErrorMessage: "Your card was declined."}, nil),
		)

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, myerrors.GetHTTPStatus(err))
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.False(t, form.InProgress)

		stored, found, err := tc.formStore.Get(tc.ctx, formUID)
		require.NoError(t, err)
		require.True(t, found)
		assert.False(t, stored.InProgress)
		assert.Equal(t, SubmissionStateFailed, stored.State)

		_, err = tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_chargeDeclined"}, &navigatorSpy{})
		var tokenizationErr *TokenizationError
		assert.ErrorAs(t, err, &tokenizationErr)
		assert.NotEqual(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
	})

	t.Run("Tokenization error keeps the provider message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), "tok_chargeDeclined", validBilling).
			Return(TokenizeResult{ErrorMessage: "Your card was declined."}, nil)
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_chargeDeclined"}, navigator)

		// then
		var tokenizationErr *TokenizationError
		require.ErrorAs(t, err, &tokenizationErr)
		assert.Equal(t, "Your card was declined.", err.Error())
		assert.Equal(t, http.StatusPaymentRequired, myerrors.GetHTTPStatus(err))
		assert.Equal(t, "Your card was declined.", form.ErrorMessage)
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.False(t, form.InProgress)
		assert.Empty(t, navigator.paths)
	})

	t.Run("Tokenizer transport error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(TokenizeResult{}, fmt.Errorf("connection refused"))

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		var tokenizationErr *TokenizationError
		require.ErrorAs(t, err, &tokenizationErr)
		assert.Equal(t, SubmissionStateFailed, form.State)
	})

	t.Run("Checkout service rejects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(&checkoutapi.StatusError{HTTPStatus: 500, Body: `{"error":"boom"}`})
		navigator := &navigatorSpy{}

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, navigator)

		// then
		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		var statusErr *checkoutapi.StatusError
		assert.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, myerrors.GetHTTPStatus(err))
		assert.Equal(t, SubmissionStateFailed, form.State)
		assert.Equal(t, err.Error(), form.ErrorMessage)
		assert.False(t, form.InProgress)
		assert.Equal(t, validBilling, form.Billing)
		assert.Empty(t, navigator.paths)
		assert.Empty(t, navigator.alerts)
	})

	t.Run("Retry after failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		gomock.InOrder(
			tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(TokenizeResult{ErrorMessage: "Your card was declined."}, nil),
			tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(TokenizeResult{PaymentMethodID: "pm_123"}, nil),
		)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(nil)

		// when
		failed, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_chargeDeclined"}, &navigatorSpy{})
		require.Error(t, err)
		assert.Equal(t, 1, failed.Attempts)

		succeeded, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, succeeded.Attempts)
		assert.False(t, succeeded.HasError())
	})

	t.Run("Second submit while in progress is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// given
		givenForm(t, tc, validBilling)
		tokenizing := make(chan struct{})
		release := make(chan struct{})
		tc.tokenizer.EXPECT().CreatePaymentMethod(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(c context.Context, cardToken string, billing BillingDetails) (TokenizeResult, error) {
				close(tokenizing)
				<-release
				return TokenizeResult{PaymentMethodID: "pm_123"}, nil
			}).Times(1)
		tc.submitter.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(nil).Times(1)
		tc.notifier.EXPECT().NotifySuccess(gomock.Any(), gomock.Any()).Return(nil)

		firstErr := make(chan error)
		go func() {
			_, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})
			firstErr <- err
		}()
		<-tokenizing

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		assert.True(t, form.InProgress)
		assert.Equal(t, "Processing...", form.SubmitLabel())

		close(release)
		assert.NoError(t, <-firstErr)
	})

	t.Run("Submit unknown form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

		// when
		form, err := tc.sut.submit(tc.ctx, formUID, CardInput{Token: "tok_visa"}, &navigatorSpy{})

		// then
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
		assert.Empty(t, form.UID)
	})
}

func TestDiscard(t *testing.T) {
	ctrl := gomock.NewController(t)
	tc := setupService(t, ctrl, cartReaderStub{cartUID: cart1})

	// given
	givenForm(t, tc, validBilling)

	// when
	err := tc.sut.discard(tc.ctx, formUID)

	// then
	require.NoError(t, err)
	_, err = tc.sut.getForm(tc.ctx, formUID)
	assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
}
