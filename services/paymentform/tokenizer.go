package paymentform

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentmethod"
)

// TokenizeResult mirrors the provider response: either a payment-method id or an error message.
type TokenizeResult struct {
	PaymentMethodID string
	ErrorMessage    string
}

//go:generate mockgen -source=tokenizer.go -package paymentform -destination tokenizer_mock.go Tokenizer
type Tokenizer interface {
	CreatePaymentMethod(c context.Context, cardToken string, billing BillingDetails) (TokenizeResult, error)
}

type stripeTokenizer struct {
	client paymentmethod.Client
}

func NewStripeTokenizer(apiKey string) Tokenizer {
	return newStripeTokenizer(apiKey, stripe.GetBackend(stripe.APIBackend))
}

func newStripeTokenizer(apiKey string, backend stripe.Backend) *stripeTokenizer {
	return &stripeTokenizer{
		client: paymentmethod.Client{
			B:   backend,
			Key: apiKey,
		},
	}
}

// CreatePaymentMethod exchanges the card token produced by Stripe Elements in the browser
// for a payment method. Raw card data never passes through here.
func (t *stripeTokenizer) CreatePaymentMethod(c context.Context, cardToken string, billing BillingDetails) (TokenizeResult, error) {
	params := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(cardToken),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:  stripe.String(billing.Name),
			Email: stripe.String(billing.Email),
			Phone: stripe.String(billing.Phone),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(billing.AddressLine1),
				City:       stripe.String(billing.City),
				PostalCode: stripe.String(billing.PostalCode),
				Country:    stripe.String(billing.Country),
			},
		},
	}
	params.Context = c

	pm, err := t.client.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return TokenizeResult{ErrorMessage: stripeErr.Msg}, nil
		}
		return TokenizeResult{}, fmt.Errorf("error creating stripe payment method: %w", err)
	}

	return TokenizeResult{PaymentMethodID: pm.ID}, nil
}
