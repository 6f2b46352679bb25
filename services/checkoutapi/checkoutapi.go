package checkoutapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/MarcGrol/checkoutform/lib/myhttpclient"
)

const (
	DefaultEndpointURL = "https://ottomonbackend-l-f8a1.vercel.app/checkout"
	CurrencyUSD        = "usd"
	maxBodyExcerpt     = 200
)

// BillingDetails travels verbatim as entered on the form.
type BillingDetails struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// CheckoutRequest is the body of the checkout call. Amount is a decimal string in
// major units ("24.99"), not cents: that is what the receiving endpoint expects.
type CheckoutRequest struct {
	PaymentMethodID string         `json:"paymentMethodId"`
	Amount          string         `json:"amount"`
	Currency        string         `json:"currency"`
	BillingDetails  BillingDetails `json:"billingDetails"`
	Email           string         `json:"email"`
}

//go:generate mockgen -source=checkoutapi.go -package checkoutapi -destination submitter_mock.go Submitter
type Submitter interface {
	Submit(c context.Context, req CheckoutRequest) error
}

type client struct {
	sender      myhttpclient.HTTPSender
	endpointURL string
}

func NewClient(sender myhttpclient.HTTPSender, endpointURL string) Submitter {
	if endpointURL == "" {
		endpointURL = DefaultEndpointURL
	}
	return &client{
		sender:      sender,
		endpointURL: endpointURL,
	}
}

func (cl *client) Submit(c context.Context, req CheckoutRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("error marshalling checkout request: %s", err)
	}

	status, respBody, err := cl.sender.Send(c, http.MethodPost, cl.endpointURL, body)
	if err != nil {
		return fmt.Errorf("error calling checkout service: %w", err)
	}

	if status < 200 || status >= 300 {
		return &StatusError{
			HTTPStatus: status,
			Body:       excerpt(respBody),
		}
	}

	return nil
}

// StatusError is returned when the checkout service answers with a non-2xx status.
type StatusError struct {
	HTTPStatus int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("checkout service responded with status %d", e.HTTPStatus)
	}
	return fmt.Sprintf("checkout service responded with status %d: %s", e.HTTPStatus, e.Body)
}

func excerpt(body []byte) string {
	if len(body) > maxBodyExcerpt {
		cut := maxBodyExcerpt
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		return string(body[:cut]) + "..."
	}
	return string(body)
}
