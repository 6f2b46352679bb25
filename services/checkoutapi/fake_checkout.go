package checkoutapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/checkoutform/lib/mystore"
)

// FakeEndpointURL selects the in-process checkout service instead of a remote one.
const FakeEndpointURL = "fake"

// FakeCheckoutService behaves like the remote checkout endpoint and remembers every accepted request.
type FakeCheckoutService struct {
	Store *mystore.InMemoryStore[CheckoutRequest]
}

func NewFakeCheckoutService() *FakeCheckoutService {
	store, _, _ := mystore.NewInMemoryStore[CheckoutRequest](context.Background())
	return &FakeCheckoutService{
		Store: store,
	}
}

func (f *FakeCheckoutService) Submit(c context.Context, req CheckoutRequest) error {
	if req.PaymentMethodID == "" {
		return rejected("missing paymentMethodId")
	}
	if req.Currency != CurrencyUSD {
		return rejected(fmt.Sprintf("unsupported currency '%s'", req.Currency))
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return rejected(fmt.Sprintf("invalid amount '%s'", req.Amount))
	}

	return f.Store.Put(c, req.PaymentMethodID, req)
}

func rejected(reason string) error {
	return &StatusError{
		HTTPStatus: http.StatusBadRequest,
		Body:       fmt.Sprintf(`{"error":"%s"}`, reason),
	}
}

// ServeHTTP exposes the fake on the wire, so the real client can be tested against it.
func (f *FakeCheckoutService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	req := CheckoutRequest{}
	err = json.Unmarshal(body, &req)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":"invalid json"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	err = f.Submit(r.Context(), req)
	if err != nil {
		statusErr, ok := err.(*StatusError)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(statusErr.HTTPStatus)
		fmt.Fprint(w, statusErr.Body)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"success":true}`)
}
