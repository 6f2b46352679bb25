package paymentform

import (
	"net/http"

	"github.com/MarcGrol/checkoutform/lib/myhttp"
)

const PostPurchaseRoute = "/PaymentMethod"

type Navigator interface {
	GoTo(path string)
}

// Alerter is optionally implemented by a Navigator that can show a message to the user.
type Alerter interface {
	Alert(message string)
}

type browserNavigator struct {
	w http.ResponseWriter
	r *http.Request
}

func newBrowserNavigator(w http.ResponseWriter, r *http.Request) *browserNavigator {
	return &browserNavigator{w: w, r: r}
}

func (n *browserNavigator) Alert(message string) {
	myhttp.SetFlash(n.w, message)
}

func (n *browserNavigator) GoTo(path string) {
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}
