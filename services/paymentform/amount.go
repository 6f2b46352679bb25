package paymentform

import (
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/checkoutform/services/cart/cartmodel"
)

const amountDecimals = 2

// TotalAmount sums the cart and rounds half-up to two decimals: 10.005 + 5 -> "15.01".
func TotalAmount(cart cartmodel.Cart) string {
	return cart.Total().StringFixed(amountDecimals)
}

func amountInCents(amount string) int64 {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return d.Shift(amountDecimals).IntPart()
}
