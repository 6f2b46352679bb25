package paymentevents

const (
	TopicName            = "payment"
	paymentSucceededName = TopicName + ".succeeded"
)

// PaymentSucceeded is published after the checkout service accepted a payment.
// AmountInCents is provided for receivers that work in minor units.
type PaymentSucceeded struct {
	FormUID         string
	CartUID         string
	PaymentMethodID string
	Amount          string
	AmountInCents   int64
	Currency        string
}

func (e PaymentSucceeded) GetEventTypeName() string {
	return paymentSucceededName
}

func (e PaymentSucceeded) GetAggregateName() string {
	return e.FormUID
}
