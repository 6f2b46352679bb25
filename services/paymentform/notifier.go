package paymentform

import (
	"context"
	"fmt"

	"github.com/MarcGrol/checkoutform/lib/myevents"
	"github.com/MarcGrol/checkoutform/lib/mypubsub"
	"github.com/MarcGrol/checkoutform/lib/mytime"
	"github.com/MarcGrol/checkoutform/lib/myuuid"
	"github.com/MarcGrol/checkoutform/services/paymentform/paymentevents"
)

//go:generate mockgen -source=notifier.go -package paymentform -destination notifier_mock.go SuccessNotifier
type SuccessNotifier interface {
	NotifySuccess(c context.Context, event paymentevents.PaymentSucceeded) error
}

type pubsubNotifier struct {
	pubsub mypubsub.PubSub
	nower  mytime.Nower
	uuider myuuid.UUIDer
	topic  string
}

func NewPubSubNotifier(pubsub mypubsub.PubSub, nower mytime.Nower, uuider myuuid.UUIDer, topic string) SuccessNotifier {
	if topic == "" {
		topic = paymentevents.TopicName
	}
	return &pubsubNotifier{
		pubsub: pubsub,
		nower:  nower,
		uuider: uuider,
		topic:  topic,
	}
}

func (n *pubsubNotifier) NotifySuccess(c context.Context, event paymentevents.PaymentSucceeded) error {
	envelope, err := myevents.NewEnvelope(n.uuider.Create(), n.nower.Now(), n.topic, event)
	if err != nil {
		return fmt.Errorf("error enveloping %s: %s", event.GetEventTypeName(), err)
	}

	data, err := envelope.Marshal()
	if err != nil {
		return err
	}

	err = n.pubsub.Publish(c, n.topic, data)
	if err != nil {
		return fmt.Errorf("error publishing %s: %s", envelope, err)
	}

	return nil
}
