package mypubsub

import "context"

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
}

// New is bound at init-time to the gcloud or the local implementation.
var New func(c context.Context) (PubSub, func(), error)
