package mypubsub

import (
	"context"
	"log"
	"os"
)

type fakePubSub struct{}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return &fakePubSub{}, func() {}, nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, data string) error {
	log.Printf("Local pubsub: dropped message on topic %s (%d bytes)", topic, len(data))
	return nil
}
