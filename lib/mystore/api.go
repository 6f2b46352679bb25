package mystore

import (
	"context"
)

type ctxTransactionKey struct{}

// Store keeps transient state keyed by uid. Nothing outlives the process.
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
}

func New[T any](c context.Context) (Store[T], func(), error) {
	return NewInMemoryStore[T](c)
}
