package myevents

import (
	"encoding/json"
	"fmt"
	"time"
)

type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}

type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

func NewEnvelope(uid string, createdAt time.Time, topic string, event Event) (EventEnvelope, error) {
	jsonPayload, err := json.Marshal(event)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("error marshalling event-payload: %s", err)
	}

	return EventEnvelope{
		UID:           uid,
		CreatedAt:     createdAt,
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(jsonPayload),
	}, nil
}

func (e EventEnvelope) Marshal() (string, error) {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("error marshalling envelope %s: %s", e, err)
	}
	return string(jsonBytes), nil
}
