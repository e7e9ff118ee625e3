package mypublisher

import (
	"encoding/json"

	"github.com/arcuswear/storefront/lib/myevents"
	"github.com/arcuswear/storefront/lib/mytime"
)

// CreatePubsubMessage wraps an event in an envelope and a push-request, the way
// a pubsub push-subscription delivers it to a subscriber endpoint. Test support.
func CreatePubsubMessage(topic string, event myevents.Event) string {
	eventBytes, _ := json.Marshal(event)
	envelope := myevents.EventEnvelope{
		UID:           "123",
		CreatedAt:     mytime.ExampleTime,
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(eventBytes),
	}
	envelopeBytes, _ := json.Marshal(envelope)

	req := myevents.PushRequest{
		Message: myevents.PushMessage{
			Data: envelopeBytes,
		},
		Subscription: topic,
	}

	reqBytes, _ := json.Marshal(req)

	return string(reqBytes)
}
