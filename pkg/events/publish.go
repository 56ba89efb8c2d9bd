package events

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Envelope is the wire form of an event on the audit stream.
type Envelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt string                 `json:"occurred_at"`
}

// Publish serializes e and puts it on the audit topic. Failures are returned
// to the caller, who normally just logs them: events are observability, not
// part of the durability contract.
func Publish(pub message.Publisher, e Event) error {
	payload, err := json.Marshal(Envelope{
		Type:       e.EventType(),
		Payload:    e.Payload(),
		OccurredAt: e.Timestamp().Format("2006-01-02T15:04:05Z07:00"),
	})
	if err != nil {
		return err
	}
	return pub.Publish(Topic, message.NewMessage(watermill.NewUUID(), payload))
}
