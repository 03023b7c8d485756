package messaging

import (
	"context"
)

// Publisher defines the interface for publishing messages
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewMessage wraps payload in a typed envelope.
func NewMessage(eventType string, payload interface{}) Message {
	return Message{Type: eventType, Payload: payload}
}
