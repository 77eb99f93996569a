// Package queue implements notification delivery on RabbitMQ.
package queue

import "context"

// Message is a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a nack/requeue.
type Handler func(ctx context.Context, msg Message) error

// Broker is the broker-facing counterpart of ports.EventPublisher: it adds
// the consuming side used by the worker process.
type Broker interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}
