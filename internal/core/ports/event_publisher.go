package ports

import "context"

// EventPublisher sends a payload to a named broker channel and returns the
// broker-assigned message id. Implemented by infrastructure/queue.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}
