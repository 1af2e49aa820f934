package events

import "context"

// Publisher sends change notifications to subscribers outside the process.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}
