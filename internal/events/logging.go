package events

import (
	"context"

	"github.com/charmbracelet/log"
)

type logPublisher struct{}

// NewLogPublisher returns a Publisher that only logs changes. It is used when
// no Pub/Sub project is configured.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, change Change) error {
	log.Debug("Change", "collection", change.Collection, "id", change.ID, "op", change.Op)
	return nil
}

func (logPublisher) Close() error {
	return nil
}
