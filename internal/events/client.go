package events

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Cloud Pub/Sub and publishes to topicID.
func New(ctx context.Context, projectID, topicID string) (Publisher, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	topic := pubSubC.Topic(topicID)
	teardown := func() {
		topic.Stop()
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		topic:    topic,
		teardown: teardown,
	}, nil
}

// Publish encodes change and hands it to the topic. The server acknowledgement
// is awaited in the background so a slow broker never delays the caller.
func (c *client) Publish(ctx context.Context, change Change) error {
	data, err := Encode(change)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	result := c.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"collection": change.Collection,
			"op":         string(change.Op),
		},
	})
	go func() {
		serverID, err := result.Get(context.Background())
		if err != nil {
			log.Error("Failed to publish change", "error", err, "topic", c.topic.ID(), "collection", change.Collection, "id", change.ID)
			return
		}
		log.Debug("Published change", "serverID", serverID, "collection", change.Collection, "id", change.ID, "op", change.Op)
	}()
	return nil
}

func (c *client) Close() error {
	c.teardown()
	return nil
}

// Encode serializes a change for the wire.
func Encode(change Change) ([]byte, error) {
	return msgpack.Marshal(change)
}

// Decode reads a change published by this service.
func Decode(data []byte) (Change, error) {
	var change Change
	if err := msgpack.Unmarshal(data, &change); err != nil {
		return Change{}, fmt.Errorf("failed to decode change: %w", err)
	}
	return change, nil
}

// Emit publishes a change for a successful write. Failures are logged, the
// write has already happened and is not undone.
func Emit(ctx context.Context, p Publisher, collection, id string, op Op) {
	if p == nil {
		return
	}
	change := Change{Collection: collection, ID: id, Op: op, At: time.Now().UTC()}
	if err := p.Publish(ctx, change); err != nil {
		log.Warn("Failed to publish change", "collection", collection, "id", id, "op", op, "error", err)
	}
}
