package events

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	topic    *pubsub.Topic
	teardown func()
}

// Op is the kind of write that produced a change.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one successful write. It carries no payload, subscribers
// read the current state back through the API.
type Change struct {
	Collection string    `msgpack:"collection"`
	ID         string    `msgpack:"id"`
	Op         Op        `msgpack:"op"`
	At         time.Time `msgpack:"at"`
}
