package players

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// PlayerStore manages the global jogadores collection.
type PlayerStore interface {
	// List returns every player, optionally filtered by a loose name match.
	List(ctx context.Context, nameQuery string) ([]collection.Record, error)
	Get(ctx context.Context, id string) (collection.Record, error)
	// Create assigns the next counter id and stores the player.
	Create(ctx context.Context, player collection.Record) (collection.Record, error)
	// Update merges partial into the stored player.
	Update(ctx context.Context, id string, partial collection.Record) (collection.Record, error)
	Delete(ctx context.Context, id string) error
}
