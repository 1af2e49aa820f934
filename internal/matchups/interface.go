package matchups

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// MatchupStore manages the global confrontos collection and its round views.
type MatchupStore interface {
	List(ctx context.Context) ([]collection.Record, error)
	Create(ctx context.Context, matchup collection.Record) (collection.Record, error)
	Delete(ctx context.Context, id string) error

	// ListRound returns the matchups whose rodada field equals rodada.
	ListRound(ctx context.Context, rodada string) ([]collection.Record, error)
	// ReplaceRound drops every matchup of rodada and stores items in their place,
	// each with a fresh counter id.
	ReplaceRound(ctx context.Context, rodada string, items []collection.Record) ([]collection.Record, error)
}
