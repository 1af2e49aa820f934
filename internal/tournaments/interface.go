package tournaments

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// TournamentStore manages tournaments with their player list and bracket.
type TournamentStore interface {
	List(ctx context.Context) ([]collection.Record, error)
	Get(ctx context.Context, id string) (collection.Record, error)
	Create(ctx context.Context, tournament collection.Record) (collection.Record, error)
	Update(ctx context.Context, id string, partial collection.Record) (collection.Record, error)
	Delete(ctx context.Context, id string) error

	ListPlayers(ctx context.Context, tournamentID string) ([]any, error)
	// AddPlayer appends a player, keeping its id when given.
	AddPlayer(ctx context.Context, tournamentID string, player collection.Record) (collection.Record, error)
	ReplacePlayers(ctx context.Context, tournamentID string, list []any) ([]any, error)
	RemovePlayer(ctx context.Context, tournamentID, playerID string) error

	ListMatchups(ctx context.Context, tournamentID string) ([]any, error)
	GetMatchup(ctx context.Context, tournamentID, fase string) (collection.Record, error)
	// UpsertMatchup replaces the matchup with the same fase or appends it.
	UpsertMatchup(ctx context.Context, tournamentID string, matchup collection.Record) (collection.Record, error)
	ReplaceMatchups(ctx context.Context, tournamentID string, list []any) ([]any, error)
	RemoveMatchup(ctx context.Context, tournamentID, fase string) error
}
