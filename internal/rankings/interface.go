package rankings

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// RankingStore manages rankings and the players and rounds nested in them.
type RankingStore interface {
	List(ctx context.Context) ([]collection.Record, error)
	Get(ctx context.Context, id string) (collection.Record, error)
	// Create derives the id from nome and fails with DuplicateName when it is taken.
	Create(ctx context.Context, ranking collection.Record) (collection.Record, error)
	// Update merges top-level fields. Nested collections and the counter are not patchable.
	Update(ctx context.Context, id string, partial collection.Record) (collection.Record, error)
	Delete(ctx context.Context, id string) error

	ListPlayers(ctx context.Context, rankingID string) ([]any, error)
	GetPlayer(ctx context.Context, rankingID, playerID string) (collection.Record, error)
	AddPlayer(ctx context.Context, rankingID string, player collection.Record) (collection.Record, error)
	UpdatePlayer(ctx context.Context, rankingID, playerID string, partial collection.Record) (collection.Record, error)
	RemovePlayer(ctx context.Context, rankingID, playerID string) error

	Rounds(ctx context.Context, rankingID string) (map[string]any, error)
	GetRound(ctx context.Context, rankingID, rodada string) (any, error)
	// CreateRound stores matchups under rodada, overwriting an existing round.
	CreateRound(ctx context.Context, rankingID, rodada string, matchups any) error
	// SetRound stores body verbatim under rodada.
	SetRound(ctx context.Context, rankingID, rodada string, body any) error
	DeleteRound(ctx context.Context, rankingID, rodada string) error
}
