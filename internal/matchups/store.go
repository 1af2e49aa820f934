package matchups

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/tree"
)

// New creates a new MatchupStore.
func New(t tree.Store, m metrics.Metrics, pub events.Publisher) MatchupStore {
	return &store{
		tree:    t,
		col:     collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		metrics: m,
		events:  pub,
	}
}

func (s *store) List(ctx context.Context) ([]collection.Record, error) {
	return s.col.List(ctx)
}

func (s *store) Create(ctx context.Context, matchup collection.Record) (collection.Record, error) {
	floor, err := s.col.MaxID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.nextID(ctx, floor)
	if err != nil {
		return nil, err
	}
	created, err := s.col.Insert(ctx, id, matchup)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, Collection, id, events.OpCreate)
	return created, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	if err := s.col.Delete(ctx, id); err != nil {
		return err
	}
	events.Emit(ctx, s.events, Collection, id, events.OpDelete)
	return nil
}

func (s *store) ListRound(ctx context.Context, rodada string) ([]collection.Record, error) {
	all, err := s.col.List(ctx)
	if err != nil {
		return nil, err
	}
	round := []collection.Record{}
	for _, rec := range all {
		if ident.FormatID(rec[RoundField]) == rodada {
			round = append(round, rec)
		}
	}
	if len(round) == 0 {
		return nil, apperr.New(apperr.NotFound, MsgRoundNotFound)
	}
	return round, nil
}

func (s *store) ReplaceRound(ctx context.Context, rodada string, items []collection.Record) ([]collection.Record, error) {
	// Ids come from another top-level key, so they are allocated up front.
	// A failed replace only leaves gaps in the sequence.
	floor, err := s.col.MaxID(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		id, err := s.nextID(ctx, floor)
		if err != nil {
			return nil, err
		}
		item["id"] = id
		item[RoundField] = rodada
	}

	_, err = s.tree.Transaction(ctx, Collection, func(current any) (any, error) {
		switch node := current.(type) {
		case []any:
			kept, _ := collection.RemoveBy(node, RoundField, rodada)
			for _, item := range items {
				kept = append(kept, item)
			}
			return kept, nil
		case map[string]any:
			for key, child := range node {
				if rec, ok := child.(map[string]any); ok && ident.FormatID(rec[RoundField]) == rodada {
					delete(node, key)
				}
			}
			for _, item := range items {
				node[ident.FormatID(item["id"])] = item
			}
			return node, nil
		case nil:
			created := make(map[string]any, len(items))
			for _, item := range items {
				created[ident.FormatID(item["id"])] = item
			}
			return created, nil
		default:
			return nil, collection.Malformed(Collection, current)
		}
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	log.Info("Round replaced", "rodada", rodada, "count", len(items))
	events.Emit(ctx, s.events, Collection, rodada, events.OpUpdate)
	return items, nil
}

func (s *store) nextID(ctx context.Context, floor int64) (string, error) {
	id, err := ident.NextID(ctx, s.tree, CounterPath, floor)
	if err != nil {
		return "", apperr.Write(err)
	}
	s.metrics.IncIDsAllocated(Collection)
	return id, nil
}
