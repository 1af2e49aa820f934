package players

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

// New creates a new PlayerStore.
func New(t tree.Store, m metrics.Metrics, pub events.Publisher) PlayerStore {
	return &store{
		tree:    t,
		col:     collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		metrics: m,
		events:  pub,
	}
}

func (s *store) List(ctx context.Context, nameQuery string) ([]collection.Record, error) {
	all, err := s.col.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.FilterByText(all, "nome", nameQuery), nil
}

func (s *store) Get(ctx context.Context, id string) (collection.Record, error) {
	return s.col.Find(ctx, id)
}

func (s *store) Create(ctx context.Context, player collection.Record) (collection.Record, error) {
	floor, err := s.col.MaxID(ctx)
	if err != nil {
		return nil, err
	}
	id, err := ident.NextID(ctx, s.tree, CounterPath, floor)
	if err != nil {
		return nil, apperr.Write(err)
	}
	s.metrics.IncIDsAllocated(Collection)

	created, err := s.col.Insert(ctx, id, player)
	if err != nil {
		return nil, err
	}
	log.Info("Player created", "id", id, "nome", created["nome"])
	events.Emit(ctx, s.events, Collection, id, events.OpCreate)
	return created, nil
}

func (s *store) Update(ctx context.Context, id string, partial collection.Record) (collection.Record, error) {
	updated, err := s.col.Patch(ctx, id, partial)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, Collection, id, events.OpUpdate)
	return updated, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	if err := s.col.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("Player deleted", "id", id)
	events.Emit(ctx, s.events, Collection, id, events.OpDelete)
	return nil
}
