package tournaments

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/tree"
)

// New creates a new TournamentStore.
func New(t tree.Store, pub events.Publisher) TournamentStore {
	return &store{
		tree:   t,
		col:    collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		events: pub,
	}
}

func (s *store) List(ctx context.Context) ([]collection.Record, error) {
	return s.col.List(ctx)
}

func (s *store) Get(ctx context.Context, id string) (collection.Record, error) {
	return s.col.Find(ctx, id)
}

func (s *store) Create(ctx context.Context, tournament collection.Record) (collection.Record, error) {
	name := collection.Text(tournament, FieldName)
	if name == "" {
		return nil, apperr.MissingFields(FieldName)
	}
	id := ident.Slug(name)
	if !ident.ValidKey(id) {
		return nil, apperr.New(apperr.ValidationMissingFields, MsgInvalidName)
	}

	tournament[FieldName] = name
	if _, ok := tournament[FieldPlayers].([]any); !ok {
		tournament[FieldPlayers] = []any{}
	}
	if _, ok := tournament[FieldMatchups].([]any); !ok {
		tournament[FieldMatchups] = []any{}
	}
	created, err := s.col.Insert(ctx, id, tournament)
	if err != nil {
		return nil, err
	}
	log.Info("Tournament created", "id", id)
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
	log.Info("Tournament deleted", "id", id)
	events.Emit(ctx, s.events, Collection, id, events.OpDelete)
	return nil
}

func (s *store) ListPlayers(ctx context.Context, tournamentID string) ([]any, error) {
	return s.readList(ctx, tournamentID, FieldPlayers)
}

func (s *store) AddPlayer(ctx context.Context, tournamentID string, player collection.Record) (collection.Record, error) {
	if player == nil {
		player = collection.Record{}
	}
	id := ident.FormatID(player["id"])
	if id == "" {
		id = ident.NewRef()
	}
	player["id"] = id

	err := s.mutateList(ctx, tournamentID, FieldPlayers, func(list []any) ([]any, error) {
		if _, i := collection.FindBy(list, "id", id); i >= 0 {
			return nil, apperr.New(apperr.DuplicateName, MsgPlayerDuplicate)
		}
		return append(list, player), nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, eventsPlayers, tournamentID+"/"+id, events.OpCreate)
	return player, nil
}

func (s *store) ReplacePlayers(ctx context.Context, tournamentID string, list []any) ([]any, error) {
	if list == nil {
		list = []any{}
	}
	err := s.mutateList(ctx, tournamentID, FieldPlayers, func([]any) ([]any, error) {
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, eventsPlayers, tournamentID, events.OpUpdate)
	return list, nil
}

func (s *store) RemovePlayer(ctx context.Context, tournamentID, playerID string) error {
	err := s.mutateList(ctx, tournamentID, FieldPlayers, func(list []any) ([]any, error) {
		kept, removed := collection.RemoveBy(list, "id", playerID)
		if !removed {
			return nil, apperr.New(apperr.NotFound, MsgPlayerNotFound)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsPlayers, tournamentID+"/"+playerID, events.OpDelete)
	return nil
}

func (s *store) ListMatchups(ctx context.Context, tournamentID string) ([]any, error) {
	return s.readList(ctx, tournamentID, FieldMatchups)
}

func (s *store) GetMatchup(ctx context.Context, tournamentID, fase string) (collection.Record, error) {
	list, err := s.ListMatchups(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	matchup, i := collection.FindBy(list, FieldPhase, fase)
	if i < 0 {
		return nil, apperr.New(apperr.NotFound, MsgMatchupNotFound)
	}
	return matchup, nil
}

func (s *store) UpsertMatchup(ctx context.Context, tournamentID string, matchup collection.Record) (collection.Record, error) {
	fase := ident.FormatID(matchup[FieldPhase])
	if fase == "" {
		return nil, apperr.MissingFields(FieldPhase)
	}
	err := s.mutateList(ctx, tournamentID, FieldMatchups, func(list []any) ([]any, error) {
		return collection.UpsertBy(list, FieldPhase, matchup), nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, eventsMatchups, tournamentID+"/"+fase, events.OpUpdate)
	return matchup, nil
}

func (s *store) ReplaceMatchups(ctx context.Context, tournamentID string, list []any) ([]any, error) {
	if list == nil {
		list = []any{}
	}
	err := s.mutateList(ctx, tournamentID, FieldMatchups, func([]any) ([]any, error) {
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, eventsMatchups, tournamentID, events.OpUpdate)
	return list, nil
}

func (s *store) RemoveMatchup(ctx context.Context, tournamentID, fase string) error {
	err := s.mutateList(ctx, tournamentID, FieldMatchups, func(list []any) ([]any, error) {
		kept, removed := collection.RemoveBy(list, FieldPhase, fase)
		if !removed {
			return nil, apperr.New(apperr.NotFound, MsgMatchupNotFound)
		}
		return kept, nil
	})
	if err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsMatchups, tournamentID+"/"+fase, events.OpDelete)
	return nil
}

func (s *store) readList(ctx context.Context, tournamentID, field string) ([]any, error) {
	path, err := s.col.RecordPath(tournamentID)
	if err != nil {
		return nil, err
	}
	v, err := collection.ReadField(ctx, s.tree, path, field, s.col.NotFound())
	if err != nil {
		return nil, err
	}
	return collection.AsArray(v), nil
}

func (s *store) mutateList(ctx context.Context, tournamentID, field string, fn func([]any) ([]any, error)) error {
	path, err := s.col.RecordPath(tournamentID)
	if err != nil {
		return err
	}
	_, err = collection.MutateField(ctx, s.tree, path, field, s.col.NotFound(), func(current any) (any, error) {
		return fn(collection.AsArray(current))
	})
	return err
}
