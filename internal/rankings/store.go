package rankings

import (
	"context"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/players"
	"github.com/mauv0809/torneios/internal/tree"
)

// New creates a new RankingStore.
func New(t tree.Store, m metrics.Metrics, pub events.Publisher, opts ...Option) RankingStore {
	s := &store{
		tree:    t,
		col:     collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		players: collection.New(t, players.Collection, players.MsgNotFound, players.MsgDuplicate),
		metrics: m,
		events:  pub,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *store) List(ctx context.Context) ([]collection.Record, error) {
	return s.col.List(ctx)
}

func (s *store) Get(ctx context.Context, id string) (collection.Record, error) {
	return s.col.Find(ctx, id)
}

func (s *store) Create(ctx context.Context, ranking collection.Record) (collection.Record, error) {
	name := collection.Text(ranking, FieldName)
	if name == "" {
		return nil, apperr.MissingFields(FieldName)
	}
	id := ident.Slug(name)
	if !ident.ValidKey(id) {
		return nil, apperr.New(apperr.ValidationMissingFields, MsgInvalidName)
	}

	ranking[FieldName] = name
	ranking[FieldPlayers] = []any{}
	ranking[FieldRounds] = map[string]any{}
	ranking[FieldCounter] = 0
	created, err := s.col.Insert(ctx, id, ranking)
	if err != nil {
		return nil, err
	}
	log.Info("Ranking created", "id", id)
	events.Emit(ctx, s.events, Collection, id, events.OpCreate)
	return created, nil
}

func (s *store) Update(ctx context.Context, id string, partial collection.Record) (collection.Record, error) {
	for _, field := range protected {
		delete(partial, field)
	}
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
	log.Info("Ranking deleted", "id", id)
	events.Emit(ctx, s.events, Collection, id, events.OpDelete)
	return nil
}

func (s *store) ListPlayers(ctx context.Context, rankingID string) ([]any, error) {
	v, err := s.readField(ctx, rankingID, FieldPlayers)
	if err != nil {
		return nil, err
	}
	return collection.AsArray(v), nil
}

func (s *store) GetPlayer(ctx context.Context, rankingID, playerID string) (collection.Record, error) {
	list, err := s.ListPlayers(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	player, i := collection.FindBy(list, "id", playerID)
	if i < 0 {
		return nil, apperr.New(apperr.NotFound, MsgPlayerNotFound)
	}
	return player, nil
}

// AddPlayer draws the id from the ranking's own counter in the same
// transaction that appends the player.
func (s *store) AddPlayer(ctx context.Context, rankingID string, player collection.Record) (collection.Record, error) {
	if player == nil {
		player = collection.Record{}
	}
	path, err := s.col.RecordPath(rankingID)
	if err != nil {
		return nil, err
	}
	_, err = s.tree.Transaction(ctx, path, func(current any) (any, error) {
		ranking, ok := current.(map[string]any)
		if !ok {
			return nil, s.col.NotFound()
		}
		list := collection.AsArray(ranking[FieldPlayers])
		next, err := ident.Above(ranking[FieldCounter], collection.HighestID(list))
		if err != nil {
			return nil, apperr.Wrap(apperr.MalformedStoredJSON, apperr.InternalMessage, err)
		}
		ranking[FieldCounter] = next
		player["id"] = strconv.FormatInt(next, 10)
		ranking[FieldPlayers] = append(list, player)
		return ranking, nil
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	s.metrics.IncIDsAllocated(Collection)
	events.Emit(ctx, s.events, eventsPlayers, rankingID+"/"+ident.FormatID(player["id"]), events.OpCreate)
	return player, nil
}

func (s *store) UpdatePlayer(ctx context.Context, rankingID, playerID string, partial collection.Record) (collection.Record, error) {
	var updated collection.Record
	_, err := s.mutateField(ctx, rankingID, FieldPlayers, func(current any) (any, error) {
		list := collection.AsArray(current)
		player, i := collection.FindBy(list, "id", playerID)
		if i < 0 {
			return nil, apperr.New(apperr.NotFound, MsgPlayerNotFound)
		}
		for k, v := range partial {
			if k == "id" {
				continue
			}
			if v == nil {
				delete(player, k)
				continue
			}
			player[k] = v
		}
		list[i] = player
		updated = player
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, eventsPlayers, rankingID+"/"+playerID, events.OpUpdate)
	return updated, nil
}

func (s *store) RemovePlayer(ctx context.Context, rankingID, playerID string) error {
	_, err := s.mutateField(ctx, rankingID, FieldPlayers, func(current any) (any, error) {
		list, removed := collection.RemoveBy(collection.AsArray(current), "id", playerID)
		if !removed {
			return nil, apperr.New(apperr.NotFound, MsgPlayerNotFound)
		}
		return list, nil
	})
	if err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsPlayers, rankingID+"/"+playerID, events.OpDelete)

	if s.cleanup {
		if err := s.players.Delete(ctx, playerID); err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				log.Debug("No global player to clean up", "id", playerID)
			} else {
				log.Warn("Failed to clean up global player", "id", playerID, "ranking", rankingID, "error", err)
			}
		}
	}
	return nil
}

func (s *store) Rounds(ctx context.Context, rankingID string) (map[string]any, error) {
	v, err := s.readField(ctx, rankingID, FieldRounds)
	if err != nil {
		return nil, err
	}
	return roundsOf(v), nil
}

func (s *store) GetRound(ctx context.Context, rankingID, rodada string) (any, error) {
	rounds, err := s.Rounds(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	round, ok := rounds[rodada]
	if !ok || round == nil {
		return nil, apperr.New(apperr.NotFound, MsgRoundNotFound)
	}
	return round, nil
}

func (s *store) CreateRound(ctx context.Context, rankingID, rodada string, matchups any) error {
	if matchups == nil {
		matchups = []any{}
	}
	if err := s.putRound(ctx, rankingID, rodada, matchups); err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsRounds, rankingID+"/"+rodada, events.OpCreate)
	return nil
}

func (s *store) SetRound(ctx context.Context, rankingID, rodada string, body any) error {
	if err := s.putRound(ctx, rankingID, rodada, body); err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsRounds, rankingID+"/"+rodada, events.OpUpdate)
	return nil
}

func (s *store) DeleteRound(ctx context.Context, rankingID, rodada string) error {
	_, err := s.mutateField(ctx, rankingID, FieldRounds, func(current any) (any, error) {
		rounds := roundsOf(current)
		if _, ok := rounds[rodada]; !ok {
			return nil, apperr.New(apperr.NotFound, MsgRoundNotFound)
		}
		delete(rounds, rodada)
		return rounds, nil
	})
	if err != nil {
		return err
	}
	events.Emit(ctx, s.events, eventsRounds, rankingID+"/"+rodada, events.OpDelete)
	return nil
}

// putRound overwrites one round. Last write wins.
func (s *store) putRound(ctx context.Context, rankingID, rodada string, value any) error {
	_, err := s.mutateField(ctx, rankingID, FieldRounds, func(current any) (any, error) {
		rounds := roundsOf(current)
		rounds[rodada] = value
		return rounds, nil
	})
	return err
}

func (s *store) readField(ctx context.Context, rankingID, field string) (any, error) {
	path, err := s.col.RecordPath(rankingID)
	if err != nil {
		return nil, err
	}
	return collection.ReadField(ctx, s.tree, path, field, s.col.NotFound())
}

func (s *store) mutateField(ctx context.Context, rankingID, field string, fn func(current any) (any, error)) (any, error) {
	path, err := s.col.RecordPath(rankingID)
	if err != nil {
		return nil, err
	}
	return collection.MutateField(ctx, s.tree, path, field, s.col.NotFound(), fn)
}

// roundsOf reads the confrontos field as a mapping from round label to
// matchups. Rounds numbered from zero may have been stored as a list.
func roundsOf(v any) map[string]any {
	switch node := v.(type) {
	case map[string]any:
		return node
	case []any:
		rounds := make(map[string]any, len(node))
		for i, round := range node {
			if round != nil {
				rounds[strconv.Itoa(i)] = round
			}
		}
		return rounds
	}
	return map[string]any{}
}
