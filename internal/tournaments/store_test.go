package tournaments_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/tournaments"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) (tournaments.TournamentStore, *events.Mock) {
	t.Helper()
	backend, err := tree.OpenFile("")
	require.NoError(t, err)
	pub := events.NewMock()
	return tournaments.New(tree.New(backend), pub), pub
}

func createTournament(t *testing.T, store tournaments.TournamentStore) string {
	t.Helper()
	created, err := store.Create(context.Background(), collection.Record{
		"nome":    "Torneio de Verão",
		"data":    "2024-01-20",
		"horario": "09:00",
		"local":   "Clube Central",
	})
	require.NoError(t, err)
	return created["id"].(string)
}

func TestCreateGetUpdateDelete(t *testing.T) {
	store, pub := setupTestStore(t)
	ctx := context.Background()
	id := createTournament(t, store)
	assert.Equal(t, "Torneio_de_Verão", id)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Clube Central", got["local"])
	assert.Equal(t, []any{}, got["jogadores"])
	assert.Equal(t, []any{}, got["confrontos"])

	_, err = store.Create(ctx, collection.Record{"nome": "Torneio de  Verão"})
	assert.Equal(t, apperr.DuplicateName, apperr.KindOf(err))
	_, err = store.Create(ctx, collection.Record{"data": "2024-01-20"})
	assert.Equal(t, apperr.ValidationMissingFields, apperr.KindOf(err))

	updated, err := store.Update(ctx, id, collection.Record{"horario": "10:00"})
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated["horario"])
	assert.Equal(t, "Clube Central", updated["local"])

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.Equal(t, tournaments.MsgNotFound, apperr.Message(err))

	assert.Len(t, pub.Changes(), 3)
}

func TestPlayers(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	id := createTournament(t, store)

	kept, err := store.AddPlayer(ctx, id, collection.Record{"id": "ana", "nome": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana", kept["id"])

	generated, err := store.AddPlayer(ctx, id, collection.Record{"nome": "Bea"})
	require.NoError(t, err)
	_, err = uuid.Parse(generated["id"].(string))
	assert.NoError(t, err, "players without an id get a random one")

	_, err = store.AddPlayer(ctx, id, collection.Record{"id": "ana"})
	assert.Equal(t, apperr.DuplicateName, apperr.KindOf(err))

	list, err := store.ListPlayers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, store.RemovePlayer(ctx, id, "ana"))
	assert.Equal(t, apperr.NotFound, apperr.KindOf(store.RemovePlayer(ctx, id, "ana")))

	replaced, err := store.ReplacePlayers(ctx, id, []any{map[string]any{"id": "x"}})
	require.NoError(t, err)
	assert.Len(t, replaced, 1)
	list, err = store.ListPlayers(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"id": "x"}}, list)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Clube Central", got["local"], "sibling fields survive nested writes")
}

func TestMatchups(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	id := createTournament(t, store)

	_, err := store.UpsertMatchup(ctx, id, collection.Record{"fase": "semi-1", "p1": "Ana", "p2": "Bea"})
	require.NoError(t, err)
	_, err = store.UpsertMatchup(ctx, id, collection.Record{"fase": "final", "p1": "?"})
	require.NoError(t, err)
	_, err = store.UpsertMatchup(ctx, id, collection.Record{"fase": "semi-1", "p1": "Ana", "p2": "Cris"})
	require.NoError(t, err)

	list, err := store.ListMatchups(ctx, id)
	require.NoError(t, err)
	require.Len(t, list, 2, "upserting an existing fase replaces it")

	semi, err := store.GetMatchup(ctx, id, "semi-1")
	require.NoError(t, err)
	assert.Equal(t, "Cris", semi["p2"])

	_, err = store.UpsertMatchup(ctx, id, collection.Record{"p1": "Ana"})
	assert.Equal(t, apperr.ValidationMissingFields, apperr.KindOf(err))

	require.NoError(t, store.RemoveMatchup(ctx, id, "final"))
	_, err = store.GetMatchup(ctx, id, "final")
	assert.Equal(t, tournaments.MsgMatchupNotFound, apperr.Message(err))
	assert.Equal(t, apperr.NotFound, apperr.KindOf(store.RemoveMatchup(ctx, id, "final")))

	_, err = store.ReplaceMatchups(ctx, id, nil)
	require.NoError(t, err)
	list, err = store.ListMatchups(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []any{}, list)
}

func TestMissingTournament(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.ListPlayers(ctx, "Nope")
	assert.Equal(t, tournaments.MsgNotFound, apperr.Message(err))
	_, err = store.AddPlayer(ctx, "Nope", collection.Record{"nome": "Ana"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	_, err = store.UpsertMatchup(ctx, "Nope", collection.Record{"fase": "final"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestConcurrentAddPlayerLosesNothing(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	id := createTournament(t, store)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AddPlayer(ctx, id, collection.Record{"id": fmt.Sprintf("p%d", i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := store.ListPlayers(ctx, id)
	require.NoError(t, err)
	assert.Len(t, list, n)
}
