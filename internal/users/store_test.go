package users_test

import (
	"context"
	"strings"
	"testing"

	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/mauv0809/torneios/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestStore(t *testing.T) (users.UserStore, tree.Store) {
	t.Helper()
	backend, err := tree.OpenFile("")
	require.NoError(t, err)
	ts := tree.New(backend)
	return users.New(ts, events.NewMock(), bcrypt.MinCost), ts
}

func newUser() collection.Record {
	return collection.Record{
		"email":     "Ana.Silva@clube.com",
		"password":  "segredo",
		"nome":      "Ana",
		"sobrenome": "Silva",
		"papel":     "admin",
	}
}

func TestCreateHashesPassword(t *testing.T) {
	store, ts := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, newUser())
	require.NoError(t, err)
	assert.NotContains(t, created, "password")
	assert.Equal(t, "ana.silva@clube.com", created["email"])
	assert.Equal(t, []any{}, created["rankings"])

	raw, err := ts.Get(ctx, "usuarios/ana,silva_clube,com")
	require.NoError(t, err)
	stored := raw.(map[string]any)["password"].(string)
	assert.True(t, strings.HasPrefix(stored, "$2"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("segredo")))

	_, err = store.Create(ctx, newUser())
	assert.Equal(t, apperr.DuplicateName, apperr.KindOf(err))
	assert.Equal(t, users.MsgDuplicate, apperr.Message(err))
}

func TestCreateValidation(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, collection.Record{"email": "ana@x.io"})
	assert.Equal(t, "Campos obrigatórios ausentes: password, nome", apperr.Message(err))

	_, err = store.Create(ctx, collection.Record{"email": "not-an-email", "password": "x", "nome": "Ana"})
	assert.Equal(t, users.MsgInvalidEmail, apperr.Message(err))
}

func TestLogin(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Create(ctx, newUser())
	require.NoError(t, err)

	user, err := store.Login(ctx, "ana.silva@clube.com", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user["nome"])
	assert.NotContains(t, user, "password")

	_, err = store.Login(ctx, "ana.silva@clube.com", "errada")
	assert.Equal(t, apperr.AuthInvalid, apperr.KindOf(err))
	assert.Equal(t, 401, apperr.Status(err))

	_, err = store.Login(ctx, "bea@clube.com", "segredo")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = store.Login(ctx, "", "")
	assert.Equal(t, apperr.ValidationMissingFields, apperr.KindOf(err))
}

func TestLoginUpgradesPlainPasswords(t *testing.T) {
	store, ts := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, ts.Set(ctx, "usuarios/velho_clube,com", map[string]any{
		"email":    "velho@clube.com",
		"nome":     "Velho",
		"password": "1234",
	}))

	_, err := store.Login(ctx, "velho@clube.com", "4321")
	assert.Equal(t, apperr.AuthInvalid, apperr.KindOf(err))

	_, err = store.Login(ctx, "velho@clube.com", "1234")
	require.NoError(t, err)

	raw, err := ts.Get(ctx, "usuarios/velho_clube,com/password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw.(string), "$2"))

	_, err = store.Login(ctx, "velho@clube.com", "1234")
	assert.NoError(t, err, "the hashed password keeps working")
}

func TestUpdateData(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Create(ctx, newUser())
	require.NoError(t, err)

	updated, err := store.UpdateData(ctx, collection.Record{
		"email":    "ana.silva@clube.com",
		"papel":    "jogador",
		"rankings": []any{"Open_2024"},
		"password": "nova",
		"id":       "hijack",
	})
	require.NoError(t, err)
	assert.Equal(t, "jogador", updated["papel"])
	assert.Equal(t, "ana,silva_clube,com", updated["id"])
	assert.NotContains(t, updated, "password")

	_, err = store.Login(ctx, "ana.silva@clube.com", "segredo")
	assert.Equal(t, apperr.AuthInvalid, apperr.KindOf(err))
	_, err = store.Login(ctx, "ana.silva@clube.com", "nova")
	assert.NoError(t, err)

	_, err = store.UpdateData(ctx, collection.Record{"email": "bea@clube.com", "papel": "x"})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	_, err = store.UpdateData(ctx, collection.Record{"papel": "x"})
	assert.Equal(t, apperr.ValidationMissingFields, apperr.KindOf(err))
}

func TestGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()
	_, err := store.Create(ctx, newUser())
	require.NoError(t, err)

	user, err := store.Get(ctx, "ana.silva@clube.com")
	require.NoError(t, err)
	assert.Equal(t, "Silva", user["sobrenome"])
	assert.NotContains(t, user, "password")

	_, err = store.Get(ctx, "bea@clube.com")
	assert.Equal(t, users.MsgNotFound, apperr.Message(err))
}
