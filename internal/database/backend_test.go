package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mauv0809/torneios/internal/config"
	"github.com/mauv0809/torneios/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		cfg := config.Config{Backend: config.BackendFile, DataFile: filepath.Join(t.TempDir(), "db.json")}
		backend, teardown, err := OpenBackend(ctx, cfg)
		require.NoError(t, err)
		defer teardown()

		store := tree.New(backend)
		require.NoError(t, store.Set(ctx, "proximoId/jogadores", 3))
		v, err := store.Get(ctx, "proximoId/jogadores")
		require.NoError(t, err)
		assert.EqualValues(t, 3, v)
	})

	t.Run("sql", func(t *testing.T) {
		cfg := config.Config{Backend: config.BackendSQL, DBName: ":memory:"}
		backend, teardown, err := OpenBackend(ctx, cfg)
		require.NoError(t, err)
		defer teardown()

		store := tree.New(backend)
		require.NoError(t, store.Set(ctx, "alunos/Ana", map[string]any{"nome": "Ana"}))
		v, err := store.Get(ctx, "alunos/Ana/nome")
		require.NoError(t, err)
		assert.Equal(t, "Ana", v)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := OpenBackend(ctx, config.Config{Backend: "redis"})
		assert.Error(t, err)
	})
}
