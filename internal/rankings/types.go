package rankings

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/tree"
)

const (
	Collection = "rankings"

	FieldPlayers  = "jogadores"
	FieldRounds   = "confrontos"
	FieldCounter  = "proximoId"
	FieldName     = "nome"
	eventsPlayers = "rankings/jogadores"
	eventsRounds  = "rankings/confrontos"

	MsgNotFound       = "Ranking não encontrado"
	MsgDuplicate      = "Ranking com esse nome já existe"
	MsgInvalidName    = "Nome do ranking contém caracteres inválidos"
	MsgPlayerNotFound = "Jogador não encontrado"
	MsgRoundNotFound  = "Rodada não encontrada"
)

// protected fields are owned by the nested operations and never merged by Update.
var protected = []string{"id", FieldPlayers, FieldRounds, FieldCounter}

type store struct {
	tree    tree.Store
	col     *collection.Collection
	players *collection.Collection
	metrics metrics.Metrics
	events  events.Publisher
	cleanup bool
}

// Option configures a RankingStore.
type Option func(*store)

// WithGlobalPlayerCleanup makes RemovePlayer also delete the player with the
// same id from the global jogadores collection.
func WithGlobalPlayerCleanup(enabled bool) Option {
	return func(s *store) {
		s.cleanup = enabled
	}
}
