package matchups

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/tree"
)

const (
	Collection  = "confrontos"
	CounterPath = "proximoId/confrontos"
	// RoundField groups global matchups into rounds.
	RoundField = "rodada"

	MsgNotFound      = "Confronto não encontrado"
	MsgDuplicate     = "Confronto já existe"
	MsgRoundNotFound = "Rodada não encontrada"
)

type store struct {
	tree    tree.Store
	col     *collection.Collection
	metrics metrics.Metrics
	events  events.Publisher
}
