package players

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/metrics"
	"github.com/mauv0809/torneios/internal/tree"
)

const (
	// Collection is the top-level key holding global players.
	Collection = "jogadores"
	// CounterPath holds the last id handed to a global player.
	CounterPath = "proximoId/jogadores"

	MsgNotFound  = "Jogador não encontrado"
	MsgDuplicate = "Jogador já existe"
)

type store struct {
	tree    tree.Store
	col     *collection.Collection
	metrics metrics.Metrics
	events  events.Publisher
}
