package tournaments

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/tree"
)

const (
	Collection = "torneios"

	FieldName     = "nome"
	FieldPlayers  = "jogadores"
	FieldMatchups = "confrontos"
	// FieldPhase keys a tournament matchup, e.g. "quartas-1" or "final".
	FieldPhase = "fase"

	eventsPlayers  = "torneios/jogadores"
	eventsMatchups = "torneios/confrontos"

	MsgNotFound        = "Torneio não encontrado"
	MsgDuplicate       = "Torneio com esse nome já existe"
	MsgInvalidName     = "Nome do torneio contém caracteres inválidos"
	MsgPlayerNotFound  = "Jogador não encontrado"
	MsgPlayerDuplicate = "Jogador já existe"
	MsgMatchupNotFound = "Confronto não encontrado"
)

type store struct {
	tree   tree.Store
	col    *collection.Collection
	events events.Publisher
}
