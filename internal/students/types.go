package students

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
)

const (
	Collection = "alunos"

	FieldName     = "nome"
	FieldCategory = "categoria"
	FieldNote     = "anotacao"

	MsgNotFound    = "Aluno não encontrado"
	MsgDuplicate   = "Aluno com esse nome já existe"
	MsgInvalidName = "Nome do aluno contém caracteres inválidos"
)

type store struct {
	col    *collection.Collection
	events events.Publisher
}
