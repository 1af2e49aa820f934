package users

import (
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
)

const (
	Collection = "usuarios"

	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "nome"
	FieldSurname  = "sobrenome"
	FieldRole     = "papel"
	FieldRankings = "rankings"

	MsgNotFound      = "Usuário não encontrado"
	MsgDuplicate     = "Usuário já existe"
	MsgWrongPassword = "Senha incorreta"
	MsgInvalidEmail  = "Email inválido"
)

// editable lists the fields UpdateData may change.
var editable = []string{FieldName, FieldSurname, FieldRole, FieldRankings, FieldPassword}

type store struct {
	col    *collection.Collection
	events events.Publisher
	cost   int
}
