package collection_test

import (
	"testing"

	"github.com/mauv0809/torneios/internal/collection"
	"github.com/stretchr/testify/assert"
)

func TestFilterByText(t *testing.T) {
	records := []collection.Record{
		{"id": "1", "nome": "João Pereira"},
		{"id": "2", "nome": "Ana Silva"},
		{"id": "3", "nome": 42},
	}

	assert.Len(t, collection.FilterByText(records, "nome", ""), 3)

	got := collection.FilterByText(records, "nome", "joao")
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0]["id"])

	got = collection.FilterByText(records, "nome", "silva")
	assert.Len(t, got, 1)

	got = collection.FilterByText(records, "nome", "zzz")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestText(t *testing.T) {
	assert.Equal(t, "Ana", collection.Text(collection.Record{"nome": " Ana "}, "nome"))
	assert.Equal(t, "", collection.Text(collection.Record{"nome": 3}, "nome"))
	assert.Equal(t, "", collection.Text(collection.Record{}, "nome"))
}
