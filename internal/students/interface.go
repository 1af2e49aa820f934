package students

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// StudentStore manages alunos. Students are addressed by name; the stored id
// is the slug of that name.
type StudentStore interface {
	Create(ctx context.Context, student collection.Record) (collection.Record, error)
	// List returns every student, optionally filtered by a loose name match.
	List(ctx context.Context, query string) ([]collection.Record, error)
	// NamesByCategory returns the sorted names of the students in categoria.
	NamesByCategory(ctx context.Context, categoria string) ([]string, error)
	Get(ctx context.Context, nome string) (collection.Record, error)
	Update(ctx context.Context, nome string, partial collection.Record) (collection.Record, error)
	Delete(ctx context.Context, nome string) error

	GetNote(ctx context.Context, nome string) (string, error)
	SetNote(ctx context.Context, nome, text string) error
	ClearNote(ctx context.Context, nome string) error
}
