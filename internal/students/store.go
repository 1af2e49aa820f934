package students

import (
	"context"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/tree"
)

// New creates a new StudentStore.
func New(t tree.Store, pub events.Publisher) StudentStore {
	return &store{
		col:    collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		events: pub,
	}
}

func (s *store) Create(ctx context.Context, student collection.Record) (collection.Record, error) {
	name := collection.Text(student, FieldName)
	category := collection.Text(student, FieldCategory)
	var missing []string
	if name == "" {
		missing = append(missing, FieldName)
	}
	if category == "" {
		missing = append(missing, FieldCategory)
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}
	id := ident.Slug(name)
	if !ident.ValidKey(id) {
		return nil, apperr.New(apperr.ValidationMissingFields, MsgInvalidName)
	}

	student[FieldName] = name
	student[FieldCategory] = category
	created, err := s.col.Insert(ctx, id, student)
	if err != nil {
		return nil, err
	}
	log.Info("Student created", "id", id, "categoria", category)
	events.Emit(ctx, s.events, Collection, id, events.OpCreate)
	return created, nil
}

func (s *store) List(ctx context.Context, query string) ([]collection.Record, error) {
	all, err := s.col.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.FilterByText(all, FieldName, query), nil
}

func (s *store) NamesByCategory(ctx context.Context, categoria string) ([]string, error) {
	all, err := s.col.List(ctx)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, student := range all {
		if collection.Text(student, FieldCategory) == categoria {
			names = append(names, collection.Text(student, FieldName))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *store) Get(ctx context.Context, nome string) (collection.Record, error) {
	return s.col.Find(ctx, ident.Slug(nome))
}

// Update merges partial into the student. The name is the identity and cannot change.
func (s *store) Update(ctx context.Context, nome string, partial collection.Record) (collection.Record, error) {
	id := ident.Slug(nome)
	delete(partial, FieldName)
	updated, err := s.col.Patch(ctx, id, partial)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, Collection, id, events.OpUpdate)
	return updated, nil
}

func (s *store) Delete(ctx context.Context, nome string) error {
	id := ident.Slug(nome)
	if err := s.col.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("Student deleted", "id", id)
	events.Emit(ctx, s.events, Collection, id, events.OpDelete)
	return nil
}

// GetNote returns the student's note, "" when none was written.
func (s *store) GetNote(ctx context.Context, nome string) (string, error) {
	student, err := s.Get(ctx, nome)
	if err != nil {
		return "", err
	}
	note, _ := student[FieldNote].(string)
	return note, nil
}

func (s *store) SetNote(ctx context.Context, nome, text string) error {
	_, err := s.Update(ctx, nome, collection.Record{FieldNote: text})
	return err
}

func (s *store) ClearNote(ctx context.Context, nome string) error {
	_, err := s.Update(ctx, nome, collection.Record{FieldNote: nil})
	return err
}
