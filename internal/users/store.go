package users

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
	"github.com/mauv0809/torneios/internal/events"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/tree"
	"golang.org/x/crypto/bcrypt"
)

// New creates a new UserStore. cost is the bcrypt cost; values below
// bcrypt.MinCost use bcrypt.DefaultCost.
func New(t tree.Store, pub events.Publisher, cost int) UserStore {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &store{
		col:    collection.New(t, Collection, MsgNotFound, MsgDuplicate),
		events: pub,
		cost:   cost,
	}
}

func (s *store) Create(ctx context.Context, user collection.Record) (collection.Record, error) {
	email := strings.ToLower(collection.Text(user, FieldEmail))
	password, _ := user[FieldPassword].(string)
	name := collection.Text(user, FieldName)
	var missing []string
	if email == "" {
		missing = append(missing, FieldEmail)
	}
	if password == "" {
		missing = append(missing, FieldPassword)
	}
	if name == "" {
		missing = append(missing, FieldName)
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}
	key, err := s.key(email)
	if err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	user[FieldEmail] = email
	user[FieldName] = name
	user[FieldPassword] = hash
	if _, ok := user[FieldRankings].([]any); !ok {
		user[FieldRankings] = []any{}
	}
	created, err := s.col.Insert(ctx, key, user)
	if err != nil {
		return nil, err
	}
	log.Info("User created", "id", key)
	events.Emit(ctx, s.events, Collection, key, events.OpCreate)
	return public(created), nil
}

func (s *store) Login(ctx context.Context, email, password string) (collection.Record, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var missing []string
	if email == "" {
		missing = append(missing, FieldEmail)
	}
	if password == "" {
		missing = append(missing, FieldPassword)
	}
	if len(missing) > 0 {
		return nil, apperr.MissingFields(missing...)
	}
	key, err := s.key(email)
	if err != nil {
		return nil, err
	}
	user, err := s.col.Find(ctx, key)
	if err != nil {
		return nil, err
	}

	stored, _ := user[FieldPassword].(string)
	if isHash(stored) {
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return nil, apperr.New(apperr.AuthInvalid, MsgWrongPassword)
			}
			return nil, apperr.Wrap(apperr.MalformedStoredJSON, apperr.InternalMessage, err)
		}
		return public(user), nil
	}

	// Accounts created before hashing hold the plain password. A successful
	// login replaces it with a hash.
	if stored == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return nil, apperr.New(apperr.AuthInvalid, MsgWrongPassword)
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	if _, err := s.col.Patch(ctx, key, collection.Record{FieldPassword: hash}); err != nil {
		log.Warn("Failed to upgrade plain password", "id", key, "error", err)
	} else {
		log.Info("Upgraded plain password to bcrypt", "id", key)
	}
	return public(user), nil
}

func (s *store) UpdateData(ctx context.Context, data collection.Record) (collection.Record, error) {
	email := strings.ToLower(collection.Text(data, FieldEmail))
	if email == "" {
		return nil, apperr.MissingFields(FieldEmail)
	}
	key, err := s.key(email)
	if err != nil {
		return nil, err
	}

	partial := collection.Record{}
	for _, field := range editable {
		if v, ok := data[field]; ok {
			partial[field] = v
		}
	}
	if password, ok := partial[FieldPassword]; ok {
		plain, _ := password.(string)
		if plain == "" {
			delete(partial, FieldPassword)
		} else {
			hash, err := s.hash(plain)
			if err != nil {
				return nil, err
			}
			partial[FieldPassword] = hash
		}
	}

	updated, err := s.col.Patch(ctx, key, partial)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.events, Collection, key, events.OpUpdate)
	return public(updated), nil
}

func (s *store) Get(ctx context.Context, email string) (collection.Record, error) {
	key, err := s.key(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	user, err := s.col.Find(ctx, key)
	if err != nil {
		return nil, err
	}
	return public(user), nil
}

func (s *store) key(email string) (string, error) {
	key := ident.EmailKey(email)
	if !strings.Contains(email, "@") || !ident.ValidKey(key) {
		return "", apperr.New(apperr.ValidationMissingFields, MsgInvalidEmail)
	}
	return key, nil
}

func (s *store) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, apperr.InternalMessage, fmt.Errorf("failed to hash password: %w", err))
	}
	return string(hash), nil
}

func isHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// public returns a copy of user without the password.
func public(user collection.Record) collection.Record {
	out := make(collection.Record, len(user))
	for k, v := range user {
		if k == FieldPassword {
			continue
		}
		out[k] = v
	}
	return out
}
