package users

import (
	"context"

	"github.com/mauv0809/torneios/internal/collection"
)

// UserStore manages usuarios, keyed by sanitized email. Returned users never
// carry the password hash.
type UserStore interface {
	Create(ctx context.Context, user collection.Record) (collection.Record, error)
	Login(ctx context.Context, email, password string) (collection.Record, error)
	// UpdateData merges the editable fields of the user identified by data's email.
	UpdateData(ctx context.Context, data collection.Record) (collection.Record, error)
	Get(ctx context.Context, email string) (collection.Record, error)
}
