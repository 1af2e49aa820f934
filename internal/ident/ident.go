package ident

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mauv0809/torneios/internal/tree"
)

// Slug derives an id from a display name: trimmed, every whitespace run replaced by "_".
// Case is kept, so "Open 2024" becomes "Open_2024". Names that differ only in
// whitespace produce the same slug.
func Slug(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

// EmailKey turns an email address into a key that is legal as a path segment.
func EmailKey(email string) string {
	return strings.NewReplacer(".", ",", "@", "_").Replace(strings.TrimSpace(email))
}

// NewRef returns a random id for records that have neither a slug nor a counter id.
func NewRef() string {
	return uuid.NewString()
}

// Increment returns current+1, treating an absent counter as 0.
func Increment(current any) (int64, error) {
	switch c := current.(type) {
	case nil:
		return 1, nil
	case float64:
		return int64(c) + 1, nil
	case int64:
		return c + 1, nil
	case int:
		return int64(c) + 1, nil
	case string:
		n, err := strconv.ParseInt(c, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("counter holds a non numeric value %q", c)
		}
		return n + 1, nil
	default:
		return 0, fmt.Errorf("counter holds an unexpected %T", current)
	}
}

// Above is Increment that never returns a value at or below floor.
func Above(current any, floor int64) (int64, error) {
	n, err := Increment(current)
	if err != nil {
		return 0, err
	}
	if n <= floor {
		n = floor + 1
	}
	return n, nil
}

// NextID allocates the next value of the counter at counterPath in one atomic transaction
// and returns it as a decimal string. floor is the largest id already in use; the
// counter jumps past it when it lags behind, as it does for files written without one.
func NextID(ctx context.Context, store tree.Store, counterPath string, floor int64) (string, error) {
	v, err := store.Transaction(ctx, counterPath, func(current any) (any, error) {
		return Above(current, floor)
	})
	if err != nil {
		return "", fmt.Errorf("failed to allocate id at %s: %w", counterPath, err)
	}
	return FormatID(v), nil
}

// FormatID renders a stored id (string or JSON number) as a string.
func FormatID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	case int:
		return strconv.Itoa(id)
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

// ValidKey reports whether id can be used as a single path segment.
func ValidKey(id string) bool {
	return id != "" && !strings.ContainsAny(id, "/.#$[]")
}
