package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/collection"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	// FailureKey holds a *Failure that RespondError fills in, so middlewares
	// can log and count the error behind a response.
	FailureKey ContextKey = "failure"
)

// Failure is the error a handler answered with.
type Failure struct {
	Err error
}

const (
	msgInvalidBody = "Corpo da requisição inválido"
	maxBodyBytes   = 1 << 20
)

// RespondJSON writes v as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// RespondMessage writes the {"message": ...} envelope.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondError maps err to its status code and writes its user facing message.
// Details of internal failures stay in the logs.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	if f, ok := r.Context().Value(FailureKey).(*Failure); ok {
		f.Err = err
	}
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "kind", apperr.KindOf(err), "error", err)
	}
	RespondMessage(w, status, apperr.Message(err))
}

// decodeBody reads any JSON value from the request body.
func decodeBody(r *http.Request) (any, error) {
	var v any
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.New(apperr.ValidationMissingFields, msgInvalidBody)
		}
		return nil, apperr.Wrap(apperr.ValidationMissingFields, msgInvalidBody, err)
	}
	return v, nil
}

// decodeObject reads a JSON object from the request body.
func decodeObject(r *http.Request) (collection.Record, error) {
	v, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, apperr.New(apperr.ValidationMissingFields, msgInvalidBody)
	}
	return obj, nil
}

// decodeObjects reads a JSON array of objects from the request body.
func decodeObjects(r *http.Request) ([]collection.Record, error) {
	v, err := decodeBody(r)
	if err != nil {
		return nil, err
	}
	return asObjects(v)
}

func asObjects(v any) ([]collection.Record, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, apperr.New(apperr.ValidationMissingFields, msgInvalidBody)
	}
	out := make([]collection.Record, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, apperr.New(apperr.ValidationMissingFields, msgInvalidBody)
		}
		out = append(out, obj)
	}
	return out, nil
}
