package apperr

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies a failure so the HTTP layer can pick a status code.
type Kind int

const (
	Internal Kind = iota
	AuthMissing
	AuthMalformed
	AuthInvalid
	ValidationMissingFields
	DuplicateName
	NotFound
	BackingStoreReadFailure
	BackingStoreWriteFailure
	MalformedStoredJSON
)

// InternalMessage is the message shown for every failure that is not the caller's fault.
const InternalMessage = "Erro interno do servidor"

var kindNames = map[Kind]string{
	Internal:                 "Internal",
	AuthMissing:              "AuthMissing",
	AuthMalformed:            "AuthMalformed",
	AuthInvalid:              "AuthInvalid",
	ValidationMissingFields:  "ValidationMissingFields",
	DuplicateName:            "DuplicateName",
	NotFound:                 "NotFound",
	BackingStoreReadFailure:  "BackingStoreReadFailure",
	BackingStoreWriteFailure: "BackingStoreWriteFailure",
	MalformedStoredJSON:      "MalformedStoredJSON",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Error is a classified failure with a user facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperr.New(apperr.NotFound, "")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Read classifies err as a backing store read failure unless it is already classified.
func Read(err error) error {
	return classify(BackingStoreReadFailure, err)
}

// Write classifies err as a backing store write failure unless it is already classified.
func Write(err error) error {
	return classify(BackingStoreWriteFailure, err)
}

func classify(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(kind, InternalMessage, err)
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Message returns the user facing message of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return InternalMessage
}

// Status maps err to the HTTP status code the gateway answers with.
func Status(err error) int {
	switch KindOf(err) {
	case AuthMissing, AuthMalformed, AuthInvalid:
		return http.StatusUnauthorized
	case ValidationMissingFields, DuplicateName:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// MissingFields reports required request fields that were absent or empty.
func MissingFields(fields ...string) *Error {
	return New(ValidationMissingFields, "Campos obrigatórios ausentes: "+strings.Join(fields, ", "))
}
