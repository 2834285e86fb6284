package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAppConfigNotFound  = errors.New("app config not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrRequestInProgress  = errors.New("a request with this idempotency key is still in progress")
)

// Reasons a credential is rejected before any verifier sees it.
var (
	ErrMissingCredential = fmt.Errorf("%w: missing authorization header", ErrUnauthenticated)
	ErrInvalidScheme     = fmt.Errorf("%w: invalid authorization header", ErrUnauthenticated)
	ErrInvalidToken      = fmt.Errorf("%w: invalid or expired token", ErrUnauthenticated)
)

// FieldError describes one invalid or missing request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field problem found in a request at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
