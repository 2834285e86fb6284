package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

// Authenticator validates bearer credentials by asking each configured
// verifier in turn. The first verifier that accepts the token wins, so every
// strategy ends in the same Identity shape.
type Authenticator struct {
	verifiers []ports.Verifier
	log       zerolog.Logger
}

// NewAuthenticator returns an Authenticator trying verifiers in order.
func NewAuthenticator(log zerolog.Logger, verifiers ...ports.Verifier) *Authenticator {
	return &Authenticator{verifiers: verifiers, log: log}
}

// Authenticate parses an Authorization header value. Every failure wraps
// domain.ErrUnauthenticated; verification is never retried.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (domain.Identity, error) {
	token, err := bearerToken(header)
	if err != nil {
		return domain.Identity{}, err
	}

	var errs []error
	for _, v := range a.verifiers {
		id, err := v.Verify(ctx, token)
		if err == nil {
			return id, nil
		}
		errs = append(errs, err)
	}

	a.log.Debug().Err(errors.Join(errs...)).Msg("credential rejected")
	return domain.Identity{}, domain.ErrInvalidToken
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingCredential
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrInvalidScheme
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrInvalidScheme
	}
	return token, nil
}
