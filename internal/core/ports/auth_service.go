package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// Verifier checks a raw bearer token and returns the identity its verified
// claims describe. Any failure wraps domain.ErrUnauthenticated.
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// TokenIssuer mints this service's own signed tokens.
type TokenIssuer interface {
	Issue(subjectID, label string, role domain.Role) (string, domain.Identity, error)
}

// Authenticator turns an Authorization header value into an Identity.
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (domain.Identity, error)
}

// LoginResult is returned by both login flows.
type LoginResult struct {
	Token     string
	Identity  domain.Identity
	AppConfig *domain.AppConfig
}

type AuthService interface {
	// LoginInternal checks the configured panel credentials.
	LoginInternal(ctx context.Context, username, password string) (*LoginResult, error)
	// LoginClient exchanges an identity-provider token for a local token.
	LoginClient(ctx context.Context, idToken string) (*LoginResult, error)
}
