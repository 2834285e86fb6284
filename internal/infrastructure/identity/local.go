// Package identity holds the token verifiers the authenticator chains:
// tokens minted by this service and ID tokens minted by Firebase Auth.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

const (
	localIssuer     = "pedidos-api"
	defaultTokenTTL = 10 * time.Hour
)

type localClaims struct {
	Name string      `json:"name,omitempty"`
	Type domain.Role `json:"type"`
	jwt.RegisteredClaims
}

// LocalTokens mints and verifies HS256 tokens signed with the shared secret.
type LocalTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLocalTokens returns a LocalTokens using secret. A non-positive ttl falls
// back to ten hours.
func NewLocalTokens(secret string, ttl time.Duration) *LocalTokens {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &LocalTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for subjectID and returns it with the identity it carries.
func (t *LocalTokens) Issue(subjectID, label string, role domain.Role) (string, domain.Identity, error) {
	if subjectID == "" || !role.Valid() {
		return "", domain.Identity{}, errors.New("issue token: subject and a valid role are required")
	}

	now := t.now()
	exp := now.Add(t.ttl)
	claims := localClaims{
		Name: label,
		Type: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    localIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", domain.Identity{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, domain.Identity{
		SubjectID: subjectID,
		Label:     label,
		Role:      role,
		ExpiresAt: time.Unix(exp.Unix(), 0).UTC(),
	}, nil
}

// Verify checks signature, issuer and expiry of a locally minted token.
func (t *LocalTokens) Verify(_ context.Context, token string) (domain.Identity, error) {
	var claims localClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(localIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: local token: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" || !claims.Type.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: local token: missing subject or role", domain.ErrUnauthenticated)
	}

	return domain.Identity{
		SubjectID: claims.Subject,
		Label:     claims.Name,
		Role:      claims.Type,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
