package identity

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	defaultCertsMaxAge   = time.Hour
	defaultFetchTimeout  = 5 * time.Second
)

type firebaseClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// FirebaseVerifier verifies Firebase Auth ID tokens against Google's published
// signing certificates. Certificates are cached until their max-age runs out.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client
	now       func() time.Time

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

// NewFirebaseVerifier returns a verifier for tokens issued to projectID.
// A nil client gets a default one with a short timeout.
func NewFirebaseVerifier(projectID, certsURL string, client *http.Client) *FirebaseVerifier {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &FirebaseVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    client,
		now:       time.Now,
	}
}

// Verify checks an ID token and returns a client identity for its subject.
// A failure to reach the certificate endpoint is reported as unauthenticated
// and never retried.
func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (domain.Identity, error) {
	var claims firebaseClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return f.key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(f.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+f.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(f.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: firebase token: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: firebase token: empty subject", domain.ErrUnauthenticated)
	}

	return domain.Identity{
		SubjectID: claims.Subject,
		Label:     claims.Email,
		Role:      domain.RoleClient,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

func (f *FirebaseVerifier) key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if k, ok := f.keys[kid]; ok && f.now().Before(f.expiresAt) {
		return k, nil
	}

	if err := f.refresh(ctx); err != nil {
		return nil, err
	}

	k, ok := f.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return k, nil
}

// refresh must be called with f.mu held.
func (f *FirebaseVerifier) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.certsURL, nil)
	if err != nil {
		return fmt.Errorf("build certs request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch certs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch certs: unexpected status %d", resp.StatusCode)
	}

	var certs map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
		return fmt.Errorf("decode certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		k, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if err != nil {
			return fmt.Errorf("parse cert %q: %w", kid, err)
		}
		keys[kid] = k
	}

	f.keys = keys
	f.expiresAt = f.now().Add(maxAge(resp.Header.Get("Cache-Control")))
	return nil
}

// maxAge extracts max-age from a Cache-Control header value.
func maxAge(cacheControl string) time.Duration {
	for _, directive := range strings.Split(cacheControl, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(directive), "=")
		if !ok || !strings.EqualFold(name, "max-age") {
			continue
		}
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultCertsMaxAge
}
