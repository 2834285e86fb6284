package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/pkg/metrics"
)

// InternalCredentials are the panel login credentials. PasswordHash is bcrypt.
type InternalCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService implements the internal and client login flows.
type AuthService struct {
	issuer   ports.TokenIssuer
	external ports.Verifier
	configs  ports.AppConfigRepository
	creds    InternalCredentials
	log      zerolog.Logger
}

// NewAuthService wires the login flows. A nil external verifier disables
// client login.
func NewAuthService(
	issuer ports.TokenIssuer,
	external ports.Verifier,
	configs ports.AppConfigRepository,
	creds InternalCredentials,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		issuer:   issuer,
		external: external,
		configs:  configs,
		creds:    creds,
		log:      log,
	}
}

func (s *AuthService) LoginInternal(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	res, err := s.loginInternal(username, password)
	recordLogin("internal", err)
	return res, err
}

func (s *AuthService) loginInternal(username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" || s.creds.Username == "" || s.creds.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.creds.PasswordHash), []byte(password))
	if !userOK || passErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, id, err := s.issuer.Issue(username, username, domain.RoleInternal)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subject", id.SubjectID).Msg("internal login")
	return &ports.LoginResult{Token: token, Identity: id}, nil
}

func (s *AuthService) LoginClient(ctx context.Context, idToken string) (*ports.LoginResult, error) {
	res, err := s.loginClient(ctx, idToken)
	recordLogin("client", err)
	return res, err
}

func (s *AuthService) loginClient(ctx context.Context, idToken string) (*ports.LoginResult, error) {
	if s.external == nil {
		return nil, fmt.Errorf("%w: client login is not enabled", domain.ErrUnauthenticated)
	}
	if idToken == "" {
		return nil, domain.ErrInvalidCredentials
	}

	external, err := s.external.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}

	cfg, err := s.configs.FindBySubject(ctx, external.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrAppConfigNotFound) {
			s.log.Warn().Str("subject", external.SubjectID).Msg("client without app config")
		}
		return nil, err
	}

	label := cfg.AppName
	if label == "" {
		label = external.Label
	}

	token, id, err := s.issuer.Issue(external.SubjectID, label, domain.RoleClient)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("subject", id.SubjectID).Str("app", cfg.AppName).Msg("client login")
	return &ports.LoginResult{Token: token, Identity: id, AppConfig: cfg}, nil
}

func recordLogin(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "failed"
	}
	metrics.LoginsTotal.WithLabelValues(kind, result).Inc()
}
