package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

const (
	defaultQueryLimit = 200
	maxQueryLimit     = 1000
)

// MetricService reads and clears the metric records of one subject.
// Clients only ever reach their own subject; internal callers may name any.
type MetricService struct {
	repo         ports.MetricRepository
	defaultLimit int
	maxLimit     int
	log          zerolog.Logger
}

// NewMetricService returns a MetricService. Non-positive limits fall back to
// 200 records by default and 1000 at most.
func NewMetricService(repo ports.MetricRepository, defaultLimit, maxLimit int, log zerolog.Logger) *MetricService {
	if maxLimit <= 0 {
		maxLimit = maxQueryLimit
	}
	if defaultLimit <= 0 || defaultLimit > maxLimit {
		defaultLimit = min(defaultQueryLimit, maxLimit)
	}
	return &MetricService{repo: repo, defaultLimit: defaultLimit, maxLimit: maxLimit, log: log}
}

func (s *MetricService) List(ctx context.Context, in ports.MetricQueryInput) ([]*domain.MetricRecord, error) {
	subject, err := s.subject(in)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindBySubject(ctx, subject, s.limit(in.Limit))
	if err != nil {
		return nil, fmt.Errorf("list metric records: %w", err)
	}
	return records, nil
}

func (s *MetricService) Clear(ctx context.Context, in ports.MetricQueryInput) (int64, error) {
	subject, err := s.subject(in)
	if err != nil {
		return 0, err
	}

	n, err := s.repo.DeleteBySubject(ctx, subject)
	if err != nil {
		return 0, fmt.Errorf("clear metric records: %w", err)
	}

	s.log.Info().
		Str("subject", subject).
		Str("requested_by", in.Caller.SubjectID).
		Int64("deleted", n).
		Msg("metric records cleared")
	return n, nil
}

func (s *MetricService) subject(in ports.MetricQueryInput) (string, error) {
	if in.Caller.SubjectID == "" {
		return "", domain.ErrUnauthenticated
	}
	subject := in.Subject
	if subject == "" {
		subject = in.Caller.SubjectID
	}
	if in.Caller.Role != domain.RoleInternal && subject != in.Caller.SubjectID {
		return "", domain.ErrForbidden
	}
	return subject, nil
}

func (s *MetricService) limit(requested int) int {
	switch {
	case requested <= 0:
		return s.defaultLimit
	case requested > s.maxLimit:
		return s.maxLimit
	default:
		return requested
	}
}
