package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// AppConfigRepository looks up client application configuration.
type AppConfigRepository interface {
	FindBySubject(ctx context.Context, subjectID string) (*domain.AppConfig, error)
}
