package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

const collectionAppConfigs = "app_configs"

// AppConfigRepository reads client application configs keyed by the
// identity-provider uid. Documents are provisioned out of band.
type AppConfigRepository struct {
	col *mongo.Collection
}

func NewAppConfigRepository(db *mongo.Database) *AppConfigRepository {
	return &AppConfigRepository{col: db.Collection(collectionAppConfigs)}
}

func (r *AppConfigRepository) FindBySubject(ctx context.Context, subjectID string) (*domain.AppConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cfg domain.AppConfig
	if err := r.col.FindOne(ctx, bson.M{"_id": subjectID}).Decode(&cfg); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppConfigNotFound
		}
		return nil, fmt.Errorf("find app config: %w", err)
	}
	return &cfg, nil
}
