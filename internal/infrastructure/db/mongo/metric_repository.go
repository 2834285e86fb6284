package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

const collectionMetricRecords = "metric_records"

// MetricRepository stores one document per observed request. Records are
// never updated; they only leave through DeleteBySubject.
type MetricRepository struct {
	col *mongo.Collection
}

func NewMetricRepository(db *mongo.Database) *MetricRepository {
	return &MetricRepository{col: db.Collection(collectionMetricRecords)}
}

func (r *MetricRepository) Insert(ctx context.Context, rec *domain.MetricRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("%w: insert metric record: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// FindBySubject returns the newest records of subjectID, at most limit of them.
func (r *MetricRepository) FindBySubject(ctx context.Context, subjectID string, limit int) ([]*domain.MetricRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "captured_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find metric records: %v", domain.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	records := make([]*domain.MetricRecord, 0, limit)
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("%w: read metric records: %v", domain.ErrStoreUnavailable, err)
	}
	return records, nil
}

func (r *MetricRepository) DeleteBySubject(ctx context.Context, subjectID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"subject_id": subjectID})
	if err != nil {
		return 0, fmt.Errorf("%w: delete metric records: %v", domain.ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the per-subject timeline index and the path index.
func (r *MetricRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "captured_at", Value: -1}}},
		{Keys: bson.D{{Key: "path", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
