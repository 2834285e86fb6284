package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

func TestMetricRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewMetricRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Insert(context.Background(), &domain.MetricRecord{ID: "r1", SubjectID: "u1", Status: 200})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("insert failure is store unavailable", func(mt *mtest.T) {
		repo := NewMetricRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutting down"}))

		err := repo.Insert(context.Background(), &domain.MetricRecord{ID: "r1"})
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			mt.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	mt.Run("find by subject", func(mt *mtest.T) {
		repo := NewMetricRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionMetricRecords
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "r2"}, {Key: "subject_id", Value: "u1"}, {Key: "status", Value: 201}, {Key: "captured_at", Value: now}},
			bson.D{{Key: "_id", Value: "r1"}, {Key: "subject_id", Value: "u1"}, {Key: "status", Value: 499}, {Key: "aborted", Value: true}},
		))

		got, err := repo.FindBySubject(context.Background(), "u1", 10)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			mt.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0].ID != "r2" || got[0].Status != 201 || !got[0].CapturedAt.Equal(now) {
			mt.Fatalf("unexpected first record: %+v", got[0])
		}
		if !got[1].Aborted || got[1].Status != domain.StatusClientClosedRequest {
			mt.Fatalf("unexpected second record: %+v", got[1])
		}
	})

	mt.Run("cursor failure is store unavailable", func(mt *mtest.T) {
		repo := NewMetricRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionMetricRecords
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: "r1"}, {Key: "subject_id", Value: "u1"}, {Key: "status", Value: 200}},
			),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 43, Message: "cursor not found"}),
		)

		_, err := repo.FindBySubject(context.Background(), "u1", 10)
		if !errors.Is(err, domain.ErrStoreUnavailable) {
			mt.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})

	mt.Run("delete by subject", func(mt *mtest.T) {
		repo := NewMetricRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 3}})

		n, err := repo.DeleteBySubject(context.Background(), "u1")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if n != 3 {
			mt.Fatalf("expected 3 deleted, got %d", n)
		}
	})
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find missing", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionOrders
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByKey(context.Background(), "k1", "u1")
		if !errors.Is(err, domain.ErrOrderNotFound) {
			mt.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})

	mt.Run("find", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionOrders
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "k1"}, {Key: "number", Value: int64(1000)}, {Key: "status", Value: "pendente"}, {Key: "subject_id", Value: "u1"}},
		))

		o, err := repo.FindByKey(context.Background(), "k1", "u1")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if o.Key != "k1" || o.Number != 1000 || o.Status != domain.OrderPending {
			mt.Fatalf("unexpected order: %+v", o)
		}
	})

	mt.Run("update status returns updated document", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: "k1"}, {Key: "status", Value: "entregue"}}},
		})

		o, err := repo.UpdateStatus(context.Background(), "k1", "", domain.OrderDelivered)
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if o.Status != domain.OrderDelivered {
			mt.Fatalf("expected entregue, got %s", o.Status)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		if err := repo.Delete(context.Background(), "k1"); !errors.Is(err, domain.ErrOrderNotFound) {
			mt.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestAppConfigRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewAppConfigRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionAppConfigs
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "uid-1"}, {Key: "app_name", Value: "Pizzaria Bella"}},
		))

		cfg, err := repo.FindBySubject(context.Background(), "uid-1")
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if cfg.SubjectID != "uid-1" || cfg.AppName != "Pizzaria Bella" {
			mt.Fatalf("unexpected config: %+v", cfg)
		}
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewAppConfigRepository(mt.DB)
		ns := mt.DB.Name() + "." + collectionAppConfigs
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := repo.FindBySubject(context.Background(), "uid-2"); !errors.Is(err, domain.ErrAppConfigNotFound) {
			mt.Fatalf("expected ErrAppConfigNotFound, got %v", err)
		}
	})
}
