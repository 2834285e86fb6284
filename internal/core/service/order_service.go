package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/pkg/metrics"
)

type OrderService struct {
	repo   ports.OrderRepository
	idem   ports.IdempotencyStore
	seq    ports.OrderSequence
	logger zerolog.Logger
	now    func() time.Time
}

func NewOrderService(repo ports.OrderRepository, idem ports.IdempotencyStore, seq ports.OrderSequence, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, idem: idem, seq: seq, logger: logger, now: time.Now}
}

// CreateOrder fills in defaults and stores a new order. If an idempotency key
// is provided it is reserved before anything is written: a key that already
// produced an order returns that order, and a key whose first request is still
// running fails with ErrRequestInProgress.
func (s *OrderService) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*ports.OrderResult, error) {
	if err := requireCaller(input.Caller); err != nil {
		return nil, err
	}
	if input.Status != "" && !domain.OrderStatus(input.Status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	subject := input.Caller.SubjectID
	reserved := false
	if input.IdempotencyKey != "" {
		existing, claimed, err := s.claim(ctx, subject, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &ports.OrderResult{Order: existing, AlreadyExisted: true}, nil
		}
		reserved = claimed
	}

	order, err := s.store(ctx, subject, input)
	if err != nil {
		if reserved {
			s.release(ctx, subject, input.IdempotencyKey)
		}
		return nil, err
	}

	if reserved {
		if err := s.idem.Complete(ctx, subject, input.IdempotencyKey, order.Key); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", input.IdempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	metrics.OrdersCreatedTotal.WithLabelValues(order.PaymentMethod).Inc()
	s.logger.Info().
		Str("order_key", order.Key).
		Int64("number", order.Number).
		Str("subject", subject).
		Msg("order created")

	return &ports.OrderResult{Order: order}, nil
}

func (s *OrderService) store(ctx context.Context, subject string, input ports.CreateOrderInput) (*domain.Order, error) {
	now := s.now().UTC()
	day := domain.DayKey(now)

	number := input.Number
	if number <= 0 {
		next, err := s.seq.Next(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("next order number: %w", err)
		}
		number = next
	}

	order := &domain.Order{
		Key:                      uuid.NewString(),
		Number:                   number,
		Day:                      day,
		SubjectID:                subject,
		Customer:                 input.Customer,
		Phone:                    orDefault(input.Phone, domain.DefaultPhone),
		Address:                  domain.Address(input.Address),
		Type:                     orDefault(input.Type, domain.DefaultOrderType),
		PaymentMethod:            orDefault(input.PaymentMethod, domain.DefaultPaymentMethod),
		Status:                   domain.OrderStatus(orDefault(input.Status, string(domain.OrderPending))),
		DeliveryFee:              input.DeliveryFee,
		Total:                    input.Total,
		Items:                    toItems(input.Items),
		EstimatedDeliveryMinutes: input.EstimatedDeliveryMinutes,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if order.EstimatedDeliveryMinutes <= 0 {
		order.EstimatedDeliveryMinutes = domain.DefaultEstimatedDeliveryMinutes
	}
	if input.Courier != nil {
		order.Courier = domain.Courier(*input.Courier)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, err
	}
	return order, nil
}

// claim reserves an idempotency key. It returns the earlier order when the key
// already produced one. Store errors are logged and the order is created
// without a reservation.
func (s *OrderService) claim(ctx context.Context, subject, key string) (*domain.Order, bool, error) {
	orderKey, reserved, err := s.idem.Reserve(ctx, subject, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency reserve failed, creating anyway")
		return nil, false, nil
	}
	if reserved {
		return nil, true, nil
	}
	if orderKey == "" {
		return nil, false, domain.ErrRequestInProgress
	}

	existing, err := s.repo.FindByKey(ctx, orderKey, subject)
	if err != nil {
		if !errors.Is(err, domain.ErrOrderNotFound) {
			s.logger.Warn().Err(err).Str("order_key", orderKey).Msg("idempotent replay lookup failed")
			return nil, false, err
		}
		// The earlier order was deleted; a new one takes over the key.
		return nil, true, nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("order_key", existing.Key).Msg("idempotent replay")
	return existing, false, nil
}

func (s *OrderService) release(ctx context.Context, subject, key string) {
	if err := s.idem.Release(ctx, subject, key); err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}

// GetOrder returns one order. Clients only see orders they created.
func (s *OrderService) GetOrder(ctx context.Context, caller domain.Identity, key string) (*domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	return s.repo.FindByKey(ctx, key, scope(caller))
}

// ListOrders returns one day of orders, today by default.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) ([]*domain.Order, error) {
	if err := requireCaller(input.Caller); err != nil {
		return nil, err
	}
	day := input.Day
	if day == "" {
		day = domain.DayKey(s.now().UTC())
	} else if _, err := domain.ParseDayKey(day); err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{{Field: "day", Message: err.Error()}}}
	}

	orders, err := s.repo.ListByDay(ctx, day, scope(input.Caller))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, caller domain.Identity, key, status string) (*domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.UpdateStatus(ctx, key, scope(caller), next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_key", key).Str("status", status).Str("subject", caller.SubjectID).Msg("order status updated")
	return order, nil
}

// DeleteOrder removes an order. Only internal callers may delete.
func (s *OrderService) DeleteOrder(ctx context.Context, caller domain.Identity, key string) error {
	if caller.Role != domain.RoleInternal {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}

	s.logger.Info().Str("order_key", key).Str("subject", caller.SubjectID).Msg("order deleted")
	return nil
}

func requireCaller(caller domain.Identity) error {
	if caller.SubjectID == "" || !caller.Role.Valid() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// scope returns the subject filter for caller: internal callers see everything.
func scope(caller domain.Identity) string {
	if caller.Role == domain.RoleInternal {
		return ""
	}
	return caller.SubjectID
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func toItems(in []ports.ItemInput) []domain.Item {
	out := make([]domain.Item, len(in))
	for i, it := range in {
		out[i] = domain.Item(it)
	}
	return out
}
