package ports

import (
	"context"

	"github.com/delibery/pedidos-api/internal/core/domain"
)

// AddressInput holds the delivery address parts.
type AddressInput struct {
	Street    string
	Number    string
	District  string
	Reference string
}

// CourierInput identifies the assigned driver.
type CourierInput struct {
	ID   string
	Name string
}

// ItemInput is one order line.
type ItemInput struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Notes     string
}

// CreateOrderInput carries all data needed to create an order. Zero values
// mean "not sent" and are replaced with the documented defaults.
type CreateOrderInput struct {
	Caller                   domain.Identity
	IdempotencyKey           string
	Number                   int64
	Customer                 string
	Phone                    string
	Address                  AddressInput
	Type                     string
	Courier                  *CourierInput
	PaymentMethod            string
	Status                   string
	DeliveryFee              float64
	Total                    float64
	Items                    []ItemInput
	EstimatedDeliveryMinutes int
}

// OrderResult is returned by CreateOrder.
type OrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

// ListOrdersInput selects one day of orders.
type ListOrdersInput struct {
	Caller domain.Identity
	Day    string // DDMMYYYY; empty = today
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderResult, error)
	GetOrder(ctx context.Context, caller domain.Identity, key string) (*domain.Order, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, caller domain.Identity, key, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, caller domain.Identity, key string) error
}
