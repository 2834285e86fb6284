package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

type stubOrderService struct {
	createFn func(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error)
	getFn    func(ctx context.Context, caller domain.Identity, key string) (*domain.Order, error)
	listFn   func(ctx context.Context, in ports.ListOrdersInput) ([]*domain.Order, error)
	updateFn func(ctx context.Context, caller domain.Identity, key, status string) (*domain.Order, error)
	deleteFn func(ctx context.Context, caller domain.Identity, key string) error
}

func (s *stubOrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderService) GetOrder(ctx context.Context, caller domain.Identity, key string) (*domain.Order, error) {
	return s.getFn(ctx, caller, key)
}

func (s *stubOrderService) ListOrders(ctx context.Context, in ports.ListOrdersInput) ([]*domain.Order, error) {
	return s.listFn(ctx, in)
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, caller domain.Identity, key, status string) (*domain.Order, error) {
	return s.updateFn(ctx, caller, key, status)
}

func (s *stubOrderService) DeleteOrder(ctx context.Context, caller domain.Identity, key string) error {
	return s.deleteFn(ctx, caller, key)
}

func sampleOrder() *domain.Order {
	return &domain.Order{
		Key:           "k1",
		Number:        1000,
		Day:           "19102026",
		SubjectID:     "u1",
		Customer:      "Maria",
		Phone:         "-",
		Address:       domain.Address{Street: "Rua A", Number: "10"},
		Type:          domain.DefaultOrderType,
		PaymentMethod: domain.DefaultPaymentMethod,
		Status:        domain.OrderPending,
		Items:         []domain.Item{{Name: "Pizza", Quantity: 2, UnitPrice: 30}},
		CreatedAt:     time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderHandler_Create_Success(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(_ context.Context, in ports.CreateOrderInput) (*ports.OrderResult, error) {
			if in.Caller.SubjectID != "u1" {
				t.Fatalf("caller not forwarded: %+v", in.Caller)
			}
			if in.IdempotencyKey != "idem-1" {
				t.Fatalf("idempotency key not forwarded: %q", in.IdempotencyKey)
			}
			if in.Customer != "Maria" || in.Address.Street != "Rua A" || len(in.Items) != 1 || in.Items[0].Quantity != 2 {
				t.Fatalf("body not mapped: %+v", in)
			}
			if in.Courier != nil {
				t.Fatalf("courier should be nil when absent")
			}
			return &ports.OrderResult{Order: sampleOrder()}, nil
		},
	}
	h := NewOrderHandler(stub)

	body := `{"customer":"Maria","address":{"street":"Rua A","number":"10"},"items":[{"name":"Pizza","quantity":2,"unit_price":30}]}`
	c, rec := newCtx(http.MethodPost, "/orders", body, &testClient)
	c.Request().Header.Set("Idempotency-Key", "idem-1")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/orders/k1" {
		t.Fatalf("unexpected Location: %q", loc)
	}

	var resp orderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Key != "k1" || resp.Number != 1000 || resp.Status != "pendente" || resp.CreatedBy != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Courier != nil {
		t.Fatalf("empty courier should be omitted")
	}
}

func TestOrderHandler_Create_Replay(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(context.Context, ports.CreateOrderInput) (*ports.OrderResult, error) {
			return &ports.OrderResult{Order: sampleOrder(), AlreadyExisted: true}, nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := newCtx(http.MethodPost, "/orders", `{"customer":"Maria","address":{"street":"Rua A"}}`, &testClient)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_ValidationError(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(context.Context, ports.CreateOrderInput) (*ports.OrderResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewOrderHandler(stub)

	c, _ := newCtx(http.MethodPost, "/orders", `{"status":"voando","items":[{"quantity":0}]}`, &testClient)
	err := h.Create(c)

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := map[string]bool{}
	for _, f := range ve.Fields {
		got[f.Field] = true
	}
	for _, want := range []string{"customer", "address", "status", "items[0].name", "items[0].quantity"} {
		if !got[want] {
			t.Fatalf("expected %s in %+v", want, ve.Fields)
		}
	}
}

func TestOrderHandler_Create_InvalidPayload(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	c, _ := newCtx(http.MethodPost, "/orders", "not-json", &testClient)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOrderHandler_Create_NoIdentity(t *testing.T) {
	h := NewOrderHandler(&stubOrderService{})

	c, _ := newCtx(http.MethodPost, "/orders", `{}`, nil)
	err := h.Create(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestOrderHandler_List_DefaultsToToday(t *testing.T) {
	var gotDay string
	stub := &stubOrderService{
		listFn: func(_ context.Context, in ports.ListOrdersInput) ([]*domain.Order, error) {
			gotDay = in.Day
			return []*domain.Order{sampleOrder()}, nil
		},
	}
	h := NewOrderHandler(stub)
	h.now = func() time.Time { return time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC) }

	c, rec := newCtx(http.MethodGet, "/orders", "", &testClient)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotDay != "19102026" {
		t.Fatalf("expected today's day, got %q", gotDay)
	}

	var resp listOrdersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Day != "19102026" || resp.Count != 1 || resp.Data[0].Key != "k1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestOrderHandler_Get_NotFound(t *testing.T) {
	stub := &stubOrderService{
		getFn: func(_ context.Context, _ domain.Identity, key string) (*domain.Order, error) {
			if key != "missing" {
				t.Fatalf("unexpected key %q", key)
			}
			return nil, domain.ErrOrderNotFound
		},
	}
	h := NewOrderHandler(stub)

	c, _ := newCtx(http.MethodGet, "/orders/missing", "", &testClient)
	c.SetParamNames("key")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	stub := &stubOrderService{
		updateFn: func(_ context.Context, _ domain.Identity, key, status string) (*domain.Order, error) {
			o := sampleOrder()
			o.Status = domain.OrderStatus(status)
			return o, nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := newCtx(http.MethodPatch, "/orders/k1/status", `{"status":"entregue"}`, &testClient)
	c.SetParamNames("key")
	c.SetParamValues("k1")
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp orderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "entregue" {
		t.Fatalf("expected entregue, got %s", resp.Status)
	}

	c, _ = newCtx(http.MethodPatch, "/orders/k1/status", `{"status":"voando"}`, &testClient)
	var ve *domain.ValidationError
	if err := h.UpdateStatus(c); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOrderHandler_Delete(t *testing.T) {
	stub := &stubOrderService{
		deleteFn: func(_ context.Context, caller domain.Identity, _ string) error {
			if caller.Role != domain.RoleInternal {
				return domain.ErrForbidden
			}
			return nil
		},
	}
	h := NewOrderHandler(stub)

	c, rec := newCtx(http.MethodDelete, "/orders/k1", "", &testInternal)
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	c, _ = newCtx(http.MethodDelete, "/orders/k1", "", &testClient)
	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
