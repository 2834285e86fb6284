package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

type stubMetricService struct {
	listFn  func(ctx context.Context, in ports.MetricQueryInput) ([]*domain.MetricRecord, error)
	clearFn func(ctx context.Context, in ports.MetricQueryInput) (int64, error)
}

func (s *stubMetricService) List(ctx context.Context, in ports.MetricQueryInput) ([]*domain.MetricRecord, error) {
	return s.listFn(ctx, in)
}

func (s *stubMetricService) Clear(ctx context.Context, in ports.MetricQueryInput) (int64, error) {
	return s.clearFn(ctx, in)
}

func TestMetricHandler_List(t *testing.T) {
	stub := &stubMetricService{
		listFn: func(_ context.Context, in ports.MetricQueryInput) ([]*domain.MetricRecord, error) {
			if in.Caller.SubjectID != "u1" || in.Subject != "" || in.Limit != 5 {
				t.Fatalf("unexpected query: %+v", in)
			}
			return []*domain.MetricRecord{{ID: "r1", SubjectID: "u1", Path: "/orders", Status: 201}}, nil
		},
	}
	h := NewMetricHandler(stub)

	c, rec := newCtx(http.MethodGet, "/metrics?limit=5", "", &testClient)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listMetricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Subject != "u1" || resp.Count != 1 || resp.Data[0].ID != "r1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMetricHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubMetricService{
		listFn: func(context.Context, ports.MetricQueryInput) ([]*domain.MetricRecord, error) { return nil, nil },
	}
	h := NewMetricHandler(stub)

	c, rec := newCtx(http.MethodGet, "/metrics", "", &testClient)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data, ok := resp["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty array, got %#v", resp["data"])
	}
}

func TestMetricHandler_List_BadLimit(t *testing.T) {
	h := NewMetricHandler(&stubMetricService{})

	c, _ := newCtx(http.MethodGet, "/metrics?limit=lots", "", &testClient)
	err := h.List(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestMetricHandler_List_OtherSubjectForbidden(t *testing.T) {
	stub := &stubMetricService{
		listFn: func(_ context.Context, in ports.MetricQueryInput) ([]*domain.MetricRecord, error) {
			if in.Subject != "u2" {
				t.Fatalf("subject not forwarded: %+v", in)
			}
			return nil, domain.ErrForbidden
		},
	}
	h := NewMetricHandler(stub)

	c, _ := newCtx(http.MethodGet, "/metrics?subject=u2", "", &testClient)
	if err := h.List(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMetricHandler_Clear(t *testing.T) {
	stub := &stubMetricService{
		clearFn: func(_ context.Context, in ports.MetricQueryInput) (int64, error) {
			if in.Subject != "u9" || in.Caller.Role != domain.RoleInternal {
				t.Fatalf("unexpected query: %+v", in)
			}
			return 4, nil
		},
	}
	h := NewMetricHandler(stub)

	c, rec := newCtx(http.MethodDelete, "/metrics?subject=u9", "", &testInternal)
	if err := h.Clear(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp clearMetricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Subject != "u9" || resp.Deleted != 4 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
