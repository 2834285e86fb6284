package domain

import (
	"testing"
	"time"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderPreparing, OrderOnTheWay, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if OrderStatus("lost").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
}

func TestDayKey(t *testing.T) {
	got := DayKey(time.Date(2025, time.March, 7, 23, 59, 0, 0, time.UTC))
	if got != "07032025" {
		t.Fatalf("expected 07032025, got %s", got)
	}
}

func TestParseDayKey(t *testing.T) {
	d, err := ParseDayKey("31122024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DayKey(d) != "31122024" {
		t.Fatalf("round trip mismatch: %s", DayKey(d))
	}

	for _, bad := range []string{"", "2024-12-31", "32122024", "abc"} {
		if _, err := ParseDayKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestValidationError_ListsEveryField(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "customer", Message: "customer is required"},
		{Field: "address", Message: "address is required"},
	}}
	want := "validation failed: customer is required; address is required"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
