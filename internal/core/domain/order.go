package domain

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pendente"
	OrderPreparing OrderStatus = "preparando"
	OrderOnTheWay  OrderStatus = "saiu_para_entrega"
	OrderDelivered OrderStatus = "entregue"
	OrderCancelled OrderStatus = "cancelado"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPending:   {},
	OrderPreparing: {},
	OrderOnTheWay:  {},
	OrderDelivered: {},
	OrderCancelled: {},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// Defaults applied to optional order fields the caller left out.
const (
	DefaultOrderType                = "Entrega"
	DefaultPaymentMethod            = "Outros"
	DefaultPhone                    = "-"
	DefaultEstimatedDeliveryMinutes = 30
	FirstOrderNumber                = 1000
)

// Address is the delivery address of an order. Every part is optional.
type Address struct {
	Street    string `json:"street" bson:"street"`
	Number    string `json:"number" bson:"number"`
	District  string `json:"district" bson:"district"`
	Reference string `json:"reference" bson:"reference"`
}

// Courier identifies the driver assigned to an order.
type Courier struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Item is one line of an order.
type Item struct {
	Name      string  `json:"name" bson:"name"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	UnitPrice float64 `json:"unit_price" bson:"unit_price"`
	Notes     string  `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Order is a delivery order taken through the API.
type Order struct {
	Key                      string      `json:"key" bson:"_id"`
	Number                   int64       `json:"number" bson:"number"`
	Day                      string      `json:"day" bson:"day"`
	SubjectID                string      `json:"subject_id" bson:"subject_id"`
	Customer                 string      `json:"customer" bson:"customer"`
	Phone                    string      `json:"phone" bson:"phone"`
	Address                  Address     `json:"address" bson:"address"`
	Type                     string      `json:"type" bson:"type"`
	Courier                  Courier     `json:"courier" bson:"courier"`
	PaymentMethod            string      `json:"payment_method" bson:"payment_method"`
	Status                   OrderStatus `json:"status" bson:"status"`
	DeliveryFee              float64     `json:"delivery_fee" bson:"delivery_fee"`
	Total                    float64     `json:"total" bson:"total"`
	Items                    []Item      `json:"items" bson:"items"`
	EstimatedDeliveryMinutes int         `json:"estimated_delivery_minutes" bson:"estimated_delivery_minutes"`
	CreatedAt                time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt                time.Time   `json:"updated_at" bson:"updated_at"`
}

// DayKey formats t as the DDMMYYYY day orders are grouped by.
func DayKey(t time.Time) string {
	return fmt.Sprintf("%02d%02d%04d", t.Day(), int(t.Month()), t.Year())
}

// ParseDayKey validates a DDMMYYYY day key.
func ParseDayKey(s string) (time.Time, error) {
	t, err := time.Parse("02012006", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: expected DDMMYYYY", s)
	}
	return t, nil
}
