package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type addressRequest struct {
	Street    string `json:"street"    validate:"required"`
	Number    string `json:"number"`
	District  string `json:"district"`
	Reference string `json:"reference"`
}

type courierRequest struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"required"`
}

type itemRequest struct {
	Name      string  `json:"name"       validate:"required"`
	Quantity  int     `json:"quantity"   validate:"gte=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Notes     string  `json:"notes"`
}

// createOrderRequest is the body of POST /orders. Only customer and address
// are required; everything else falls back to a default.
type createOrderRequest struct {
	Number                   int64           `json:"number"                     validate:"gte=0"`
	Customer                 string          `json:"customer"                   validate:"required"`
	Phone                    string          `json:"phone"`
	Address                  *addressRequest `json:"address"                    validate:"required"`
	Type                     string          `json:"type"`
	Courier                  *courierRequest `json:"courier"`
	PaymentMethod            string          `json:"payment_method"`
	Status                   string          `json:"status"                     validate:"omitempty,oneof=pendente preparando saiu_para_entrega entregue cancelado"`
	DeliveryFee              float64         `json:"delivery_fee"               validate:"gte=0"`
	Total                    float64         `json:"total"                      validate:"gte=0"`
	Items                    []itemRequest   `json:"items"                      validate:"dive"`
	EstimatedDeliveryMinutes int             `json:"estimated_delivery_minutes" validate:"gte=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pendente preparando saiu_para_entrega entregue cancelado"`
}

type orderLinks struct {
	Self   string `json:"self"`
	Status string `json:"status"`
}

type addressResponse struct {
	Street    string `json:"street"`
	Number    string `json:"number"`
	District  string `json:"district"`
	Reference string `json:"reference"`
}

type courierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type itemResponse struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Notes     string  `json:"notes,omitempty"`
}

type orderResponse struct {
	Key                      string           `json:"key"`
	Number                   int64            `json:"number"`
	Day                      string           `json:"day"`
	Customer                 string           `json:"customer"`
	Phone                    string           `json:"phone"`
	Address                  addressResponse  `json:"address"`
	Type                     string           `json:"type"`
	Courier                  *courierResponse `json:"courier,omitempty"`
	PaymentMethod            string           `json:"payment_method"`
	Status                   string           `json:"status"`
	DeliveryFee              float64          `json:"delivery_fee"`
	Total                    float64          `json:"total"`
	Items                    []itemResponse   `json:"items"`
	EstimatedDeliveryMinutes int              `json:"estimated_delivery_minutes"`
	CreatedBy                string           `json:"created_by"`
	CreatedAt                time.Time        `json:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at"`
	Links                    orderLinks       `json:"_links"`
}

type listOrdersResponse struct {
	Day   string          `json:"day"`
	Count int             `json:"count"`
	Data  []orderResponse `json:"data"`
}
