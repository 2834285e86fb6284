package handler

import (
	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createOrderRequest, caller domain.Identity, idempotencyKey string) ports.CreateOrderInput {
	in := ports.CreateOrderInput{
		Caller:                   caller,
		IdempotencyKey:           idempotencyKey,
		Number:                   req.Number,
		Customer:                 req.Customer,
		Phone:                    req.Phone,
		Type:                     req.Type,
		PaymentMethod:            req.PaymentMethod,
		Status:                   req.Status,
		DeliveryFee:              req.DeliveryFee,
		Total:                    req.Total,
		EstimatedDeliveryMinutes: req.EstimatedDeliveryMinutes,
		Items:                    make([]ports.ItemInput, len(req.Items)),
	}
	if req.Address != nil {
		in.Address = ports.AddressInput(*req.Address)
	}
	if req.Courier != nil {
		in.Courier = &ports.CourierInput{ID: req.Courier.ID, Name: req.Courier.Name}
	}
	for i, it := range req.Items {
		in.Items[i] = ports.ItemInput(it)
	}
	return in
}

// --- Service result → HTTP response ---

func toOrderResponse(o *domain.Order) orderResponse {
	resp := orderResponse{
		Key:      o.Key,
		Number:   o.Number,
		Day:      o.Day,
		Customer: o.Customer,
		Phone:    o.Phone,
		Address: addressResponse{
			Street:    o.Address.Street,
			Number:    o.Address.Number,
			District:  o.Address.District,
			Reference: o.Address.Reference,
		},
		Type:                     o.Type,
		PaymentMethod:            o.PaymentMethod,
		Status:                   string(o.Status),
		DeliveryFee:              o.DeliveryFee,
		Total:                    o.Total,
		Items:                    make([]itemResponse, len(o.Items)),
		EstimatedDeliveryMinutes: o.EstimatedDeliveryMinutes,
		CreatedBy:                o.SubjectID,
		CreatedAt:                o.CreatedAt.UTC(),
		UpdatedAt:                o.UpdatedAt.UTC(),
		Links: orderLinks{
			Self:   "/orders/" + o.Key,
			Status: "/orders/" + o.Key + "/status",
		},
	}
	if o.Courier != (domain.Courier{}) {
		resp.Courier = &courierResponse{ID: o.Courier.ID, Name: o.Courier.Name}
	}
	for i, it := range o.Items {
		resp.Items[i] = itemResponse(it)
	}
	return resp
}

func toListResponse(day string, orders []*domain.Order) listOrdersResponse {
	data := make([]orderResponse, len(orders))
	for i, o := range orders {
		data[i] = toOrderResponse(o)
	}
	return listOrdersResponse{Day: day, Count: len(data), Data: data}
}
