package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
	now     func() time.Time
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service, now: time.Now}
}

// Create handles POST /orders.
//
// @Summary      Create an order
// @Description  Only customer and address.street are required; the remaining fields get defaults.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createOrderRequest  true   "Order"
// @Success      201              {object}  orderResponse
// @Success      200              {object}  orderResponse  "Replay of an earlier request with the same Idempotency-Key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	idempotencyKey := c.Request().Header.Get(headerIdempotencyKey)
	result, err := h.service.CreateOrder(c.Request().Context(), toCreateInput(req, caller, idempotencyKey))
	if err != nil {
		return err
	}

	resp := toOrderResponse(result.Order)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	if result.AlreadyExisted {
		return c.JSON(http.StatusOK, resp)
	}
	return c.JSON(http.StatusCreated, resp)
}

// List handles GET /orders.
//
// @Summary      List one day of orders
// @Description  Clients only see the orders they created.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        day  query     string  false  "Day as DDMMYYYY (default: today, UTC)"
// @Success      200  {object}  listOrdersResponse
// @Failure      401  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	day := c.QueryParam("day")
	if day == "" {
		day = domain.DayKey(h.now().UTC())
	}

	orders, err := h.service.ListOrders(c.Request().Context(), ports.ListOrdersInput{Caller: caller, Day: day})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(day, orders))
}

// Get handles GET /orders/:key.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        key  path      string  true  "Order key"
// @Success      200  {object}  orderResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{key} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), caller, c.Param("key"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus handles PATCH /orders/:key/status.
//
// @Summary      Change the status of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string               true  "Order key"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/{key}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.service.UpdateStatus(c.Request().Context(), caller, c.Param("key"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// Delete handles DELETE /orders/:key.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        key  path  string  true  "Order key"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/{key} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOrder(c.Request().Context(), caller, c.Param("key")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
