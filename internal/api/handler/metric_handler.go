package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

// MetricHandler exposes the caller's own request metric records.
type MetricHandler struct {
	service ports.MetricService
}

func NewMetricHandler(service ports.MetricService) *MetricHandler {
	return &MetricHandler{service: service}
}

type listMetricsResponse struct {
	Subject string                 `json:"subject"`
	Count   int                    `json:"count"`
	Data    []*domain.MetricRecord `json:"data"`
}

type clearMetricsResponse struct {
	Subject string `json:"subject"`
	Deleted int64  `json:"deleted"`
}

// List handles GET /metrics.
//
// @Summary      List request metric records
// @Description  Newest first. Clients may only read their own subject.
// @Tags         metrics
// @Produce      json
// @Security     BearerAuth
// @Param        subject  query     string  false  "Subject id (default: caller)"
// @Param        limit    query     int     false  "Maximum records (default 200, max 1000)"
// @Success      200      {object}  listMetricsResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /metrics [get]
func (h *MetricHandler) List(c echo.Context) error {
	in, err := metricQuery(c, true)
	if err != nil {
		return err
	}

	records, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.MetricRecord{}
	}
	return c.JSON(http.StatusOK, listMetricsResponse{
		Subject: subjectOf(in),
		Count:   len(records),
		Data:    records,
	})
}

// Clear handles DELETE /metrics.
//
// @Summary      Delete every metric record of one subject
// @Tags         metrics
// @Produce      json
// @Security     BearerAuth
// @Param        subject  query     string  false  "Subject id (default: caller)"
// @Success      200      {object}  clearMetricsResponse
// @Failure      401      {object}  errorResponse
// @Failure      403      {object}  errorResponse
// @Router       /metrics [delete]
func (h *MetricHandler) Clear(c echo.Context) error {
	in, err := metricQuery(c, false)
	if err != nil {
		return err
	}

	n, err := h.service.Clear(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clearMetricsResponse{Subject: subjectOf(in), Deleted: n})
}

func metricQuery(c echo.Context, withLimit bool) (ports.MetricQueryInput, error) {
	caller, err := callerFrom(c)
	if err != nil {
		return ports.MetricQueryInput{}, err
	}

	in := ports.MetricQueryInput{Caller: caller}
	b := echo.QueryParamsBinder(c).String("subject", &in.Subject)
	if withLimit {
		b = b.Int("limit", &in.Limit)
	}
	if err := b.BindError(); err != nil {
		return ports.MetricQueryInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	return in, nil
}

func subjectOf(in ports.MetricQueryInput) string {
	if in.Subject != "" {
		return in.Subject
	}
	return in.Caller.SubjectID
}
