package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/api/middleware"
	"github.com/delibery/pedidos-api/internal/core/domain"
)

// callerFrom extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: the subject must be
// present and the role known.
func callerFrom(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.SubjectID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	if !id.Role.Valid() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing caller role")
	}
	return id, nil
}
