package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
	"github.com/delibery/pedidos-api/internal/pkg/metrics"
)

// ContextKeyIdentity is where Auth stores the verified domain.Identity.
const ContextKeyIdentity = "identity"

// Auth resolves the Authorization header into an Identity and attaches it to
// the request. Requests without a valid credential stop here with 401.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			id, err := authn.Authenticate(c.Request().Context(), header)
			if err != nil {
				metrics.AuthRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error()).SetInternal(err)
			}

			c.Set(ContextKeyIdentity, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by Auth, if any.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(ContextKeyIdentity).(domain.Identity)
	return id, ok
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing"
	case errors.Is(err, domain.ErrInvalidScheme):
		return "scheme"
	default:
		return "invalid"
	}
}
