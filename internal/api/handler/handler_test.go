package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/api/middleware"
	"github.com/delibery/pedidos-api/internal/core/domain"
)

var (
	testClient   = domain.Identity{SubjectID: "u1", Label: "Pizzaria", Role: domain.RoleClient}
	testInternal = domain.Identity{SubjectID: "painel", Role: domain.RoleInternal}
)

// newCtx builds an echo context with a JSON body and, when id is non-nil, the
// identity the Auth middleware would have attached.
func newCtx(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.ContextKeyIdentity, *id)
	}
	return c, rec
}
