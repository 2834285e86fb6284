package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/delibery/pedidos-api/internal/core/domain"
	"github.com/delibery/pedidos-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type clientLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type identityResponse struct {
	SubjectID string    `json:"subject_id"`
	Label     string    `json:"label,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authResponse struct {
	Token     string            `json:"token"`
	Identity  identityResponse  `json:"identity"`
	AppConfig *domain.AppConfig `json:"app_config,omitempty"`
}

// Login authenticates the internal panel user and returns a local token.
//
// @Summary      Internal login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.LoginInternal(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// LoginClient exchanges an identity-provider ID token for a local token.
//
// @Summary      Client login
// @Description  The client must have an application config provisioned, otherwise 403.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      clientLoginRequest  true  "Identity-provider ID token"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /login/client [post]
func (h *AuthHandler) LoginClient(c echo.Context) error {
	var req clientLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.LoginClient(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(r *ports.LoginResult) authResponse {
	return authResponse{
		Token: r.Token,
		Identity: identityResponse{
			SubjectID: r.Identity.SubjectID,
			Label:     r.Identity.Label,
			Role:      string(r.Identity.Role),
			ExpiresAt: r.Identity.ExpiresAt.UTC(),
		},
		AppConfig: r.AppConfig,
	}
}
