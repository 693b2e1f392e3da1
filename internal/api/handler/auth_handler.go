package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/api/middleware"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// Login failure messages. In uniform mode both failures read the same.
const (
	msgUserNotFound       = "Usuário não encontrado"
	msgWrongPassword      = "Senha incorreta"
	msgInvalidCredentials = "Email ou senha inválidos"
)

type AuthHandler struct {
	authService   ports.AuthService
	uniformErrors bool
}

// NewAuthHandler builds the login endpoints. With uniformErrors set, an
// unknown email and a wrong password produce the same response.
func NewAuthHandler(authService ports.AuthService, uniformErrors bool) *AuthHandler {
	return &AuthHandler{authService: authService, uniformErrors: uniformErrors}
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Payload inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusUnauthorized, h.failureMessage(msgUserNotFound)).SetInternal(err)
		case errors.Is(err, domain.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, h.failureMessage(msgWrongPassword)).SetInternal(err)
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Success: true, Token: result.Token, User: result.User})
}

// Verify reports the claims of the presented token.
//
// @Summary      Verify session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verifyResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/verificar [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	token := middleware.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
	claims, err := h.authService.Verify(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	return c.JSON(http.StatusOK, verifyResponse{Success: true, Claims: newClaimsView(claims)})
}

func (h *AuthHandler) failureMessage(specific string) string {
	if h.uniformErrors {
		return msgInvalidCredentials
	}
	return specific
}
