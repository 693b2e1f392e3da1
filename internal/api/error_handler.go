package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "error": "<mensagem>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.) and
	// handler-chosen messages.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil && he.Code >= http.StatusInternalServerError {
			log.Error().Err(he.Internal).Str("path", c.Path()).Msg("request failed")
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Token reasons are
	// checked before the generic unauthenticated case they wrap.
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expirado"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Token inválido"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Token não fornecido"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Acesso negado. Apenas administradores."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Senha incorreta"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuário não encontrado"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "Cliente não encontrado"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return http.StatusNotFound, "Pagamento não encontrado"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "Email já cadastrado"
	case errors.Is(err, domain.ErrDuplicateCPF):
		return http.StatusConflict, "CPF já cadastrado"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Tipo de usuário inválido"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, detail(err, domain.ErrInvalidInput, "Dados inválidos")
	case errors.Is(err, domain.ErrInvalidTransition):
		msg := "Transição de status inválida"
		if d := detail(err, domain.ErrInvalidTransition, ""); d != "" {
			msg += ": " + d
		}
		return http.StatusUnprocessableEntity, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Erro interno do servidor"
}

// detail strips the sentinel prefix from a wrapped error, leaving the
// caller-supplied context. fallback is used when nothing remains.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimSpace(strings.TrimPrefix(msg, ":"))
	if msg == "" {
		return fallback
	}
	return msg
}
