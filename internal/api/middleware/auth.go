package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/api/metrics"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// CtxClaims is the echo context key holding the *domain.Claims of the caller.
const CtxClaims = "claims"

// Authenticate validates the bearer token of every request and attaches its
// claims to the echo context. The "Bearer" scheme is optional and matched
// case-insensitively.
func Authenticate(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonMissingToken).Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := validator.Validate(token)
			if err != nil {
				reason := domain.ErrTokenInvalid
				label := metrics.ReasonInvalid
				if errors.Is(err, domain.ErrTokenExpired) {
					reason, label = domain.ErrTokenExpired, metrics.ReasonExpired
				}
				metrics.AuthRejectionsTotal.WithLabelValues(label).Inc()
				return fmt.Errorf("%w: %w", domain.ErrUnauthenticated, reason)
			}

			c.Set(CtxClaims, claims)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims attached by Authenticate.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(CtxClaims).(*domain.Claims)
	return claims, ok && claims != nil
}

// BearerToken extracts the token from an Authorization header value. The
// "Bearer" scheme is optional; an empty result means no token was sent.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) > len("bearer ") && strings.EqualFold(header[:len("bearer ")], "bearer ") {
		header = header[len("bearer "):]
	}
	return strings.TrimSpace(header)
}
