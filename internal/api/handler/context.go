package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/api/middleware"
	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// actorID returns the id of the authenticated caller. Routes reaching a
// handler always run behind Authenticate, so missing claims mean the route
// was wired without it.
func actorID(c echo.Context) (string, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.UserID == "" {
		return "", domain.ErrUnauthenticated
	}
	return claims.UserID, nil
}
