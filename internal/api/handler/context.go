package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/pantry-api/internal/api/middleware"
	"github.com/sirpyerre/pantry-api/internal/core/domain"
)

// actorClaims returns the verified claims injected by the Auth middleware.
// Their absence means the route was mounted without the middleware, which is
// treated as an unauthenticated request.
func actorClaims(c echo.Context) (*domain.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.Claims)
	if !ok || claims == nil || claims.SubjectID <= 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
