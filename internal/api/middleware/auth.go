package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/karnbhushan1994/freefortalk/internal/api/handler"
	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
	"github.com/karnbhushan1994/freefortalk/internal/core/ports"
)

// TokenParser decodes and verifies a session token.
type TokenParser interface {
	Parse(token string) (*ports.SessionClaims, error)
}

// Auth validates the bearer token and injects its claims into the context.
// It only proves identity; no role is enforced here.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return domain.Unauthorized("missing authorization header")
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
				return domain.Unauthorized("invalid authorization header")
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				authErr := domain.Unauthorized("invalid token")
				authErr.Err = err
				return authErr
			}

			c.Set(handler.CtxUserID, claims.UserID)
			c.Set(handler.CtxRole, claims.Role)

			return next(c)
		}
	}
}
