package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/karnbhushan1994/freefortalk/internal/api/handler"
	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
	"github.com/karnbhushan1994/freefortalk/internal/core/service"
)

func newIssuer(t *testing.T) *service.JWTIssuer {
	t.Helper()
	issuer, err := service.NewTokenIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	return issuer
}

func expectAuthError(t *testing.T, err error) {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindAuth || de.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401 auth error, got %v", err)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := newIssuer(t)
	signed, err := issuer.Issue(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(issuer)(func(c echo.Context) error {
		called = true
		if c.Get(handler.CtxUserID) != "u1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(handler.CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	issuer := newIssuer(t)
	other, _ := service.NewTokenIssuer("other", time.Hour)
	foreign, _ := other.Issue(&domain.User{ID: "u1", Role: domain.RoleUser})

	cases := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"empty token":     "Bearer ",
		"garbage token":   "Bearer not-a-token",
		"foreign signing": "Bearer " + foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			h := Auth(issuer)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			expectAuthError(t, h(c))
		})
	}
}
