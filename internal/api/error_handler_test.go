package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
)

func render(t *testing.T, err error, exposeDetail bool) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop(), exposeDetail)(err, c)

	var resp errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
		t.Fatalf("invalid json: %v", jerr)
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.Validation("Please provide email and password"), http.StatusBadRequest, "Please provide email and password"},
		{domain.Conflict("Email already registered"), http.StatusBadRequest, "Email already registered"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ConfigError("JWT_SECRET is not configured"), http.StatusInternalServerError, "JWT_SECRET is not configured"},
		{echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
	}
	for _, tc := range cases {
		code, resp := render(t, tc.err, false)
		if code != tc.status || resp.Message != tc.msg || resp.Success {
			t.Errorf("%v: got %d %+v", tc.err, code, resp)
		}
	}
}

func TestHTTPErrorHandler_InternalDetail(t *testing.T) {
	err := domain.Internal(errors.New("mongo: no reachable servers"))

	code, resp := render(t, err, false)
	if code != http.StatusInternalServerError || resp.Message != "Internal Server Error" || resp.Detail != "" {
		t.Fatalf("production response leaked detail: %d %+v", code, resp)
	}

	_, resp = render(t, err, true)
	if resp.Detail == "" {
		t.Fatalf("expected detail outside production")
	}

	code, resp = render(t, errors.New("unexpected"), false)
	if code != http.StatusInternalServerError || resp.Message != "Internal Server Error" {
		t.Fatalf("unexpected response for foreign error: %d %+v", code, resp)
	}
}

func TestHTTPErrorHandler_ClientErrorsNeverCarryDetail(t *testing.T) {
	_, resp := render(t, domain.ErrInvalidCredentials, true)
	if resp.Detail != "" {
		t.Fatalf("4xx responses must not carry detail: %+v", resp)
	}
}
