package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
	"github.com/karnbhushan1994/freefortalk/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error)
	loginFn  func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	return s.loginFn(ctx, in)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func expectDomainError(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != kind {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	return de
}

var ann = domain.PublicUser{ID: "u1", Name: "Ann", Email: "a@x.com", Role: domain.RoleUser}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
			if in.Name != "Ann" || in.Email != "a@x.com" || in.Password != "secret123" || in.Role != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{Token: "token123", User: ann}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", `{"name":"Ann","email":"a@x.com","password":"secret123"}`), rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "token123" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "a@x.com" || user["role"] != "user" || user["id"] != "u1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	for _, k := range []string{"password", "passwordHash"} {
		if _, leaked := user[k]; leaked {
			t.Fatalf("response leaked %s", k)
		}
	}
}

func TestAuthHandler_Signup_FormEncoded(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
			if in.Email != "a@x.com" || in.Role != "user" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{Token: "t", User: ann}, nil
		},
	}

	form := url.Values{"name": {"Ann"}, "email": {"a@x.com"}, "password": {"secret123"}, "role": {"user"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	if err := NewAuthHandler(stub).Signup(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_ServiceErrorPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
			return nil, domain.Conflict("Email already registered")
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", `{"name":"Ann","email":"a@x.com","password":"secret123"}`), rec)

	err := NewAuthHandler(stub).Signup(c)
	expectDomainError(t, err, domain.KindConflict)
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, in ports.SignupInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	err := handler.Signup(e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", "not-json"), rec))
	expectDomainError(t, err, domain.KindValidation)

	rec = httptest.NewRecorder()
	err = handler.Signup(e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", `{"email":"a@x.com"}`), rec))
	de := expectDomainError(t, err, domain.KindValidation)
	if de.Message != "Please provide name, email and password" {
		t.Fatalf("unexpected message: %s", de.Message)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			if in.Email != "a@x.com" || in.Password != "secret123" {
				t.Fatalf("unexpected args: %+v", in)
			}
			return &ports.AuthResult{Token: "token123", User: ann}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"secret123"}`), rec)

	if err := NewAuthHandler(stub).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Token != "token123" || resp.User != ann {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	rec := httptest.NewRecorder()
	err := NewAuthHandler(stub).Login(e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"a@x.com","password":"bad"}`), rec))
	if err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{"{", `{"email":"a@x.com"}`, `{"password":"x"}`} {
		rec := httptest.NewRecorder()
		err := handler.Login(e.NewContext(jsonRequest(http.MethodPost, "/auth/login", body), rec))
		expectDomainError(t, err, domain.KindValidation)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAuthService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec)
	c.Set(CtxUserID, "u1")
	c.Set(CtxRole, domain.RoleUser)

	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u1" || resp.User.Role != domain.RoleUser {
		t.Fatalf("unexpected response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	err := handler.Me(e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/me", nil), rec))
	expectDomainError(t, err, domain.KindAuth)
}
