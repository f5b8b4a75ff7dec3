package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/calcly/calculator-api/internal/core/domain"
	"github.com/calcly/calculator-api/internal/core/ports"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	lastInput   ports.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	s.lastInput = input
	if s.registerErr != nil {
		return "", nil, s.registerErr
	}
	return "issued-token", stubbedUser(input.Username, input.Email), nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	now := time.Now().UTC()
	user := stubbedUser("johndoe", "john@example.com")
	user.LastLogin = &now
	return "issued-token", user, nil
}

func stubbedUser(username, email string) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		FirstName: "John",
		LastName:  "Doe",
		Email:     email,
		Username:  username,
		IsActive:  true,
	}
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

const registerBody = `{
	"first_name": "John",
	"last_name": "Doe",
	"email": "john@example.com",
	"username": "johndoe",
	"password": "StrongPass123",
	"confirm_password": "StrongPass123"
}`

func TestAuthHandler_Register_Created(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	rec := postJSON(t, h.Register, "/auth/register", registerBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	body := decodeBody(t, rec)
	if body["access_token"] != "issued-token" {
		t.Fatalf("missing access_token: %v", body)
	}
	if body["token_type"] != "bearer" {
		t.Fatalf("expected token_type bearer, got %v", body["token_type"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user envelope: %v", body)
	}
	if user["username"] != "johndoe" {
		t.Fatalf("unexpected user: %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}
	if svc.lastInput.Email != "john@example.com" {
		t.Fatalf("input not forwarded to service: %+v", svc.lastInput)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrDuplicateIdentity})

	rec := postJSON(t, h.Register, "/auth/register", registerBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body)
	}
}

func TestAuthHandler_Register_BadPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"first_name":`},
		{"missing fields", `{"first_name": "John"}`},
		{"short password", strings.Replace(registerBody, "StrongPass123", "abc", 2)},
		{"bad email", strings.Replace(registerBody, "john@example.com", "not-an-email", 1)},
		{"password mismatch", strings.Replace(registerBody, `"confirm_password": "StrongPass123"`, `"confirm_password": "Different123"`, 1)},
	}
	for _, tc := range cases {
		rec := postJSON(t, h.Register, "/auth/register", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", tc.name, rec.Code, rec.Body)
		}
	}
}

func TestAuthHandler_Register_ServiceValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.Validationf("password must be at least 6 characters")})

	rec := postJSON(t, h.Register, "/auth/register", registerBody)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["error"] != "password must be at least 6 characters" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestAuthHandler_Login_OK(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	rec := postJSON(t, h.Login, "/auth/login", `{"identifier": "johndoe", "password": "StrongPass123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	body := decodeBody(t, rec)
	if body["access_token"] != "issued-token" || body["token_type"] != "bearer" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	rec := postJSON(t, h.Login, "/auth/login", `{"identifier": "johndoe", "password": "WrongPass123"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["error"] != "invalid credentials" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for _, body := range []string{`{}`, `{"identifier": "johndoe"}`, `{"password": "StrongPass123"}`} {
		rec := postJSON(t, h.Login, "/auth/login", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}
