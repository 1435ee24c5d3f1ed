package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"intern-hub/internal/domain/access"
	"intern-hub/internal/domain/user"
	"intern-hub/internal/pkg/response"
	"intern-hub/internal/pkg/validate"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type fakeAuthenticator struct {
	sessions map[string]access.Session
}

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (access.Session, error) {
	sess, ok := f.sessions[token]
	if !ok {
		return access.Session{}, errors.New("bad token")
	}
	return sess, nil
}

func newApp(auth Authenticator) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())

	mw := NewAuthMiddleware(auth)
	app.Post("/hr-only", mw.Middleware(), Require(access.OpAssignMentor), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "done", nil)
	})
	app.Get("/page", mw.PageMiddleware(), RequirePage(access.OpViewHRDashboard), func(c fiber.Ctx) error {
		return c.SendString("hr page")
	})
	app.Get("/invalid", func(c fiber.Ctx) error {
		return validate.Invalid("title", "is required")
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/hidden", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("cause"))
	})
	return app
}

func decodeEnvelope(t *testing.T, resp *http.Response) response.Envelope {
	t.Helper()
	defer resp.Body.Close()
	var env response.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func TestRequire_StatusByRole(t *testing.T) {
	hr := access.Session{UserID: uuid.New(), Role: user.RoleHR}
	intern := access.Session{UserID: uuid.New(), Role: user.RoleIntern}
	app := newApp(fakeAuthenticator{sessions: map[string]access.Session{"hr": hr, "intern": intern}})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no token", "", fiber.StatusUnauthorized},
		{"unknown token", "Bearer nope", fiber.StatusUnauthorized},
		{"wrong role", "Bearer intern", fiber.StatusForbidden},
		{"allowed", "Bearer hr", fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/hr-only", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		env := decodeEnvelope(t, resp)
		if resp.StatusCode != tc.want || env.Status != tc.want {
			t.Fatalf("%s: expected %d, got %d/%d", tc.name, tc.want, resp.StatusCode, env.Status)
		}
	}
}

func TestPageMiddleware_Redirects(t *testing.T) {
	intern := access.Session{UserID: uuid.New(), Role: user.RoleIntern}
	app := newApp(fakeAuthenticator{sessions: map[string]access.Session{"intern": intern}})

	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Fatalf("anonymous: expected /login, got %q", loc)
	}

	req = httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "intern"})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if loc := resp.Header.Get("Location"); loc != "/dashboard/intern" {
		t.Fatalf("wrong role: expected /dashboard/intern, got %q", loc)
	}
}

func TestErrorMiddleware_Shapes(t *testing.T) {
	app := newApp(fakeAuthenticator{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/invalid", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	env := decodeEnvelope(t, resp)
	if env.Status != fiber.StatusUnprocessableEntity || env.Message != response.MessageInvalidRequestData {
		t.Fatalf("unexpected envelope %+v", env)
	}
	data, _ := env.Data.(map[string]any)
	errs, _ := data["errors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("expected one field error, got %+v", env.Data)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if env := decodeEnvelope(t, resp); env.Status != fiber.StatusInternalServerError {
		t.Fatalf("panic: expected 500, got %+v", env)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/hidden", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if env := decodeEnvelope(t, resp); env.Message != response.MessageInternalServerError {
		t.Fatalf("5xx message leaked: %q", env.Message)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if env := decodeEnvelope(t, resp); env.Status != fiber.StatusNotFound {
		t.Fatalf("unknown route: expected 404, got %+v", env)
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		token string
		ok    bool
	}{
		"Bearer abc":   {"abc", true},
		"bearer  abc ": {"abc", true},
		"Basic abc":    {"", false},
		"Bearer":       {"", false},
		"":             {"", false},
	}
	for in, want := range cases {
		tok, ok := BearerToken(in)
		if tok != want.token || ok != want.ok {
			t.Fatalf("BearerToken(%q) = %q, %v", in, tok, ok)
		}
	}
}
