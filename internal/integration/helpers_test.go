package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"intern-hub/internal/app"
	"intern-hub/internal/config"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

const (
	hrEmail    = "hr@test.local"
	hrPassword = "hr-password-1"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginData struct {
	AccessToken string `json:"accessToken"`
	Redirect    string `json:"redirect"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

type idData struct {
	ID string `json:"id"`
}

type fieldErrors struct {
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{
			AppName:       "intern-hub",
			Environment:   "test",
			HTTPPort:      "0",
			StorageDriver: config.StorageDriverMemory,
		},
		JWT: config.JWTConfig{
			AccessSecret:     "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: time.Hour,
		},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Seed: config.SeedConfig{HRName: "Hannah HR", HREmail: hrEmail, HRPassword: hrPassword},
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	a, cleanup, err := app.Bootstrap(context.Background(), testConfig(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })
	return a.Fiber
}

type apiClient struct {
	t   *testing.T
	app *fiber.App
}

func (c apiClient) do(method, path, token string, body any) (int, semanticResponse) {
	c.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out semanticResponse
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, string(raw), err)
		}
	}
	return resp.StatusCode, out
}

// page fetches an HTML page with the session cookie set.
func (c apiClient) page(path, token string) *http.Response {
	c.t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	resp, err := c.app.Test(req, fiber.TestConfig{Timeout: 5 * time.Second})
	if err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func (c apiClient) register(name, email, role string) string {
	c.t.Helper()

	status, res := c.do(http.MethodPost, "/api/v1/register", "", map[string]string{
		"name": name, "email": email, "password": "password123", "role": role,
	})
	if status != http.StatusCreated {
		c.t.Fatalf("register %s: expected 201, got %d (%s)", email, status, res.Message)
	}
	var u idData
	decode(c.t, res.Data, &u)
	return u.ID
}

func (c apiClient) login(email, password string) loginData {
	c.t.Helper()

	status, res := c.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	if status != http.StatusOK {
		c.t.Fatalf("login %s: expected 200, got %d (%s)", email, status, res.Message)
	}
	var out loginData
	decode(c.t, res.Data, &out)
	if out.AccessToken == "" {
		c.t.Fatalf("login %s: empty accessToken", email)
	}
	return out
}

func decode(t *testing.T, raw json.RawMessage, out any) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode %s: %v", string(raw), err)
	}
}

func expectStatus(t *testing.T, what string, got, want int, res semanticResponse) {
	t.Helper()
	if got != want {
		t.Fatalf("%s: expected %d, got %d (message=%q data=%s)", what, want, got, res.Message, string(res.Data))
	}
	if res.Status != want {
		t.Fatalf("%s: envelope status %d does not match %d", what, res.Status, want)
	}
}
