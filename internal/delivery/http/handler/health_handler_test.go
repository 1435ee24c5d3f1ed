package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealth(t *testing.T) {
	cases := []struct {
		name  string
		store Pinger
		cache Pinger
		code  int
		want  map[string]string
	}{
		{"all up", stubPinger{}, stubPinger{}, fiber.StatusOK, map[string]string{"store": "up", "cache": "up"}},
		{"no cache", stubPinger{}, nil, fiber.StatusOK, map[string]string{"store": "up", "cache": "disabled"}},
		{"cache down", stubPinger{}, stubPinger{err: errors.New("down")}, fiber.StatusOK, map[string]string{"cache": "down"}},
		{"store down", stubPinger{err: errors.New("down")}, nil, fiber.StatusServiceUnavailable, map[string]string{"store": "down"}},
	}

	for _, tc := range cases {
		app := fiber.New()
		NewHealthHandler(tc.store, tc.cache).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		var body struct {
			Data map[string]string `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		_ = resp.Body.Close()

		if resp.StatusCode != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, resp.StatusCode)
		}
		for k, v := range tc.want {
			if body.Data[k] != v {
				t.Fatalf("%s: expected %s=%s, got %q", tc.name, k, v, body.Data[k])
			}
		}
	}
}
