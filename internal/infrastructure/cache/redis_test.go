package cache

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"
	"time"

	"intern-hub/internal/config"
)

func TestRedis_DisabledFailsOpen(t *testing.T) {
	var buf bytes.Buffer
	r := NewRedis(config.RedisConfig{}, log.New(&buf, "", 0))

	if err := r.Revoke(context.Background(), "jti", time.Minute); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, err := r.IsRevoked(context.Background(), "jti")
	if err != nil || revoked {
		t.Fatalf("expected not revoked without redis, got %v %v", revoked, err)
	}
	if err := r.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error when unavailable")
	}
	if !strings.Contains(buf.String(), "[Cache]") {
		t.Fatalf("expected a cache log line, got %q", buf.String())
	}
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	if err := r.Revoke(context.Background(), "jti", time.Minute); err != nil {
		t.Fatalf("revoke on nil: %v", err)
	}
	if revoked, _ := r.IsRevoked(context.Background(), "jti"); revoked {
		t.Fatalf("nil store reported revoked")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close on nil: %v", err)
	}
}
