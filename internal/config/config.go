package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	StorageDriver string
	CORSOrigins   []string
	AutoMigrate   bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	// SlowQueryThreshold logs statements slower than this; zero disables it.
	SlowQueryThreshold time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

type AuthConfig struct {
	BcryptCost   int
	CookieSecure bool
}

// SeedConfig describes the first HR account, created at server start and by
// cmd/seed when SEED_HR_EMAIL is set.
type SeedConfig struct {
	HRName     string
	HREmail    string
	HRPassword string
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an arbitrary lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		StorageDriver: strings.ToLower(optDefault("STORAGE_DRIVER", StorageDriverPostgres)),
		CORSOrigins:   splitList(opt("CORS_ALLOW_ORIGINS")),
		AutoMigrate:   optBool("AUTO_MIGRATE", true),
	}

	switch cfg.App.StorageDriver {
	case StorageDriverPostgres:
		cfg.Database = DatabaseConfig{
			DBHost:     req("DB_HOST"),
			DBPort:     optDefault("DB_PORT", "5432"),
			DBName:     req("DB_NAME"),
			DBUser:     req("DB_USER"),
			DBPassword: opt("DB_PASSWORD"),
			DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),
		}
	case StorageDriverMemory:
	default:
		invalid = append(invalid, "STORAGE_DRIVER")
	}

	cfg.Database.ConnectTimeout = optDuration("DB_CONNECT_TIMEOUT", 5*time.Second)
	cfg.Database.PoolMaxConns = int32(optInt("DB_POOL_MAX_CONNS", 10))
	cfg.Database.PoolMinConns = int32(optInt("DB_POOL_MIN_CONNS", 0))
	cfg.Database.PoolMaxConnLifetime = optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour)
	cfg.Database.PoolMaxConnIdleTime = optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute)
	cfg.Database.PoolHealthCheckPeriod = optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute)
	cfg.Database.SlowQueryThreshold = optDuration("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond)

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 24*time.Hour),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		DB:       optInt("REDIS_DB", 0),
	}

	cfg.Auth = AuthConfig{
		BcryptCost:   optInt("BCRYPT_COST", 10),
		CookieSecure: optBool("COOKIE_SECURE", false),
	}

	cfg.Seed = SeedConfig{
		HRName:     optDefault("SEED_HR_NAME", "HR Admin"),
		HREmail:    opt("SEED_HR_EMAIL"),
		HRPassword: opt("SEED_HR_PASSWORD"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
