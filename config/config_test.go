package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_DRIVER", "DATABASE_URL", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET",
		"JWT_ACCESS_TTL_MINUTES", "JWT_REFRESH_TTL_HOURS", "CORS_ALLOWED_ORIGINS",
		"MEDIA_BACKEND", "MEDIA_DIR", "KAFKA_BROKERS", "REDIS_ADDR",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "9876" {
		t.Errorf("expected default port 9876, got %q", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" || cfg.DatabaseURL != "./app.db" {
		t.Errorf("expected sqlite ./app.db, got %q %q", cfg.DBDriver, cfg.DatabaseURL)
	}
	if cfg.JWTAccessTTL != 30*time.Minute {
		t.Errorf("expected 30m access ttl, got %s", cfg.JWTAccessTTL)
	}
	if cfg.JWTRefreshTTL != 7*24*time.Hour {
		t.Errorf("expected 7d refresh ttl, got %s", cfg.JWTRefreshTTL)
	}
	if cfg.JWTRefreshSecret != cfg.JWTAccessSecret {
		t.Errorf("expected refresh secret to fall back to access secret")
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected kafka disabled, got %v", cfg.KafkaBrokers)
	}
}

func TestLoadPostgresDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "krishi")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "krishi")
	t.Setenv("DB_SSLMODE", "")

	cfg := Load()

	want := "host=db port=5433 user=krishi password=pw dbname=krishi sslmode=disable"
	if cfg.DatabaseURL != want {
		t.Fatalf("expected %q, got %q", want, cfg.DatabaseURL)
	}
}

func TestLoadListsAndInts(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("JWT_ACCESS_TTL_MINUTES", "not-a-number")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")

	cfg := Load()

	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("unexpected brokers %v", cfg.KafkaBrokers)
	}
	if cfg.JWTAccessTTL != 30*time.Minute {
		t.Errorf("expected fallback ttl, got %s", cfg.JWTAccessTTL)
	}
	if cfg.RateLimitPerMinute != 5 {
		t.Errorf("expected rate limit 5, got %d", cfg.RateLimitPerMinute)
	}
}
