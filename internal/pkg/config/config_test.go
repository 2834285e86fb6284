package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 10*time.Hour {
		t.Fatalf("expected default token ttl 10h, got %s", cfg.TokenTTL)
	}
	if cfg.Mongo.Database != "pedidos" {
		t.Fatalf("unexpected mongo database: %q", cfg.Mongo.Database)
	}
	if cfg.Metrics.QueryLimit != 200 || cfg.Metrics.MaxQueryLimit != 1000 {
		t.Fatalf("unexpected metrics limits: %+v", cfg.Metrics)
	}
	if cfg.Firebase.ProjectID != "" || cfg.Firebase.AcceptBearer {
		t.Fatalf("firebase should be disabled by default: %+v", cfg.Firebase)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("expected CORS to allow any origin by default, got %v", cfg.AllowedOrigins)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":           "s3cret",
		"ENV":                  "production",
		"TOKEN_TTL":            "2h",
		"API_USER":             "painel",
		"FIREBASE_PROJECT_ID":  "delibery-auth",
		"METRICS_WORKERS":      "2",
		"CORS_ALLOWED_ORIGINS": "https://painel.delibery.app,https://app.delibery.app",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", cfg.TokenTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://app.delibery.app" {
		t.Fatalf("unexpected allowed origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Auth.APIUser != "painel" {
		t.Fatalf("unexpected api user: %q", cfg.Auth.APIUser)
	}
	if cfg.Firebase.ProjectID != "delibery-auth" {
		t.Fatalf("unexpected project id: %q", cfg.Firebase.ProjectID)
	}
	if cfg.Metrics.Workers != 2 {
		t.Fatalf("expected 2 workers, got %d", cfg.Metrics.Workers)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}
