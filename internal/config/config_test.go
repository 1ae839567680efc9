package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOURCALC_ENV", "production")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.Store.Driver != "sqlite" || cfg.AI.Provider != "gemini" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Autosave.Interval != 30*time.Second || cfg.Trip.MinDuration != 0 || cfg.AI.MonthlyQuota != 100 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.HTTP.CORSOrigins) != 1 || cfg.HTTP.CORSOrigins[0] != "*" {
		t.Fatalf("cors = %v", cfg.HTTP.CORSOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOURCALC_ENV", "production")
	t.Setenv("TOURCALC_STORE_DRIVER", "postgres")
	t.Setenv("TOURCALC_AUTOSAVE_SECONDS", "5")
	t.Setenv("TOURCALC_MIN_DURATION", "1")
	t.Setenv("TOURCALC_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TOURCALC_BACKUP_S3_PATH_STYLE", "true")
	t.Setenv("TOURCALC_AI_TIMEOUT_SECONDS", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != "postgres" || cfg.Autosave.Interval != 5*time.Second || cfg.Trip.MinDuration != 1 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.HTTP.CORSOrigins) != 2 || cfg.HTTP.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors = %v", cfg.HTTP.CORSOrigins)
	}
	if !cfg.Backup.PathStyle || cfg.AI.Timeout != 1500*time.Millisecond {
		t.Fatalf("unexpected backup/ai config: %+v %+v", cfg.Backup, cfg.AI)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"TOURCALC_STORE_DRIVER", "mysql"},
		{"TOURCALC_AI_PROVIDER", "mystery"},
		{"TOURCALC_MIN_DURATION", "-2"},
		{"TOURCALC_AUTOSAVE_SECONDS", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv("TOURCALC_ENV", "production")
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("%s=%s should be rejected", tt.key, tt.value)
			}
		})
	}
}
