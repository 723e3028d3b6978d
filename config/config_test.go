package config

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.OpenHour != 10 || cfg.CloseHour != 18 {
		t.Fatalf("defaults = %s %d-%d, want sqlite 10-18", cfg.DBDriver, cfg.OpenHour, cfg.CloseHour)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("TokenTTL = %s, want 12h", cfg.TokenTTL)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Tokyo" {
		t.Fatalf("Location = %v, %v; want Asia/Tokyo", loc, err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("BYPASS_FROM", "2026-10-01")
	t.Setenv("BYPASS_TO", "2026-10-03")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBDriver != "postgres" || len(cfg.CORSOrigins) != 2 || cfg.BypassTo != "2026-10-03" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: "sqlite", Timezone: "UTC", OpenHour: 10, CloseHour: 18}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"bad_driver", func(c *Config) { c.DBDriver = "oracle" }, true},
		{"bad_hour", func(c *Config) { c.CloseHour = 25 }, true},
		{"half_bypass", func(c *Config) { c.BypassFrom = "2026-10-01" }, true},
		{"bad_bypass_date", func(c *Config) { c.BypassFrom, c.BypassTo = "2026-10-01", "10/03" }, true},
		{"bad_timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}
