package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.RoomCapacity != 100 {
		t.Errorf("RoomCapacity = %d, want 100", cfg.RoomCapacity)
	}
	if cfg.PingPeriod != 54*time.Second {
		t.Errorf("PingPeriod = %v, want 54s", cfg.PingPeriod)
	}
	if cfg.APIToken != "" {
		t.Errorf("APIToken = %q, want empty", cfg.APIToken)
	}
	if cfg.Backpressure != "kick" {
		t.Errorf("Backpressure = %q, want kick", cfg.Backpressure)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	body := "port: 9000\nroom_capacity: 2\napi_token: abc\nping_period: 10s\nbackpressure: drop\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CHAT_PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want env override 9100", cfg.Port)
	}
	if cfg.RoomCapacity != 2 {
		t.Errorf("RoomCapacity = %d, want 2", cfg.RoomCapacity)
	}
	if cfg.APIToken != "abc" {
		t.Errorf("APIToken = %q, want abc", cfg.APIToken)
	}
	if cfg.PingPeriod != 10*time.Second {
		t.Errorf("PingPeriod = %v, want 10s", cfg.PingPeriod)
	}
	if cfg.Backpressure != "drop" {
		t.Errorf("Backpressure = %q, want drop", cfg.Backpressure)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Port: 3000, RoomCapacity: 1, SendBuffer: 1, RateLimit: 1, RateBurst: 1, PingPeriod: time.Second}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.RoomCapacity = 0 }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"zero buffer", func(c *Config) { c.SendBuffer = 0 }},
		{"zero rate", func(c *Config) { c.RateLimit = 0 }},
		{"zero ping", func(c *Config) { c.PingPeriod = 0 }},
		{"unknown backpressure", func(c *Config) { c.Backpressure = "ignore" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mut(&c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
