package config

import (
	"testing"
)

func validConfig() Config {
	cfg := Config{}
	cfg.HTTP.Port = 8080
	cfg.Database.Addrs = []string{"localhost:6379"}
	cfg.Index.URL = "http://localhost:8081"
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.Index.Namespace != "production" || cfg.Index.DocType != "documents" {
		t.Errorf("unexpected index identity defaults: %+v", cfg.Index)
	}
	if cfg.Index.RecordLimit != 100 || cfg.Index.GroupMaxHits != 10000 {
		t.Errorf("unexpected index query defaults: %+v", cfg.Index)
	}
	if cfg.Feed.OutputDir != ".data" {
		t.Errorf("unexpected feed default: %+v", cfg.Feed)
	}
	if cfg.Storage.KeyPrefix != "labeldex:" {
		t.Errorf("unexpected storage default: %+v", cfg.Storage)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Index.Namespace = "staging"
	cfg.Index.RecordLimit = 50
	cfg.ApplyDefaults()

	if cfg.Index.Namespace != "staging" {
		t.Errorf("namespace overwritten: %s", cfg.Index.Namespace)
	}
	if cfg.Index.RecordLimit != 50 {
		t.Errorf("record limit overwritten: %d", cfg.Index.RecordLimit)
	}
}

func TestValidate(t *testing.T) {
	valid := validConfig()
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.HTTP.Port = 0 }},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }},
		{"no database addrs", func(c *Config) { c.Database.Addrs = nil }},
		{"no index url", func(c *Config) { c.Index.URL = "" }},
		{"index url without scheme", func(c *Config) { c.Index.URL = "localhost:8081" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("LABELDEX_TEST_PASSWORD", "secret")

	in := []byte("password: ${LABELDEX_TEST_PASSWORD}\nhost: ${LABELDEX_TEST_HOST:-localhost}\nmissing: ${LABELDEX_TEST_ABSENT}")
	got := string(expandEnvVars(in))

	want := "password: secret\nhost: localhost\nmissing: "
	if got != want {
		t.Errorf("expandEnvVars = %q, want %q", got, want)
	}
}

func TestExpandEnvVars_SetVarBeatsDefault(t *testing.T) {
	t.Setenv("LABELDEX_TEST_HOST", "redis.internal")

	got := string(expandEnvVars([]byte("${LABELDEX_TEST_HOST:-localhost}")))
	if got != "redis.internal" {
		t.Errorf("expandEnvVars = %q, want %q", got, "redis.internal")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv = %q, want prod", got)
	}
}
