package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaultsValidate(t *testing.T) {
	cfg := LoadEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Posabit.Timeout != 30*time.Second {
		t.Fatalf("unexpected posabit timeout %s", cfg.Posabit.Timeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("INGESTION_LOCK_TTL", "2m")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadEnv()
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected memory driver, got %q", cfg.Storage.Driver)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
	if cfg.Ingestion.LockTTL != 2*time.Minute {
		t.Fatalf("unexpected lock ttl %s", cfg.Ingestion.LockTTL)
	}
	if cfg.Postgres.MaxOpenConns != 10 {
		t.Fatalf("bad int should fall back, got %d", cfg.Postgres.MaxOpenConns)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown storage driver", func(c *Config) { c.Storage.Driver = "sqlite" }},
		{"bad posabit url", func(c *Config) { c.Posabit.BaseURL = "not a url" }},
		{"kafka enabled without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }},
		{"zero lock ttl", func(c *Config) { c.Ingestion.LockTTL = 0 }},
		{"bad log level", func(c *Config) { c.Logger.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadEnv()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidateKafkaDisabledAllowsEmptyTopic(t *testing.T) {
	cfg := LoadEnv()
	cfg.Kafka.Enabled = false
	cfg.Kafka.Topic = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled kafka should not need a topic: %v", err)
	}
}
