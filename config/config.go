package config

import (
	"fmt"
	"os"
	"time"

	"talentflow/core/seed"
	"talentflow/core/transport"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// Server
	ServerPort string

	// Record store
	DatabasePath string

	// Optional YAML profile for chaos and seed tuning
	ProfilePath string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "talentflow.db"),
		ProfilePath:  getEnv("PROFILE_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Profile tunes the simulation: chaos injection and fixture volume.
type Profile struct {
	Chaos ChaosProfile `yaml:"chaos"`
	Seed  seed.Profile `yaml:"seed"`
}

// ChaosProfile is the YAML form of the transport fault policy.
type ChaosProfile struct {
	ErrorRate    *float64 `yaml:"error_rate"`
	MinLatencyMs *int     `yaml:"min_latency_ms"`
	MaxLatencyMs *int     `yaml:"max_latency_ms"`
	RandomSeed   *int64   `yaml:"random_seed"`
}

// LoadProfile reads a YAML profile, falling back to defaults for any
// field (or the whole file) that is absent.
func LoadProfile(path string) (*Profile, error) {
	profile := &Profile{Seed: seed.DefaultProfile()}
	if path == "" {
		return profile, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if profile.Seed.Jobs <= 0 {
		profile.Seed = seed.DefaultProfile()
	}
	return profile, nil
}

// FaultPolicy converts the chaos profile into a transport policy.
func (p *Profile) FaultPolicy() transport.FaultPolicy {
	policy := transport.DefaultFaultPolicy()
	if p.Chaos.ErrorRate != nil {
		policy.ErrorRate = *p.Chaos.ErrorRate
	}
	if p.Chaos.MinLatencyMs != nil {
		policy.MinLatency = time.Duration(*p.Chaos.MinLatencyMs) * time.Millisecond
	}
	if p.Chaos.MaxLatencyMs != nil {
		policy.MaxLatency = time.Duration(*p.Chaos.MaxLatencyMs) * time.Millisecond
	}
	if p.Chaos.RandomSeed != nil {
		policy.Seed = *p.Chaos.RandomSeed
	}
	return policy
}
