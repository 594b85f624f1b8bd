// Package config loads the service's runtime configuration from an optional
// YAML file with environment-variable overrides layered on top, the same
// two-tier precedence the rest of the examples use for anchor and validator
// configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zkmimc/proofengine/pkg/kdf"
)

// Config holds everything the verify service and the CLI prover need at
// startup. There is no database, chain RPC, or cloud credential here: this
// service persists nothing and talks to nothing but its own HTTP clients.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`

	Argon2 Argon2Settings `yaml:"argon2"`
	Bcrypt BcryptSettings `yaml:"bcrypt"`
}

// Argon2Settings mirrors kdf.Argon2idParams in YAML-friendly form.
type Argon2Settings struct {
	TimeCost   uint32 `yaml:"time_cost"`
	MemoryKiB  uint32 `yaml:"memory_kib"`
	HashLength uint32 `yaml:"hash_length"`
}

// BcryptSettings holds the default bcrypt cost factor for the CLI prover.
type BcryptSettings struct {
	Cost int `yaml:"cost"`
}

// ToParams converts the YAML-loaded settings into kdf.Argon2idParams.
func (a Argon2Settings) ToParams() kdf.Argon2idParams {
	return kdf.Argon2idParams{TimeCost: a.TimeCost, MemoryKiB: a.MemoryKiB, HashLength: a.HashLength}
}

func defaultConfig() *Config {
	defaults := kdf.DefaultArgon2idParams()
	return &Config{
		ListenAddr:  "0.0.0.0:8080",
		MetricsAddr: "0.0.0.0:9090",
		LogLevel:    "info",
		Argon2: Argon2Settings{
			TimeCost:   defaults.TimeCost,
			MemoryKiB:  defaults.MemoryKiB,
			HashLength: defaults.HashLength,
		},
		Bcrypt: BcryptSettings{Cost: 10},
	}
}

// Load builds a Config starting from built-in defaults, then a YAML file at
// path if path is non-empty and exists, then environment variable overrides.
// A missing path is not an error; missing config files are expected in
// development and in the default container image.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.ListenAddr = getEnv("ZK_LISTEN_ADDR", cfg.ListenAddr)
	cfg.MetricsAddr = getEnv("ZK_METRICS_ADDR", cfg.MetricsAddr)
	cfg.LogLevel = getEnv("ZK_LOG_LEVEL", cfg.LogLevel)

	cfg.Argon2.TimeCost = getEnvUint32("ZK_ARGON2_TIME_COST", cfg.Argon2.TimeCost)
	cfg.Argon2.MemoryKiB = getEnvUint32("ZK_ARGON2_MEMORY_KIB", cfg.Argon2.MemoryKiB)
	cfg.Argon2.HashLength = getEnvUint32("ZK_ARGON2_HASH_LENGTH", cfg.Argon2.HashLength)
	cfg.Bcrypt.Cost = getEnvInt("ZK_BCRYPT_COST", cfg.Bcrypt.Cost)
}

// Validate rejects an empty listen_addr, a bcrypt cost outside [4, 31], and
// zero Argon2 parameters, so that such values surface at startup.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen_addr must not be empty")
	}
	if c.Bcrypt.Cost < 4 || c.Bcrypt.Cost > 31 {
		return fmt.Errorf("config: bcrypt.cost must be in [4, 31], got %d", c.Bcrypt.Cost)
	}
	if c.Argon2.TimeCost == 0 || c.Argon2.MemoryKiB == 0 || c.Argon2.HashLength == 0 {
		return fmt.Errorf("config: argon2 parameters must be non-zero")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvUint32(key string, defaultValue uint32) uint32 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseUint(value, 10, 32); err == nil {
			return uint32(intValue)
		}
	}
	return defaultValue
}
