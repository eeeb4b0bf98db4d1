package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "REVIEWCORE_CONFIG"
	databaseURLEnv = "DATABASE_URL"
	redisURLEnv    = "REDIS_URL"
	jwtSecretEnv   = "JWT_SECRET"
	portEnv        = "PORT"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Flagging FlaggingConfig `yaml:"flagging"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RedisConfig describes the shared cache used by the rate limiter.
// An empty Addr selects the process-local in-memory limiter instead.
type RedisConfig struct {
	Addr string `yaml:"addr"`
}

// AuthConfig wires token verification.
type AuthConfig struct {
	JWTSecret string `yaml:"jwtSecret"`
}

// FlaggingConfig bounds how aggressively users may flag content.
type FlaggingConfig struct {
	RateLimit         int `yaml:"rateLimit"`
	RateWindowSeconds int `yaml:"rateWindowSeconds"`
	EscalationCount   int `yaml:"escalationCount"`
}

// Window resolves the rate-limit window as a duration.
func (f FlaggingConfig) Window() time.Duration {
	return time.Duration(f.RateWindowSeconds) * time.Second
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{Port: "8080"},
		Flagging: FlaggingConfig{
			RateLimit:         5,
			RateWindowSeconds: 86400,
			EscalationCount:   2,
		},
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseURLEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(redisURLEnv); v != "" {
		c.Redis.Addr = v
	}

	if v := os.Getenv(jwtSecretEnv); v != "" {
		c.Auth.JWTSecret = v
	}

	if v := os.Getenv(portEnv); v != "" {
		c.Server.Port = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Port != "" {
		base.Server.Port = override.Server.Port
	}
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}
	if override.Redis.Addr != "" {
		base.Redis.Addr = override.Redis.Addr
	}
	if override.Auth.JWTSecret != "" {
		base.Auth.JWTSecret = override.Auth.JWTSecret
	}
	if override.Flagging.RateLimit > 0 {
		base.Flagging.RateLimit = override.Flagging.RateLimit
	}
	if override.Flagging.RateWindowSeconds > 0 {
		base.Flagging.RateWindowSeconds = override.Flagging.RateWindowSeconds
	}
	if override.Flagging.EscalationCount > 0 {
		base.Flagging.EscalationCount = override.Flagging.EscalationCount
	}
	return base
}
