// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type PaymentConfig struct {
	Razorpay struct {
		KeyID     string `yaml:"key_id"`     // public, sent to the client for widget init
		KeySecret string `yaml:"key_secret"` // server-only: order auth + HMAC signing
		Currency  string `yaml:"currency"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"razorpay"`
}

// ClientConfig drives the checkout orchestrator side.
type ClientConfig struct {
	APIBaseURL        string `yaml:"api_base_url"`        // where /payment/* routes live
	CheckoutScriptURL string `yaml:"checkout_script_url"` // gateway widget script
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // optional; empty disables the audit store
}

type RedisConfig struct {
	URL      string `yaml:"url"` // optional; empty disables rate limiting
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"`
	PerMinute int  `yaml:"per_minute"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Payment   PaymentConfig   `yaml:"payment"`
	Client    ClientConfig    `yaml:"client"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Payment.Razorpay.Currency == "" {
		cfg.Payment.Razorpay.Currency = "INR"
	}
	if cfg.Payment.Razorpay.BaseURL == "" {
		cfg.Payment.Razorpay.BaseURL = "https://api.razorpay.com"
	}
	if cfg.Client.CheckoutScriptURL == "" {
		cfg.Client.CheckoutScriptURL = "https://checkout.razorpay.com/v1/checkout.js"
	}
	if cfg.RateLimit.PerMinute <= 0 {
		cfg.RateLimit.PerMinute = 60
	}

	// Minimal validation. Dev mode runs against the in-memory gateway, so
	// credentials may be absent there.
	if !dev {
		if cfg.Payment.Razorpay.KeyID == "" {
			return nil, errors.New("payment.razorpay.key_id is required")
		}
		if cfg.Payment.Razorpay.KeySecret == "" {
			return nil, errors.New("payment.razorpay.key_secret is required")
		}
	}
	if cfg.RateLimit.Enabled && cfg.Redis.URL == "" {
		return nil, errors.New("rate_limit.enabled requires redis.url")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
