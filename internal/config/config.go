// Package config loads leadpilot settings from an optional YAML file, .env
// files and the environment. Environment values always win.
//
// .env files are read in this order, without overriding variables that are
// already set:
//
//  1. ENV_FILE, when set (and nothing else)
//  2. .env.local
//  3. .env
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/xavierca1/leadpilot/internal/logger"
	"github.com/xavierca1/leadpilot/internal/usecase"
)

const DefaultPath = "config.yml"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Queue     QueueConfig     `yaml:"queue"`
	Mail      MailConfig      `yaml:"mail"`
	Logging   logger.Config   `yaml:"logging"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"CORS_ORIGINS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	// TrustProxy honours X-Forwarded-For; only safe behind a proxy that sets it.
	TrustProxy bool `yaml:"trust_proxy" env:"TRUST_PROXY"`
}

type GeminiConfig struct {
	APIKey     string        `yaml:"api_key" env:"API_KEY,GEMINI_API_KEY"`
	BaseURL    string        `yaml:"base_url" env:"GEMINI_BASE_URL"`
	TextModel  string        `yaml:"text_model" env:"GEMINI_TEXT_MODEL"`
	ImageModel string        `yaml:"image_model" env:"GEMINI_IMAGE_MODEL"`
	Timeout    time.Duration `yaml:"timeout" env:"GEMINI_TIMEOUT"`
}

type DashboardConfig struct {
	LeadBatchSize   int `yaml:"lead_batch_size" env:"LEAD_BATCH_SIZE"`
	DailyLeadTarget int `yaml:"daily_lead_target" env:"DAILY_LEAD_TARGET"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	Burst     int `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

type QueueConfig struct {
	URL       string `yaml:"url" env:"AMQP_URL"`
	AutoImage bool   `yaml:"auto_image" env:"AUTO_IMAGE"`
}

func (q QueueConfig) Enabled() bool { return q.URL != "" }

type MailConfig struct {
	Host string `yaml:"host" env:"MAIL_HOST"`
	Port int    `yaml:"port" env:"MAIL_PORT"`
	User string `yaml:"user" env:"MAIL_USER"`
	Pass string `yaml:"pass" env:"MAIL_PASS"`
	From string `yaml:"from" env:"MAIL_FROM"`
}

func (m MailConfig) Enabled() bool { return m.Host != "" }

// Load reads path if it exists, then layers .env files and the environment
// on top and fills in defaults.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)
	cfg.SetDefaults()
	return &cfg, nil
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) SetDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"*"}
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Gemini.TextModel == "" {
		c.Gemini.TextModel = usecase.DefaultTextModel
	}
	if c.Gemini.ImageModel == "" {
		c.Gemini.ImageModel = usecase.DefaultImageModel
	}
	if c.Dashboard.LeadBatchSize == 0 {
		c.Dashboard.LeadBatchSize = usecase.DefaultLeadBatchSize
	}
	if c.Dashboard.DailyLeadTarget == 0 {
		c.Dashboard.DailyLeadTarget = usecase.DefaultDailyLeadTarget
	}
	if c.RateLimit.PerMinute == 0 {
		c.RateLimit.PerMinute = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	c.Logging.SetDefaults()
}
