package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	OpenClaw  OpenClawConfig  `yaml:"openclaw"`
	Web       WebConfig       `yaml:"web"`
	NATS      NATSConfig      `yaml:"nats"`
	History   HistoryConfig   `yaml:"history"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Promotion PromotionConfig `yaml:"promotion"`
}

// OpenClawConfig locates the external management CLI.
type OpenClawConfig struct {
	Bin string `yaml:"bin"`
}

type WebConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type NATSConfig struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`
}

type HistoryConfig struct {
	Path string `yaml:"path"`
}

// TelegramConfig enables operator notifications when a token is set.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// PromotionConfig names the team and lead agent that receive promoted goals.
type PromotionConfig struct {
	TeamID      string        `yaml:"team_id"`
	LeadAgentID string        `yaml:"lead_agent_id"`
	PingTimeout time.Duration `yaml:"ping_timeout"`
}

func defaults() Config {
	return Config{
		OpenClaw: OpenClawConfig{
			Bin: "openclaw",
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8080,
		},
		NATS: NATSConfig{
			Port:    4222,
			DataDir: "data/nats",
		},
		History: HistoryConfig{
			Path: "data/clawkitchen.db",
		},
		Promotion: PromotionConfig{
			TeamID:      "development-team",
			LeadAgentID: "development-team-lead",
			PingTimeout: 70 * time.Second,
		},
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("CLAWKITCHEN_CONFIG")
	if path == "" {
		path = "config/clawkitchen.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found, use defaults + env
	} else {
		// Expand environment variables in YAML
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CLAWKITCHEN_OPENCLAW_BIN"); v != "" {
		cfg.OpenClaw.Bin = v
	}
	if v := os.Getenv("CLAWKITCHEN_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("CLAWKITCHEN_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("CLAWKITCHEN_WEB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Web.Port = port
		}
	}
	if v := os.Getenv("CLAWKITCHEN_NATS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.NATS.Port = port
		}
	}
	if v := os.Getenv("CLAWKITCHEN_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}
