package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider          string   `yaml:"provider"` // yahoo, rest, mock
		// BaseURLs are the rest provider's endpoints, tried in order.
		BaseURLs          []string `yaml:"base_urls"`
		APIKey            string   `yaml:"api_key"`
		Hosts             []string `yaml:"hosts"`
		TimeoutSec        int      `yaml:"timeout_sec"`
		RequestsPerSecond float64  `yaml:"requests_per_second"`
		Burst             int      `yaml:"burst"`
		Concurrency       int      `yaml:"concurrency"`
		HistoryRange      string   `yaml:"history_range"`
	} `yaml:"data_source"`
	Schedule struct {
		Timezone    string `yaml:"timezone"`
		EarlyCron   string `yaml:"early_cron"`
		PreopenCron string `yaml:"preopen_cron"`
		OpenCron    string `yaml:"open_cron"`
	} `yaml:"schedule"`
	Store struct {
		Backend       string `yaml:"backend"` // file, sqlite, badger, redis, memory
		Path          string `yaml:"path"`
		Key           string `yaml:"key"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
	} `yaml:"store"`
	Picker struct {
		DisableExploration bool `yaml:"disable_exploration"`
	} `yaml:"picker"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Level      string `yaml:"level"`
		Format     string `yaml:"format"` // text, json
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// LoadDotEnv loads the given .env files into the process environment, skipping missing ones.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&c.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	setString(&c.DataSource.Provider, "HIRSCH_PROVIDER")
	setString(&c.DataSource.APIKey, "HIRSCH_PROVIDER_API_KEY")
	setString(&c.Schedule.Timezone, "HIRSCH_TIMEZONE")
	// A backend override without a path override drops the file's path, which
	// belongs to the file's backend; the default for the new backend applies.
	if v := os.Getenv("HIRSCH_STORE_BACKEND"); v != "" && !strings.EqualFold(v, c.Store.Backend) {
		c.Store.Backend = v
		c.Store.Path = ""
	}
	setString(&c.Store.Path, "HIRSCH_STORE_PATH")
	setString(&c.Store.RedisAddr, "REDIS_ADDR")
	setString(&c.Store.RedisPassword, "REDIS_PASSWORD")
	setString(&c.Database.SQLitePath, "SQLITE_PATH")
	setString(&c.Log.Level, "HIRSCH_LOG_LEVEL")
	setString(&c.Log.Format, "HIRSCH_LOG_FORMAT")
	setString(&c.Log.File, "HIRSCH_LOG_FILE")
	setString(&c.Metrics.Addr, "HIRSCH_METRICS_ADDR")
	setString(&c.Proxy, "HTTPS_PROXY")

	if v := os.Getenv("HIRSCH_PROVIDER_URL"); v != "" {
		c.DataSource.BaseURLs = splitList(v)
	}
	if v := os.Getenv("HIRSCH_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.DataSource.Concurrency = n
		}
	}
	if v := os.Getenv("HIRSCH_DISABLE_EXPLORATION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Picker.DisableExploration = b
		}
	}
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "yahoo"
	}
	if c.DataSource.TimeoutSec == 0 {
		c.DataSource.TimeoutSec = 15
	}
	if c.DataSource.RequestsPerSecond == 0 {
		c.DataSource.RequestsPerSecond = 10
	}
	if c.DataSource.Burst == 0 {
		c.DataSource.Burst = 5
	}
	if c.DataSource.Concurrency == 0 {
		c.DataSource.Concurrency = 8
	}
	if c.DataSource.HistoryRange == "" {
		c.DataSource.HistoryRange = "1mo"
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "America/New_York"
	}
	if c.Schedule.EarlyCron == "" {
		c.Schedule.EarlyCron = "0 5 0 * * 1-5"
	}
	if c.Schedule.PreopenCron == "" {
		c.Schedule.PreopenCron = "0 30 8 * * 1-5"
	}
	if c.Schedule.OpenCron == "" {
		c.Schedule.OpenCron = "0 30 9 * * 1-5"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "file"
	}
	if c.Store.Path == "" {
		switch c.Store.Backend {
		case "sqlite":
			c.Store.Path = "data/hirsch_store.db"
		case "badger":
			c.Store.Path = "data/badger"
		default:
			c.Store.Path = "data/hirsch-store.json"
		}
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = "localhost:6379"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/hirsch_history.db"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 30
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9108"
	}
}

// Timeout returns the provider request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSec) * time.Second
}

// TelegramEnabled reports whether both bot token and chat id are set.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DataSource.Provider) {
	case "yahoo", "mock":
	case "rest":
		if len(c.DataSource.BaseURLs) == 0 {
			return fmt.Errorf("data_source.base_urls is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	switch strings.ToLower(c.Store.Backend) {
	case "file", "sqlite", "badger", "redis", "memory":
	default:
		return fmt.Errorf("store.backend %q is not supported", c.Store.Backend)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not supported", c.Log.Format)
	}
	if c.DataSource.Concurrency <= 0 {
		return fmt.Errorf("data_source.concurrency must be positive")
	}
	if c.DataSource.RequestsPerSecond <= 0 {
		return fmt.Errorf("data_source.requests_per_second must be positive")
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
