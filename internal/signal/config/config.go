package config

import (
	"fmt"
	"time"

	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/config"
)

// Worker holds stream consumer configuration.
type Worker struct {
	MaxConcurrentTasks        int           `mapstructure:"max_concurrent_tasks"`
	RedisStreamTimeout        time.Duration `mapstructure:"redis_stream_timeout"`
	RedisStreamRetryInterval  time.Duration `mapstructure:"redis_stream_retry_interval"`
	RedisStreamMaxIdleMinutes time.Duration `mapstructure:"redis_stream_max_idle_duration"`
	RedisStreamMaxRetry       int           `mapstructure:"redis_stream_max_retry"`
}

// Scheduler holds the cron expressions for the recurring jobs. All
// expressions run in Asia/Seoul.
type Scheduler struct {
	CatalystDetectCron  string `mapstructure:"catalyst_detect_cron"`
	CatalystTrackCron   string `mapstructure:"catalyst_track_cron"`
	UniverseScanCron    string `mapstructure:"universe_scan_cron"`
	FlowCollectorCron   string `mapstructure:"flow_collector_cron"`
	DisclosureSyncCron  string `mapstructure:"disclosure_sync_cron"`
	ValueScreenerCron   string `mapstructure:"value_screener_cron"`
	CheckHealthInterval string `mapstructure:"check_health_interval"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Naver holds the Naver Finance scraping configuration.
type Naver struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxPages            int    `mapstructure:"max_pages"`
}

// Disclosure holds the RSS disclosure feed configuration.
type Disclosure struct {
	FeedURL          string `mapstructure:"feed_url"`
	MaxItems         int    `mapstructure:"max_items"`
	MaxItemAgeInDays int    `mapstructure:"max_item_age_in_days"`
	FetchBody        bool   `mapstructure:"fetch_body"`
}

// Config holds the full configuration for the signal service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Worker     Worker          `mapstructure:"worker"`
	Scheduler  Scheduler       `mapstructure:"scheduler"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Telegram   Telegram        `mapstructure:"telegram"`
	Naver      Naver           `mapstructure:"naver"`
	Disclosure Disclosure      `mapstructure:"disclosure"`
	Scoring    scoring.Config  `mapstructure:"scoring"`
}

// Load loads the signal service configuration from the given path. Scoring
// tunables start from the documented defaults and are overlaid by the file,
// then validated so a bad band fails startup instead of a scan.
func Load(path string) (*Config, error) {
	cfg := Config{Scoring: scoring.DefaultConfig()}
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if cfg.Naver.BaseURL == "" {
		cfg.Naver.BaseURL = "https://finance.naver.com"
	}
	if cfg.Naver.MaxPages <= 0 {
		cfg.Naver.MaxPages = 20
	}
	if cfg.Naver.MaxRequestPerMinute <= 0 {
		cfg.Naver.MaxRequestPerMinute = 30
	}
	return &cfg, nil
}
