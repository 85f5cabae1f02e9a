package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pundit-watch/internal/model"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CrawlerConfig tunes the crawl pipeline.
type CrawlerConfig struct {
	MaxArticlesPerSource  int      `mapstructure:"max_articles_per_source"`
	LookbackHours         int      `mapstructure:"lookback_hours"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds"`
	Pacing                string   `mapstructure:"pacing"` // duration string, e.g., "1s"
	Keywords              []string `mapstructure:"keywords"`
	ScrapePathKeywords    []string `mapstructure:"scrape_path_keywords"`
	BodySelector          string   `mapstructure:"body_selector"` // enrichment article-body marker
}

// WorkerConfig controls the periodic crawl worker used by `serve`.
type WorkerConfig struct {
	Interval string `mapstructure:"interval"` // duration string, e.g., "30m"
	Enrich   bool   `mapstructure:"enrich"`   // fetch full content for new articles
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig            `mapstructure:"app"`
	Redis   RedisConfig          `mapstructure:"redis"`
	Crawler CrawlerConfig        `mapstructure:"crawler"`
	Worker  WorkerConfig         `mapstructure:"worker"`
	Sources []model.SourceConfig `mapstructure:"sources"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Crawler.MaxArticlesPerSource == 0 {
		c.Crawler.MaxArticlesPerSource = 20
	}
	if c.Crawler.LookbackHours == 0 {
		c.Crawler.LookbackHours = 24
	}
	if c.Crawler.RequestTimeoutSeconds == 0 {
		c.Crawler.RequestTimeoutSeconds = 15
	}
	if c.Crawler.Pacing == "" {
		c.Crawler.Pacing = "1s"
	}
	if c.Worker.Interval == "" {
		c.Worker.Interval = "30m"
	}
}

// PacingDuration parses the pacing setting, falling back to one second on a
// bad value.
func (c *CrawlerConfig) PacingDuration() time.Duration {
	d, err := time.ParseDuration(c.Pacing)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// RequestTimeout returns the per-request timeout as a duration.
func (c *CrawlerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// LoadSources reads a standalone source-registry YAML file: a top-level
// `sources` list of {id, url, type, name} entries. It lets a crawl run
// against a registry maintained separately from the main config.
func LoadSources(path string) ([]model.SourceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var doc struct {
		Sources []model.SourceConfig `yaml:"sources"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	return doc.Sources, nil
}
