package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Scraper ScraperConfig `yaml:"scraper"`
	Cache   CacheConfig   `yaml:"cache"`
	Web     WebConfig     `yaml:"web"`

	// DataDir holds the per-week ScrapeResult JSON documents.
	DataDir string `yaml:"data_dir" envconfig:"ODDSBOARD_DATA_DIR"`
}

type LoggingConfig struct {
	Level string `yaml:"level" envconfig:"ODDSBOARD_LOG_LEVEL"`
}

type ScraperConfig struct {
	EnabledSources []string         `yaml:"enabled_sources"`
	UserAgent      string           `yaml:"user_agent"`
	Timeout        time.Duration    `yaml:"timeout"`
	RetryAttempts  int              `yaml:"retry_attempts"`
	RetryDelay     time.Duration    `yaml:"retry_delay"`
	ESPN           ESPNConfig       `yaml:"espn"`
	DraftKings     DraftKingsConfig `yaml:"draftkings"`
}

type ESPNConfig struct {
	// URLPatterns maps a season to its betting-story URL pattern; ESPN has
	// changed the path shape every year. Placeholders: {story_id}, {week}.
	URLPatterns map[string]string `yaml:"url_patterns"`
	// StoryIDs maps season -> week -> the story ID embedded in the URL.
	StoryIDs map[string]map[int]string `yaml:"story_ids"`
}

type DraftKingsConfig struct {
	URL string `yaml:"url"`
	// Headful disables headless mode for local debugging.
	Headful       bool          `yaml:"headful"`
	RenderTimeout time.Duration `yaml:"render_timeout"`
	// RenderWait is how long to sit on the page after load so the odds
	// components finish hydrating.
	RenderWait time.Duration `yaml:"render_wait"`
}

type CacheConfig struct {
	Size int           `yaml:"size" envconfig:"ODDSBOARD_CACHE_SIZE"`
	TTL  time.Duration `yaml:"ttl" envconfig:"ODDSBOARD_CACHE_TTL"`
}

type WebConfig struct {
	Addr           string   `yaml:"addr" envconfig:"ODDSBOARD_HTTP_ADDR"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Seasons        []string `yaml:"seasons"`
}

// Load reads the YAML config file, then applies environment overrides and
// fills defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process env overrides: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if len(c.Scraper.EnabledSources) == 0 {
		c.Scraper.EnabledSources = []string{"espn", "draftkings"}
	}
	if c.Scraper.UserAgent == "" {
		c.Scraper.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.Scraper.Timeout <= 0 {
		c.Scraper.Timeout = 30 * time.Second
	}
	if c.Scraper.RetryAttempts <= 0 {
		c.Scraper.RetryAttempts = 3
	}
	if c.Scraper.RetryDelay <= 0 {
		c.Scraper.RetryDelay = time.Second
	}
	if c.Scraper.DraftKings.URL == "" {
		c.Scraper.DraftKings.URL = "https://sportsbook.draftkings.com/leagues/football/nfl?category=game-lines&subcategory=game"
	}
	if c.Scraper.DraftKings.RenderTimeout <= 0 {
		c.Scraper.DraftKings.RenderTimeout = 60 * time.Second
	}
	if c.Scraper.DraftKings.RenderWait <= 0 {
		c.Scraper.DraftKings.RenderWait = 3 * time.Second
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 64
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Web.Addr == "" {
		c.Web.Addr = ":8080"
	}
}
