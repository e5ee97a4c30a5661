package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       App       `mapstructure:"app"`
	Gemini    Gemini    `mapstructure:"gemini"`
	Search    Search    `mapstructure:"search"`
	Collector Collector `mapstructure:"collector"`
	Filter    Filter    `mapstructure:"filter"`
	Digest    Digest    `mapstructure:"digest"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Gemini holds Google Gemini configuration
type Gemini struct {
	APIKey            string  `mapstructure:"api_key"`
	Model             string  `mapstructure:"model"`
	Timeout           string  `mapstructure:"timeout"`
	AnswerMaxTokens   int32   `mapstructure:"answer_max_tokens"`
	AnswerTemperature float32 `mapstructure:"answer_temperature"`
	DigestMaxTokens   int32   `mapstructure:"digest_max_tokens"`
	DigestTemperature float32 `mapstructure:"digest_temperature"`
	PlanMaxTokens     int32   `mapstructure:"plan_max_tokens"`
}

// Search holds search provider configuration
type Search struct {
	Provider       string   `mapstructure:"provider"`
	MaxResults     int      `mapstructure:"max_results"`
	Timeout        string   `mapstructure:"timeout"`
	Domains        []string `mapstructure:"domains"`
	DateFloorDays  int      `mapstructure:"date_floor_days"`
	SnippetCap     int      `mapstructure:"snippet_cap"`
	SnippetMaxLen  int      `mapstructure:"snippet_max_len"`
	Exa            Exa      `mapstructure:"exa"`
	BackfillFetch  bool     `mapstructure:"backfill_fetch"`
	BackfillBudget int      `mapstructure:"backfill_budget"`
}

// Exa holds Exa search API configuration
type Exa struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// Collector holds rate-limited batch retrieval configuration
type Collector struct {
	BatchSize int    `mapstructure:"batch_size"`
	Cooldown  string `mapstructure:"cooldown"`
}

// Filter holds article-page filter configuration
type Filter struct {
	MinPathSegments int      `mapstructure:"min_path_segments"`
	IndexPatterns   []string `mapstructure:"index_patterns"`
}

// Digest holds weekly digest configuration
type Digest struct {
	TopN      int      `mapstructure:"top_n"`
	Queries   []string `mapstructure:"queries"`
	OutputDir string   `mapstructure:"output_dir"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, environment, and defaults.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".musicnews")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Used by tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Gemini defaults: generation parameters per pipeline stage
	viper.SetDefault("gemini.model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.answer_max_tokens", 2048)
	viper.SetDefault("gemini.answer_temperature", 0.3)
	viper.SetDefault("gemini.digest_max_tokens", 3000)
	viper.SetDefault("gemini.digest_temperature", 0.2)
	viper.SetDefault("gemini.plan_max_tokens", 300)

	// Search defaults: the curated music publication scope
	viper.SetDefault("search.provider", "exa")
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.timeout", "15s")
	viper.SetDefault("search.domains", []string{
		"pitchfork.com",
		"residentadvisor.net",
		"nytimes.com",
		"theguardian.com",
		"stereogum.com",
		"consequenceofsound.net",
		"nme.com",
		"rollingstone.com",
	})
	viper.SetDefault("search.date_floor_days", 7)
	viper.SetDefault("search.snippet_cap", 500)
	viper.SetDefault("search.snippet_max_len", 300)
	viper.SetDefault("search.exa.base_url", "https://api.exa.ai")
	viper.SetDefault("search.backfill_fetch", false)
	viper.SetDefault("search.backfill_budget", 5)

	// Collector defaults: the provider allows short bursts of 4 requests
	viper.SetDefault("collector.batch_size", 4)
	viper.SetDefault("collector.cooldown", "1200ms")

	// Filter defaults
	viper.SetDefault("filter.min_path_segments", 2)
	viper.SetDefault("filter.index_patterns", []string{
		"/news/",
		"/tags/",
		"/tag/",
		"/reviews/",
		"/features/",
		"/genre/",
		"/genres/",
		"/artists/",
		"/topics/",
	})

	// Digest defaults: seven fixed angles covering the week
	viper.SetDefault("digest.top_n", 10)
	viper.SetDefault("digest.queries", []string{
		"important music news this week releases albums",
		"new album releases this week",
		"music tour announcements this week",
		"music festival lineup announcements",
		"music awards nominations winners this week",
		"electronic music news this week",
		"music industry news this week",
	})
	viper.SetDefault("digest.output_dir", "digests")
}

// bindEnvironmentVariables binds the well-known environment variables
func bindEnvironmentVariables() {
	_ = viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("search.exa.api_key", "EXA_API_KEY")
	_ = viper.BindEnv("app.debug", "MUSICNEWS_DEBUG")
	_ = viper.BindEnv("app.log_level", "MUSICNEWS_LOG_LEVEL")
}

// validateConfig checks invariants that would otherwise surface deep in the pipeline
func validateConfig(config *Config) error {
	if config.Collector.BatchSize <= 0 {
		return fmt.Errorf("collector.batch_size must be positive, got %d", config.Collector.BatchSize)
	}
	if _, err := time.ParseDuration(config.Collector.Cooldown); err != nil {
		return fmt.Errorf("collector.cooldown is not a valid duration: %w", err)
	}
	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("search.max_results must be positive, got %d", config.Search.MaxResults)
	}
	if config.Digest.TopN <= 0 {
		return fmt.Errorf("digest.top_n must be positive, got %d", config.Digest.TopN)
	}
	return nil
}

// CollectorCooldown returns the parsed inter-batch cooldown.
func (c *Config) CollectorCooldown() time.Duration {
	d, err := time.ParseDuration(c.Collector.Cooldown)
	if err != nil {
		return 1200 * time.Millisecond
	}
	return d
}

// SearchTimeout returns the parsed per-search timeout.
func (c *Config) SearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GeminiTimeout returns the parsed generation timeout.
func (c *Config) GeminiTimeout() time.Duration {
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}
