package config

import "mural/internal/ranking"

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"` // e.g. ":9090"; empty disables
}

// RedisConfig holds redis connection settings for the provider adapters.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OpenAIConfig controls the affinity oracle. An empty api_key leaves the
// oracle unconfigured: reels rank with neutral affinity and no calls occur.
type OpenAIConfig struct {
	APIKey    string  `mapstructure:"api_key"`
	Model     string  `mapstructure:"model"`
	BaseURL   string  `mapstructure:"base_url"`
	RateRPS   float64 `mapstructure:"rate_rps"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// RankingConfig carries weight overrides merged over ranking defaults.
type RankingConfig struct {
	Weights ranking.Weights `mapstructure:"weights"`
}

// Config is the top-level configuration structure.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Redis   RedisConfig   `mapstructure:"redis"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Ranking RankingConfig `mapstructure:"ranking"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.RateRPS == 0 {
		c.OpenAI.RateRPS = 5
	}
	if c.OpenAI.RateBurst == 0 {
		c.OpenAI.RateBurst = 10
	}
}

// EffectiveWeights merges configured overrides over the default weight set.
func (c *Config) EffectiveWeights() *ranking.Weights {
	return ranking.Merge(ranking.DefaultWeights(), &c.Ranking.Weights)
}
