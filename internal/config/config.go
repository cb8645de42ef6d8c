package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/abhisek/quantprep/internal/llm"
	"github.com/abhisek/quantprep/internal/questiongen"
)

// Config holds all process-wide configuration. Loaded once at startup,
// read-only afterwards.
type Config struct {
	ServerAddr string `mapstructure:"SERVER_ADDR"`
	GinMode    string `mapstructure:"GIN_MODE"`

	LLMProvider string        `mapstructure:"LLM_PROVIDER"`
	LLMTimeout  time.Duration `mapstructure:"LLM_TIMEOUT"`
	MaxAttempts int           `mapstructure:"MAX_ATTEMPTS"`

	OpenRouterAPIKey  string `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterModel   string `mapstructure:"OPENROUTER_MODEL"`
	OpenRouterBaseURL string `mapstructure:"OPENROUTER_BASE_URL"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel   string `mapstructure:"OPENAI_MODEL"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`

	AnthropicAPIKey string `mapstructure:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `mapstructure:"ANTHROPIC_MODEL"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	DefaultTopic      string `mapstructure:"DEFAULT_TOPIC"`
	DefaultDifficulty string `mapstructure:"DEFAULT_DIFFICULTY"`
}

// Load reads configuration from an optional config.yaml in the working
// directory, overridden by QUANTPREP_* environment variables. The bare
// OPENROUTER_API_KEY variable is honored as a fallback for compatibility
// with existing deployments.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("LLM_PROVIDER", "openrouter")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("MAX_ATTEMPTS", 3)
	v.SetDefault("OPENROUTER_API_KEY", "")
	v.SetDefault("OPENROUTER_MODEL", "")
	v.SetDefault("OPENROUTER_BASE_URL", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("ANTHROPIC_API_KEY", "")
	v.SetDefault("ANTHROPIC_MODEL", "")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "")
	v.SetDefault("DEFAULT_TOPIC", "Algebra")
	v.SetDefault("DEFAULT_DIFFICULTY", "Medium")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("config.yaml not found, using environment variables and defaults")
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("QUANTPREP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.OpenRouterAPIKey == "" {
		cfg.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	}

	return &cfg, nil
}

// Validate checks startup invariants: a credential for the selected
// provider and a recognizable default difficulty.
func (c *Config) Validate() error {
	if err := c.LLM().Validate(); err != nil {
		return err
	}
	if _, err := questiongen.ParseDifficulty(c.DefaultDifficulty); err != nil {
		return fmt.Errorf("DEFAULT_DIFFICULTY: %w", err)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}

// LLM assembles the provider configuration.
func (c *Config) LLM() llm.Config {
	return llm.Config{
		Provider: c.LLMProvider,
		OpenRouter: llm.OpenRouterConfig{
			APIKey:  c.OpenRouterAPIKey,
			Model:   c.OpenRouterModel,
			BaseURL: c.OpenRouterBaseURL,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey:  c.OpenAIAPIKey,
			Model:   c.OpenAIModel,
			BaseURL: c.OpenAIBaseURL,
		},
		Anthropic: llm.AnthropicConfig{
			APIKey: c.AnthropicAPIKey,
			Model:  c.AnthropicModel,
		},
		Gemini: llm.GeminiConfig{
			APIKey: c.GeminiAPIKey,
			Model:  c.GeminiModel,
		},
	}
}

// Structured assembles the structured client configuration.
func (c *Config) Structured() llm.StructuredConfig {
	return llm.StructuredConfig{
		MaxAttempts: c.MaxAttempts,
		Timeout:     c.LLMTimeout,
	}
}

// Generation assembles the question generator configuration.
func (c *Config) Generation() questiongen.Config {
	cfg := questiongen.DefaultConfig()
	if c.DefaultTopic != "" {
		cfg.DefaultTopic = c.DefaultTopic
	}
	if d, err := questiongen.ParseDifficulty(c.DefaultDifficulty); err == nil {
		cfg.DefaultDifficulty = d
	}
	return cfg
}
