package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Events   EventsConfig   `mapstructure:"events"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// Supported inference providers.
const (
	ProviderHuggingFace = "huggingface"
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
)

// LLMConfig contains settings for the text generation backend.
// An empty Endpoint selects the provider default.
type LLMConfig struct {
	Provider           string        `mapstructure:"provider" validate:"required,oneof=huggingface gemini openai"`
	APIKey             string        `mapstructure:"api_key" validate:"required"`
	Model              string        `mapstructure:"model" validate:"required"`
	Endpoint           string        `mapstructure:"endpoint" validate:"omitempty,url"`
	Timeout            time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxNewTokens       int           `mapstructure:"max_new_tokens" validate:"gt=0"`
	Temperature        float64       `mapstructure:"temperature" validate:"gte=0,lte=2"`
	PromptTemplatePath string        `mapstructure:"prompt_template_path" validate:"omitempty,file"`
	MaxConcurrent      int           `mapstructure:"max_concurrent" validate:"gte=0"`
}

// CacheConfig configures the optional Redis cache for generation results.
// An empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url" validate:"omitempty,url"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// EventsConfig configures optional NATS publishing of card events.
// An empty NATSURL disables publishing.
type EventsConfig struct {
	NATSURL string `mapstructure:"nats_url" validate:"omitempty,url"`
	Subject string `mapstructure:"subject" validate:"required_with=NATSURL"`
}
