package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, e.g.
// STUDYBUDDY_SERVER_PORT for server.port.
const EnvPrefix = "STUDYBUDDY"

// legacyEnv lists unprefixed variable names accepted as fallbacks.
var legacyEnv = map[string]string{
	"server.port":  "PORT",
	"database.url": "DATABASE_URL",
	"llm.api_key":  "HF_API_TOKEN",
	"llm.model":    "HF_MODEL_ID",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("llm.provider", ProviderHuggingFace)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "google/flan-t5-large")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.max_new_tokens", 400)
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.prompt_template_path", "")
	v.SetDefault("llm.max_concurrent", 0)

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("events.nats_url", "")
	v.SetDefault("events.subject", "studybuddy.cards.saved")
}

// Load reads configuration from, in increasing precedence: defaults,
// config.yaml in . or ./config, and environment variables (after loading
// .env if present). The result is validated before it is returned.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
