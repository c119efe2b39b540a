package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github/itish2003/growthvision/logger"
)

// Config holds all settings of the chat console service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Session   SessionConfig   `mapstructure:"session"`
	Log       LogConfig       `mapstructure:"log"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// BackendConfig selects and configures the question-answering backend.
type BackendConfig struct {
	Kind         string        `mapstructure:"kind"` // http or gemini
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"` // 0 keeps the transport default
	GeminiModel  string        `mapstructure:"gemini_model"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
}

func (b BackendConfig) Validate() error {
	switch b.Kind {
	case "http":
		if strings.TrimSpace(b.BaseURL) == "" {
			return fmt.Errorf("backend.base_url is required for the http backend")
		}
	case "gemini":
		if strings.TrimSpace(b.GeminiAPIKey) == "" {
			return fmt.Errorf("backend.gemini_api_key (or GEMINI_API_KEY) is required for the gemini backend")
		}
	default:
		return fmt.Errorf("backend.kind must be http or gemini, got %q", b.Kind)
	}
	if b.Timeout < 0 {
		return fmt.Errorf("backend.timeout cannot be negative")
	}
	return nil
}

// IngestionConfig selects where ingestion submissions are handed off.
type IngestionConfig struct {
	Kind    string `mapstructure:"kind"` // http or log
	BaseURL string `mapstructure:"base_url"`
}

// Normalize falls back to the log sink when no ingestion service is configured.
func (c IngestionConfig) Normalize() IngestionConfig {
	c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
	if c.Kind == "" {
		c.Kind = "http"
	}
	if c.Kind == "http" && strings.TrimSpace(c.BaseURL) == "" {
		c.Kind = "log"
	}
	return c
}

func (c IngestionConfig) Validate() error {
	if c.Kind != "http" && c.Kind != "log" {
		return fmt.Errorf("ingestion.kind must be http or log, got %q", c.Kind)
	}
	return nil
}

// ChatConfig carries the transcript seed and display hints.
type ChatConfig struct {
	Greeting          string `mapstructure:"greeting"`
	AIAvatar          string `mapstructure:"ai_avatar"`
	HumanAvatar       string `mapstructure:"human_avatar"`
	BusyText          string `mapstructure:"busy_text"`
	MaxTurns          int    `mapstructure:"max_turns"`           // 0 means unbounded
	StaleAnswerPolicy string `mapstructure:"stale_answer_policy"` // append or discard
}

func (c ChatConfig) Validate() error {
	if c.MaxTurns < 0 {
		return fmt.Errorf("chat.max_turns cannot be negative")
	}
	if c.StaleAnswerPolicy != "append" && c.StaleAnswerPolicy != "discard" {
		return fmt.Errorf("chat.stale_answer_policy must be append or discard, got %q", c.StaleAnswerPolicy)
	}
	return nil
}

type SessionConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

func (s SessionConfig) Normalize() SessionConfig {
	if s.IdleTTL <= 0 {
		s.IdleTTL = 30 * time.Minute
	}
	if s.SweepInterval <= 0 {
		s.SweepInterval = time.Minute
	}
	return s
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("backend.kind", "http")
	v.SetDefault("backend.base_url", "http://127.0.0.1:8000")
	v.SetDefault("backend.timeout", 0)
	v.SetDefault("backend.gemini_model", "gemini-2.5-flash")
	v.SetDefault("ingestion.kind", "http")
	v.SetDefault("ingestion.base_url", "")
	v.SetDefault("chat.greeting", "Hello Sir!, How can I help you?")
	v.SetDefault("chat.ai_avatar", "chatbot.png")
	v.SetDefault("chat.human_avatar", "user.png")
	v.SetDefault("chat.busy_text", "Growthvision Pathum is generating a response...")
	v.SetDefault("chat.max_turns", 0)
	v.SetDefault("chat.stale_answer_policy", "append")
	v.SetDefault("session.idle_ttl", "30m")
	v.SetDefault("session.sweep_interval", "1m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from defaults, an optional file and the
// environment (GROWTHVISION_* plus GEMINI_API_KEY). A .env file in the working
// directory is loaded first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.For("CONFIG").Debug("No .env file found, relying on environment variables.")
	}

	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("GROWTHVISION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend.gemini_api_key", "GROWTHVISION_BACKEND_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind gemini api key: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Backend.Kind = strings.ToLower(strings.TrimSpace(cfg.Backend.Kind))
	cfg.Ingestion = cfg.Ingestion.Normalize()
	cfg.Session = cfg.Session.Normalize()

	if err := cfg.Backend.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Ingestion.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Chat.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
