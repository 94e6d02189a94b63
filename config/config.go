package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort             = "3000"
	DefaultProvider         = "groq"
	DefaultModel            = "deepseek-r1-distill-llama-70b"
	DefaultGroqBaseURL      = "https://api.groq.com/openai/v1"
	DefaultTemperature      = 0.2
	DefaultMaxTokens        = 1000
	DefaultTimeout          = 30 * time.Second
	DefaultMinDiagramLength = 50
	DefaultStaticDir        = "frontend/dist"
)

// Config holds everything the service reads at startup.
type Config struct {
	Port          string    `yaml:"port"`
	Env           string    `yaml:"env"`
	StaticDir     string    `yaml:"static_dir"`
	AllowedOrigin string    `yaml:"allowed_origin"`
	LLM           LLMConfig `yaml:"llm"`
	// MinDiagramLength is the rune count below which an extracted diagram is
	// replaced by the fallback skeleton.
	MinDiagramLength int `yaml:"min_diagram_length"`
}

// LLMConfig configures the text-generation service.
type LLMConfig struct {
	Provider    string        `yaml:"provider"`
	Model       string        `yaml:"model"`
	APIKey      string        `yaml:"api_key"`
	BaseURL     string        `yaml:"base_url"`
	// Temperature is nil when unset so that 0 can be configured.
	Temperature *float64      `yaml:"temperature"`
	MaxTokens   int           `yaml:"max_tokens"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Load reads the optional YAML file at path, then .env and process
// environment, and fills defaults. An empty path skips the file.
func Load(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	applyEnv(&cfg)
	applyDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("GROQ_API_KEY")); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Port = v
	}
	if v := firstNonEmpty(os.Getenv("NODE_ENV"), os.Getenv("APP_ENV")); v != "" {
		cfg.Env = strings.TrimSpace(v)
	}
	if v := strings.TrimSpace(os.Getenv("STATIC_DIR")); v != "" {
		cfg.StaticDir = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGIN")); v != "" {
		cfg.AllowedOrigin = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_PROVIDER")); v != "" {
		cfg.LLM.Provider = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_MODEL")); v != "" {
		cfg.LLM.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_BASE_URL")); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LLM_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLM.Temperature = &f
		}
	}
	if v := strings.TrimSpace(os.Getenv("MIN_DIAGRAM_LENGTH")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinDiagramLength = n
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}
	if cfg.MinDiagramLength <= 0 {
		cfg.MinDiagramLength = DefaultMinDiagramLength
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultProvider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultModel
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == "groq" {
		cfg.LLM.BaseURL = DefaultGroqBaseURL
	}
	if cfg.LLM.Temperature == nil {
		t := DefaultTemperature
		cfg.LLM.Temperature = &t
	}
	if cfg.LLM.MaxTokens <= 0 {
		cfg.LLM.MaxTokens = DefaultMaxTokens
	}
	if cfg.LLM.Timeout <= 0 {
		cfg.LLM.Timeout = DefaultTimeout
	}
}

// SamplingTemperature returns the configured temperature, or the default
// when none was set.
func (c LLMConfig) SamplingTemperature() float64 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// Validate reports configuration that must stop the process at startup.
func (c Config) Validate() error {
	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		return errors.New("missing GROQ_API_KEY; set it in the environment or .env")
	}
	return nil
}

// Production reports whether pre-built static assets should be served.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// ListenAddr returns Port in host:port form.
func (c Config) ListenAddr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
