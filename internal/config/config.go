// Package config handles application configuration using Viper.
// Viper supports YAML files, environment variables, and defaults, merged in priority order.
// Go convention: configuration is loaded into structs, not accessed as raw key-value pairs.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration struct. Nested structs organize related settings.
// `mapstructure` tags tell Viper how to map YAML/env keys to struct fields.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Brand    BrandConfig    `mapstructure:"brand"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Download DownloadConfig `mapstructure:"download"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Web      WebConfig      `mapstructure:"web"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// RequestTimeout bounds a whole request, including every lookup and
	// download it fans out to.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// BrandConfig points at the brand-data provider (brand.dev).
type BrandConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	// ProviderOrder controls which LLM resolves company names to domains.
	// The first provider with an API key wins. Example: ["anthropic", "openai"]
	ProviderOrder []string        `mapstructure:"provider_order"`
	Anthropic     AnthropicConfig `mapstructure:"anthropic"`
	OpenAI        OpenAIConfig    `mapstructure:"openai"`
}

type AnthropicConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type DownloadConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxBytes  int64         `mapstructure:"max_bytes"`
	UserAgent string        `mapstructure:"user_agent"`
}

type BatchConfig struct {
	MaxCompanies int `mapstructure:"max_companies"`
}

type ArchiveConfig struct {
	CompressionLevel int `mapstructure:"compression_level"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type WebConfig struct {
	StaticDir string `mapstructure:"static_dir"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// envAliases maps config keys to the well-known variable names people already
// have in their shells and .env files, next to the LOGO_ prefixed form.
var envAliases = map[string][]string{
	"brand.api_key":         {"LOGO_BRAND_API_KEY", "BRAND_DEV_API_KEY"},
	"llm.anthropic.api_key": {"LOGO_LLM_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
	"llm.openai.api_key":    {"LOGO_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"},
	"server.port":           {"LOGO_SERVER_PORT", "PORT"},
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// Load reads configuration from a YAML file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults: these apply when neither file nor env provides a value
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("brand.base_url", "https://api.brand.dev/v1")
	v.SetDefault("brand.timeout", 30*time.Second)
	v.SetDefault("llm.provider_order", []string{"anthropic", "openai"})
	v.SetDefault("llm.anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("llm.openai.model", "gpt-4o")
	v.SetDefault("download.timeout", 30*time.Second)
	v.SetDefault("download.max_bytes", 10<<20)
	v.SetDefault("download.user_agent", "logo-fetch/1.0")
	v.SetDefault("batch.max_companies", 50)
	v.SetDefault("archive.compression_level", 5)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("web.static_dir", "./public")
	v.SetDefault("log.level", "info")

	// Read from YAML config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read config file (ignore "not found": defaults + env are enough)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Environment variables override everything.
	// LOGO_ prefix + nested keys: LOGO_SERVER_PORT=9090 → server.port=9090
	v.SetEnvPrefix("LOGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to Unmarshal unless bound explicitly.
	for key, names := range envAliases {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Address returns the listen address string like "0.0.0.0:3000".
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
