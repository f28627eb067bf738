package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	LLM        LLMConfig
	Generation GenerationConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float64
	MaxPromptChars int
}

type GenerationConfig struct {
	// Parallel fans section generation out concurrently; results are still
	// joined in the fixed mcq/short/long order.
	Parallel bool
}

type LoggerConfig struct {
	Level string
	Env   string
}

const (
	DefaultBaseURL        = "https://api.groq.com/openai/v1"
	DefaultModel          = "gemma2-9b-it"
	DefaultTemperature    = 0.7
	DefaultMaxPromptChars = 4000
	DefaultBodyLimit      = 32 << 20 // 32 MiB of uploads per request
)

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../configs")
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
	}

	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 120)
	viper.SetDefault("server.body_limit", DefaultBodyLimit)
	viper.SetDefault("llm.base_url", DefaultBaseURL)
	viper.SetDefault("llm.model", DefaultModel)
	viper.SetDefault("llm.temperature", DefaultTemperature)
	viper.SetDefault("llm.max_prompt_chars", DefaultMaxPromptChars)
	viper.SetDefault("generation.parallel", false)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	// The config file is optional: every setting has a default or an
	// environment override.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			APIKey:         viper.GetString("llm.api_key"),
			BaseURL:        viper.GetString("llm.base_url"),
			Model:          viper.GetString("llm.model"),
			Temperature:    viper.GetFloat64("llm.temperature"),
			MaxPromptChars: viper.GetInt("llm.max_prompt_chars"),
		},
		Generation: GenerationConfig{
			Parallel: viper.GetBool("generation.parallel"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if maxChars := os.Getenv("LLM_MAX_PROMPT_CHARS"); maxChars != "" {
		if n, err := strconv.Atoi(maxChars); err == nil && n > 0 {
			config.LLM.MaxPromptChars = n
		}
	}

	return config, nil
}

// ValidateCredentials checks that the completion API key is present. It is
// called before any client is constructed so a missing key is reported
// clearly instead of failing on the first network call.
func (c *Config) ValidateCredentials() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY environment variable not set")
	}
	return nil
}
