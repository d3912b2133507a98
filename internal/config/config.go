package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"travelwise/pkg/aiclient"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	GinMode     string `env:"GIN_MODE" envDefault:"release"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	PostgresURL   string `env:"POSTGRES_URL"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string `env:"REDIS_PREFIX" envDefault:"travelwise"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL" envDefault:"1h"`

	Generation GenerationConfig
	Parser     ParserConfig
}

type GenerationConfig struct {
	// Provider is one of gemini, gemini-sdk or openai.
	Provider      string  `env:"GENERATION_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string  `env:"GEMINI_API_KEY"`
	GeminiModel   string  `env:"GEMINI_MODEL"`
	GeminiBaseURL string  `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY"`
	OpenAIModel   string  `env:"OPENAI_MODEL"`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL"`
	Temperature   float32 `env:"GENERATION_TEMPERATURE" envDefault:"0.7"`

	MaxAttempts    int           `env:"GENERATION_MAX_ATTEMPTS" envDefault:"4"`
	InitialBackoff time.Duration `env:"GENERATION_INITIAL_BACKOFF" envDefault:"1500ms"`
	MaxBackoff     time.Duration `env:"GENERATION_MAX_BACKOFF" envDefault:"15s"`
	MaxRetryAfter  time.Duration `env:"GENERATION_MAX_RETRY_AFTER" envDefault:"60s"`
	ConnectTimeout time.Duration `env:"GENERATION_CONNECT_TIMEOUT" envDefault:"30s"`
	CallTimeout    time.Duration `env:"GENERATION_CALL_TIMEOUT" envDefault:"90s"`
	CacheTTL       time.Duration `env:"GENERATION_CACHE_TTL" envDefault:"1h"`

	// PromptStyle is structured or free_text.
	PromptStyle string `env:"PROMPT_STYLE" envDefault:"structured"`
}

type ParserConfig struct {
	MinProseLength      int      `env:"PARSER_MIN_PROSE_LENGTH" envDefault:"20"`
	BulletPrefixes      []string `env:"PARSER_BULLET_PREFIXES" envDefault:"-,*" envSeparator:","`
	TitleMaxLength      int      `env:"PARSER_TITLE_MAX_LENGTH" envDefault:"60"`
	ProseTitleMaxLength int      `env:"PARSER_PROSE_TITLE_MAX_LENGTH" envDefault:"50"`
	MaxDays             int      `env:"PARSER_MAX_DAYS" envDefault:"30"`
	MergeSynthetic      bool     `env:"PARSER_MERGE_SYNTHETIC" envDefault:"true"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch strings.ToLower(c.Generation.Provider) {
	case aiclient.ProviderGemini, aiclient.ProviderGeminiSDK, aiclient.ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("GENERATION_PROVIDER %q is not supported", c.Generation.Provider))
	}

	switch c.Generation.PromptStyle {
	case "structured", "free_text":
	default:
		errs = append(errs, fmt.Errorf("PROMPT_STYLE %q must be structured or free_text", c.Generation.PromptStyle))
	}

	if c.Generation.MaxAttempts < 1 {
		errs = append(errs, errors.New("GENERATION_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Generation.InitialBackoff <= 0 || c.Generation.MaxBackoff <= 0 {
		errs = append(errs, errors.New("generation backoff durations must be positive"))
	}
	if c.Parser.MaxDays < 1 {
		errs = append(errs, errors.New("PARSER_MAX_DAYS must be at least 1"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// AIClientConfig maps the generation settings onto the provider chosen.
func (c *Config) AIClientConfig() aiclient.Config {
	g := c.Generation
	out := aiclient.Config{
		Provider:       strings.ToLower(g.Provider),
		Temperature:    g.Temperature,
		JSONResponse:   g.PromptStyle == "structured",
		ConnectTimeout: g.ConnectTimeout,
		CallTimeout:    g.CallTimeout,
		UserAgent:      aiclient.DefaultUserAgent,
		Retry: aiclient.RetryPolicy{
			MaxAttempts:    g.MaxAttempts,
			InitialBackoff: g.InitialBackoff,
			MaxBackoff:     g.MaxBackoff,
			MaxRetryAfter:  g.MaxRetryAfter,
		},
	}

	if out.Provider == aiclient.ProviderOpenAI {
		out.APIKey = g.OpenAIAPIKey
		out.Model = g.OpenAIModel
		out.BaseURL = g.OpenAIBaseURL
	} else {
		out.APIKey = g.GeminiAPIKey
		out.Model = g.GeminiModel
		out.BaseURL = g.GeminiBaseURL
	}
	return out
}
