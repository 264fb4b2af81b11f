package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	pkgRetry "github.com/Jseow008/ThePlayBook-sub001/internal/pkg/retry"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr     string   `env:"SERVER_ADDR"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Database configuration
	DatabaseURL         string        `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int           `env:"DB_MAX_CONNS"`
	DBMinConns          int           `env:"DB_MIN_CONNS"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD"`
	DBRunMigrations     bool          `env:"DB_RUN_MIGRATIONS"`

	// External service configurations
	SupabaseCfg  SupabaseConfig           `envPrefix:"SUPABASE_"`
	RedisCfg     RedisConfig              `envPrefix:"REDIS_"`
	EmbeddingCfg EmbeddingConnectorConfig `envPrefix:"EMBEDDING_"`
	LLMCfg       LLMConfig
	GeminiCfg    GeminiConfig `envPrefix:"GEMINI_"`
	VectorCfg    VectorConfig `envPrefix:"VECTOR_"`

	// Feature tuning
	ChatCfg      ChatConfig      `envPrefix:"CHAT_"`
	RateLimitCfg RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	SyncCfg      SyncConfig      `envPrefix:"EMBEDDING_SYNC_"`
	CacheCfg     CacheConfig     `envPrefix:"CACHE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS"`

	// Environment (set from flag, not from env var)
	Environment string
}

type SupabaseConfig struct {
	URL            string `env:"URL"`
	AnonKey        string `env:"ANON_KEY"`
	ServiceRoleKey string `env:"SERVICE_ROLE_KEY"`
}

// RedisConfig configures the distributed rate-limit store. An empty URL
// selects the in-process limiter.
type RedisConfig struct {
	URL     string        `env:"URL"`
	Timeout time.Duration `env:"TIMEOUT"`
}

type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	Endpoint   string `env:"ENDPOINT"`
	Model      string `env:"MODEL"`
	Dimensions int    `env:"DIMENSIONS"`
}

type LLMConfig struct {
	Provider        string `env:"AI_PROVIDER"`
	ModelOverride   string `env:"AI_MODEL"`
	OpenAIKey       string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_CHAT_MODEL"`
	AnthropicKey    string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL"`
	MaxOutputTokens int    `env:"LLM_MAX_OUTPUT_TOKENS"`
}

type GeminiConfig struct {
	APIKey         string `env:"API_KEY"`
	EmbeddingModel string `env:"EMBEDDING_MODEL"`
	Dimensions     int    `env:"EMBEDDING_DIMENSIONS"`
}

type VectorConfig struct {
	Backend          string `env:"BACKEND"`
	QdrantURL        string `env:"QDRANT_URL"`
	QdrantAPIKey     string `env:"QDRANT_API_KEY"`
	QdrantCollection string `env:"QDRANT_COLLECTION"`
}

const (
	VectorBackendPostgres = "postgres"
	VectorBackendQdrant   = "qdrant"
)

type ChatConfig struct {
	TopK                int     `env:"TOP_K"`
	MatchThreshold      float64 `env:"MATCH_THRESHOLD"`
	ContextBudget       int     `env:"CONTEXT_BUDGET"`
	MaxMessages         int     `env:"MAX_MESSAGES"`
	MaxMessageChars     int     `env:"MAX_MESSAGE_CHARS"`
	AuthorMaxMessages   int     `env:"AUTHOR_MAX_MESSAGES"`
	AuthorHistoryWindow int     `env:"AUTHOR_HISTORY_WINDOW"`
	AuthorMaxTotalChars int     `env:"AUTHOR_MAX_TOTAL_CHARS"`
}

// PolicyConfig is one {limit, window} pair.
type PolicyConfig struct {
	Limit  int           `env:"LIMIT"`
	Window time.Duration `env:"WINDOW"`
}

type RateLimitConfig struct {
	SweepThreshold int          `env:"SWEEP_THRESHOLD"`
	Chat           PolicyConfig `envPrefix:"CHAT_"`
	AuthorChat     PolicyConfig `envPrefix:"AUTHOR_CHAT_"`
	HighlightWrite PolicyConfig `envPrefix:"HIGHLIGHT_WRITE_"`
	HighlightRead  PolicyConfig `envPrefix:"HIGHLIGHT_READ_"`
	Bookmark       PolicyConfig `envPrefix:"BOOKMARK_"`
	AdminSync      PolicyConfig `envPrefix:"ADMIN_SYNC_"`
	Feedback       PolicyConfig `envPrefix:"FEEDBACK_"`
	Random         PolicyConfig `envPrefix:"RANDOM_"`
}

type SyncConfig struct {
	BatchSize int                  `env:"BATCH_SIZE"`
	Retry     pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type CacheConfig struct {
	SessionTTL         time.Duration `env:"SESSION_TTL"`
	RecommendationsTTL time.Duration `env:"RECOMMENDATIONS_TTL"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

// Default returns the configuration used for every variable that is not set.
func Default() *Config {
	return &Config{
		ServerAddr:          ":8080",
		AllowedOrigins:      []string{"*"},
		DBMaxConns:          25,
		DBMinConns:          5,
		DBMaxConnLifetime:   time.Hour,
		DBMaxConnIdleTime:   30 * time.Minute,
		DBHealthCheckPeriod: time.Minute,
		RedisCfg: RedisConfig{
			Timeout: 250 * time.Millisecond,
		},
		EmbeddingCfg: EmbeddingConnectorConfig{
			HTTPClientConfig: HTTPClientConfig{
				RequestTimeout:        20 * time.Second,
				ConnTimeout:           5 * time.Second,
				KeepAlive:             90 * time.Second,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: 15 * time.Second,
				Url:                   "https://api.openai.com",
			},
			Endpoint:   "/v1/embeddings",
			Model:      "text-embedding-3-small",
			Dimensions: 1536,
		},
		LLMCfg: LLMConfig{
			Provider:        "anthropic",
			OpenAIModel:     "gpt-4o-mini",
			AnthropicModel:  "claude-3-haiku-20240307",
			MaxOutputTokens: 600,
		},
		GeminiCfg: GeminiConfig{
			EmbeddingModel: "gemini-embedding-001",
			Dimensions:     768,
		},
		VectorCfg: VectorConfig{
			Backend:          VectorBackendPostgres,
			QdrantCollection: "segments",
		},
		ChatCfg: ChatConfig{
			TopK:                5,
			MatchThreshold:      0.7,
			ContextBudget:       12000,
			MaxMessages:         20,
			MaxMessageChars:     2000,
			AuthorMaxMessages:   30,
			AuthorHistoryWindow: 6,
			AuthorMaxTotalChars: 20000,
		},
		RateLimitCfg: RateLimitConfig{
			SweepThreshold: 10000,
			Chat:           PolicyConfig{Limit: 10, Window: time.Minute},
			AuthorChat:     PolicyConfig{Limit: 10, Window: time.Minute},
			HighlightWrite: PolicyConfig{Limit: 30, Window: time.Minute},
			HighlightRead:  PolicyConfig{Limit: 50, Window: time.Minute},
			Bookmark:       PolicyConfig{Limit: 30, Window: time.Minute},
			AdminSync:      PolicyConfig{Limit: 3, Window: time.Minute},
			Feedback:       PolicyConfig{Limit: 20, Window: time.Minute},
			Random:         PolicyConfig{Limit: 15, Window: time.Minute},
		},
		SyncCfg: SyncConfig{
			BatchSize: 50,
			Retry:     *pkgRetry.DefaultRetryConfig(),
		},
		CacheCfg: CacheConfig{
			SessionTTL:         time.Minute,
			RecommendationsTTL: 5 * time.Minute,
		},
		LogLevel: "info",
	}
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	return cfg, nil
}

// Parse reads the process environment on top of Default and validates it.
func Parse() (*Config, error) {
	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// Validate Database configuration
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns))
	}

	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		errors = append(errors, fmt.Sprintf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns))
	}

	// Validate chat tuning
	if cfg.ChatCfg.TopK < 1 || cfg.ChatCfg.TopK > 50 {
		errors = append(errors, fmt.Sprintf("CHAT_TOP_K must be between 1 and 50, got %d", cfg.ChatCfg.TopK))
	}

	if cfg.ChatCfg.MatchThreshold < 0 || cfg.ChatCfg.MatchThreshold > 1 {
		errors = append(errors, fmt.Sprintf("CHAT_MATCH_THRESHOLD must be between 0 and 1, got %g", cfg.ChatCfg.MatchThreshold))
	}

	if cfg.ChatCfg.ContextBudget < 1 {
		errors = append(errors, fmt.Sprintf("CHAT_CONTEXT_BUDGET must be positive, got %d", cfg.ChatCfg.ContextBudget))
	}

	// Validate rate limit policies
	policies := map[string]PolicyConfig{
		"CHAT":            cfg.RateLimitCfg.Chat,
		"AUTHOR_CHAT":     cfg.RateLimitCfg.AuthorChat,
		"HIGHLIGHT_WRITE": cfg.RateLimitCfg.HighlightWrite,
		"HIGHLIGHT_READ":  cfg.RateLimitCfg.HighlightRead,
		"BOOKMARK":        cfg.RateLimitCfg.Bookmark,
		"ADMIN_SYNC":      cfg.RateLimitCfg.AdminSync,
		"FEEDBACK":        cfg.RateLimitCfg.Feedback,
		"RANDOM":          cfg.RateLimitCfg.Random,
	}
	for name, p := range policies {
		if p.Limit < 1 || p.Window <= 0 {
			errors = append(errors, fmt.Sprintf("RATE_LIMIT_%s needs LIMIT > 0 and WINDOW > 0, got %d/%s", name, p.Limit, p.Window))
		}
	}

	switch cfg.VectorCfg.Backend {
	case VectorBackendPostgres:
	case VectorBackendQdrant:
		if cfg.VectorCfg.QdrantURL == "" {
			errors = append(errors, "VECTOR_QDRANT_URL is required when VECTOR_BACKEND=qdrant")
		}
	default:
		errors = append(errors, fmt.Sprintf("VECTOR_BACKEND must be postgres or qdrant, got %q", cfg.VectorCfg.Backend))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
