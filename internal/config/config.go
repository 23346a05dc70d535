package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Catalog  CatalogConfig  `mapstructure:"catalog" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Costs    CostsConfig    `mapstructure:"costs"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"required,gt=0"`
}

// CatalogConfig locates the bulk card-data snapshot loaded at startup.
type CatalogConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name" validate:"required"`
	MaxRetries   int    `mapstructure:"max_retries" validate:"gte=0"`
}

// CostsConfig bounds LLM usage. Zero values disable the corresponding
// limit.
type CostsConfig struct {
	RequestsPerMinute float64 `mapstructure:"requests_per_minute" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"gte=0"`
	DailyCallBudget   int     `mapstructure:"daily_call_budget" validate:"gte=0"`
}
