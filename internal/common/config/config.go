// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Connectors ConnectorsConfig `mapstructure:"connectors"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

// BindAddr returns the host:port the HTTP server listens on.
func (s ServerConfig) BindAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Pipeline Config ---

// PipelineConfig holds the orchestrator and fan-out runner settings.
type PipelineConfig struct {
	CacheTTLSeconds      int `mapstructure:"cache_ttl_seconds"`
	FreshnessWindowHours int `mapstructure:"freshness_window_hours"`
	ConnectorTimeoutSecs int `mapstructure:"connector_timeout_seconds"`
	RequestTimeoutSecs   int `mapstructure:"request_timeout_seconds"`
	MemoryCacheCapacity  int `mapstructure:"memory_cache_capacity"`
}

// --- Connector Config ---

type ConnectorsConfig struct {
	Reddit      RedditConfig     `mapstructure:"reddit"`
	X           XConfig          `mapstructure:"x"`
	Glassdoor   ReviewSiteConfig `mapstructure:"glassdoor"`
	AmbitionBox ReviewSiteConfig `mapstructure:"ambitionbox"`
	LinkedIn    LinkedInConfig   `mapstructure:"linkedin"`
}

type RedditConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
	UserAgent  string `mapstructure:"user_agent"`
}

type XConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	SearchURL  string `mapstructure:"search_url"`
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
}

type ReviewSiteConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

type LinkedInConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// --- Scoring Config ---

// ScoringConfig externalizes the keyword lexicons so they can be tuned
// without touching the scoring arithmetic. Empty lists fall back to the
// built-in defaults.
type ScoringConfig struct {
	PositiveKeywords   []string `mapstructure:"positive_keywords"`
	NegativeKeywords   []string `mapstructure:"negative_keywords"`
	TrainingKeywords   []string `mapstructure:"training_keywords"`
	EdTechKeywords     []string `mapstructure:"edtech_keywords"`
	StaffingKeywords   []string `mapstructure:"staffing_keywords"`
	ITServicesKeywords []string `mapstructure:"it_services_keywords"`
	InternshipKeywords []string `mapstructure:"internship_keywords"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
