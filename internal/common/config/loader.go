// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root
// so the binary behaves the same when launched from cmd/server or tests.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "know-your-company"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	if cfg.Pipeline.CacheTTLSeconds == 0 {
		cfg.Pipeline.CacheTTLSeconds = 86400
	}
	if cfg.Pipeline.FreshnessWindowHours == 0 {
		cfg.Pipeline.FreshnessWindowHours = 24
	}
	if cfg.Pipeline.ConnectorTimeoutSecs == 0 {
		cfg.Pipeline.ConnectorTimeoutSecs = 10
	}
	if cfg.Pipeline.RequestTimeoutSecs == 0 {
		cfg.Pipeline.RequestTimeoutSecs = 30
	}
	if cfg.Pipeline.MemoryCacheCapacity == 0 {
		cfg.Pipeline.MemoryCacheCapacity = 1024
	}

	if cfg.Connectors.Reddit.BaseURL == "" {
		cfg.Connectors.Reddit.BaseURL = "https://www.reddit.com"
	}
	if cfg.Connectors.Reddit.MaxResults == 0 {
		cfg.Connectors.Reddit.MaxResults = 10
	}
	if cfg.Connectors.Reddit.UserAgent == "" {
		cfg.Connectors.Reddit.UserAgent = "know-your-company/1.0"
	}
	if cfg.Connectors.X.MaxResults == 0 {
		cfg.Connectors.X.MaxResults = 10
	}
	if cfg.Connectors.LinkedIn.BaseURL == "" {
		cfg.Connectors.LinkedIn.BaseURL = "https://www.linkedin.com"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Database.Postgres.Enabled {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when postgres is enabled")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required when postgres is enabled")
		}
	}
	if cfg.Connectors.X.Enabled && cfg.Connectors.X.SearchURL == "" {
		return fmt.Errorf("connectors.x.search_url is required when the x connector is enabled")
	}
	if cfg.Connectors.Glassdoor.Enabled && cfg.Connectors.Glassdoor.BaseURL == "" {
		return fmt.Errorf("connectors.glassdoor.base_url is required when the glassdoor connector is enabled")
	}
	if cfg.Connectors.AmbitionBox.Enabled && cfg.Connectors.AmbitionBox.BaseURL == "" {
		return fmt.Errorf("connectors.ambitionbox.base_url is required when the ambitionbox connector is enabled")
	}
	return nil
}
