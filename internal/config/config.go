package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageBackend       = errors.New("unknown storage backend")
)

// Storage backends for the persisted review list.
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string   `mapstructure:"env"`                 // current application environment (local, dev, prod etc)
	TelegramAPIToken  string   `mapstructure:"-"`                   // Telegram API token loaded from environment
	QuestionsJSONPath string   `mapstructure:"questions_json_path"` // path to JSON file with the JLPT question banks
	Quiz              Quiz     `mapstructure:"quiz"`                // quiz session configuration section
	Storage           Storage  `mapstructure:"storage"`             // review list storage section
	Reminder          Reminder `mapstructure:"reminder"`            // daily practice reminder section
	DB                DB       `mapstructure:"database"`            // database configuration section
	Redis             Redis    `mapstructure:"redis"`               // redis configuration section
}

// Quiz groups the tunables of a quiz session. The rank thresholds are fixed,
// so points_per_correct decides how many correct answers each rank takes.
type Quiz struct {
	TimeLimitSeconds int           `mapstructure:"time_limit_seconds"` // countdown for a whole session
	PointsPerCorrect int           `mapstructure:"points_per_correct"` // flat reward per correct answer
	FeedbackDelay    time.Duration `mapstructure:"feedback_delay"`     // how long correct/incorrect feedback stays up
}

// Storage selects where the review list blob lives.
type Storage struct {
	Backend string `mapstructure:"backend"` // "postgres" or "redis"
}

// Reminder configures the daily practice nudge.
type Reminder struct {
	Enabled  bool   `mapstructure:"enabled"`
	CronSpec string `mapstructure:"cron_spec"` // standard 5-field cron expression, UTC
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains redis-related configuration parameters.
type Redis struct {
	Addr     string `mapstructure:"-"` // address loaded from environment
	Password string `mapstructure:"-"` // password loaded from environment
	DB       int    `mapstructure:"db"`
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions_json_path", "assets/data/questions.json")
	v.SetDefault("quiz.time_limit_seconds", 60)
	v.SetDefault("quiz.points_per_correct", 30)
	v.SetDefault("quiz.feedback_delay", "1200ms")
	v.SetDefault("storage.backend", BackendPostgres)
	v.SetDefault("reminder.enabled", true)
	v.SetDefault("reminder.cron_spec", "0 12 * * *")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.db", 0)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_addr", "REDIS_ADDR")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Redis.Addr = v.GetString("redis_addr")
	cfg.Redis.Password = v.GetString("redis_password")

	switch cfg.Storage.Backend {
	case BackendPostgres:
	case BackendRedis:
		// The redis backend is opt-in and needs an address to reach.
		if cfg.Redis.Addr == "" {
			return nil, ErrMissingEnvironmentVariables
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageBackend, cfg.Storage.Backend)
	}

	return &cfg, nil
}
