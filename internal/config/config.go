package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// current holds the application configuration. Watch swaps it on reload
// while request handlers read it.
var current atomic.Pointer[Config]

// Get returns the active configuration, or nil before Init.
func Get() *Config {
	return current.Load()
}

// Set installs conf as the active configuration.
func Set(conf *Config) {
	current.Store(conf)
}

// Config struct is the top-level configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ServerConfig holds server-related settings.
type ServerConfig struct {
	Port           string `mapstructure:"port"`
	SessionSecret  string `mapstructure:"session_secret"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
	RateLimit      int    `mapstructure:"rate_limit"` // task submissions per minute per client
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		d.Host, d.User, d.Password, d.DBName, d.Port)
}

// LoggingConfig holds settings for the logger.
type LoggingConfig struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AnalysisConfig selects the trajectory rendering backend and task catalog.
type AnalysisConfig struct {
	Renderer           string `mapstructure:"renderer"`
	SerializeRendering bool   `mapstructure:"serialize_rendering"`
	CatalogPath        string `mapstructure:"catalog_path"`
}

// SessionConfig controls where sessions live and how long they are kept.
type SessionConfig struct {
	Store         string        `mapstructure:"store"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.session_secret", "change-me-gaze-session-secret")
	v.SetDefault("server.allowed_origins", "*")
	v.SetDefault("server.rate_limit", 60)

	// Database defaults
	v.SetDefault("database.host", "db")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "user")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.dbname", "gaze-db")

	// Logging defaults
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 7)     // 7 days
	v.SetDefault("logging.compress", true) // Compress old logs

	// Analysis defaults
	v.SetDefault("analysis.renderer", "png")
	v.SetDefault("analysis.serialize_rendering", false)
	v.SetDefault("analysis.catalog_path", "")

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", 24*time.Hour)
	v.SetDefault("session.sweep_interval", 10*time.Minute)
}

// Load reads the configuration without installing it globally or watching it.
func Load(projectRoot string) (*Config, *viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// --- File Configuration ---
	v.AddConfigPath(filepath.Join(projectRoot, "config"))
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// --- Environment Variable Binding ---
	v.SetEnvPrefix("GAZE") // e.g., GAZE_SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// It's okay if the file doesn't exist; defaults and env vars will be used.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &conf, v, nil
}

// Init loads the configuration and makes it the active one.
func Init(projectRoot string) (*viper.Viper, error) {
	conf, v, err := Load(projectRoot)
	if err != nil {
		return nil, err
	}
	Set(conf)
	return v, nil
}

// Watch sets up a watch for configuration changes for hot-reloading.
// Only settings read per request, such as the CORS origins, pick up changes.
func Watch(v *viper.Viper, log *zap.Logger) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		var reloaded Config
		if err := v.Unmarshal(&reloaded); err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		Set(&reloaded)
	})
}
