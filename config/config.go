package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Schedule ScheduleConfig
	NewRelic NewRelicConfig
}

// ServerConfig holds the HTTP server configuration
type ServerConfig struct {
	Port int
	Mode string // debug, release, test
}

// DatabaseConfig holds the database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds the object storage configuration
type StorageConfig struct {
	Bucket          string
	CredentialsJSON string
	PublicBaseURL   string
}

// ScheduleConfig holds delivery-schedule settings
type ScheduleConfig struct {
	// Timezone is the business timezone all day boundaries are computed in,
	// independent of where the server or the viewer is.
	Timezone    string
	TonsPerLoad float64
}

// NewRelicConfig holds the New Relic configuration
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// InitConfig initializes the configuration using Viper
func InitConfig(cfgFile string) error {
	setDefaults()

	// Use config file from the flag if provided
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/wasteops")
		viper.SetConfigName("config")
	}

	// Enable automatic environment variable binding
	// For example, WASTEOPS_SERVER_PORT will override server.port
	viper.SetEnvPrefix("WASTEOPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	return nil
}

// Load parses the configuration into a Config struct
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8095)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "wasteops")
	viper.SetDefault("database.password", "wasteops")
	viper.SetDefault("database.dbname", "wasteops_db")
	viper.SetDefault("database.sslmode", "disable")

	// Redis defaults
	viper.SetDefault("redis.enabled", true)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Storage defaults - no default bucket on purpose
	viper.SetDefault("storage.publicbaseurl", "https://storage.googleapis.com")

	// Schedule defaults
	viper.SetDefault("schedule.timezone", "America/Chicago")
	viper.SetDefault("schedule.tonsperload", 20.0)

	// New Relic defaults
	viper.SetDefault("newrelic.appname", "Wasteops Service Local")
	viper.SetDefault("newrelic.enabled", false)
}
