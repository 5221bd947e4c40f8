package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds the settings of the embedded data core. Every knob has a
// sensible default so the mobile shell can open the store with zero
// configuration.
type Config struct {
	Env      string
	Database DatabaseConfig
	Log      LogConfig
}

// DatabaseConfig describes the single on-device SQLite file.
type DatabaseConfig struct {
	Path          string
	BusyTimeoutMS int
	WALEnabled    bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables (optionally via a
// .env file) with TRB_ prefixed keys.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TRB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("DB_PATH", "cadet_trb.db")
	v.SetDefault("DB_BUSY_TIMEOUT_MS", 5000)
	v.SetDefault("DB_WAL", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	cfg := &Config{
		Env: v.GetString("ENV"),
		Database: DatabaseConfig{
			Path:          v.GetString("DB_PATH"),
			BusyTimeoutMS: v.GetInt("DB_BUSY_TIMEOUT_MS"),
			WALEnabled:    v.GetBool("DB_WAL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	return cfg, nil
}
