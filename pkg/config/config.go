package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StorageDatabase = "database"
)

type Config struct {
	Port                    string        `mapstructure:"PORT"`
	Env                     string        `mapstructure:"ENV"`
	StorageDriver           string        `mapstructure:"STORAGE_DRIVER"`
	DataDir                 string        `mapstructure:"DATA_DIR"`
	PostgresConnStr         string        `mapstructure:"POSTGRES_CONN_STR"`
	MongoURI                string        `mapstructure:"MONGO_URI"`
	MongoDatabase           string        `mapstructure:"MONGO_DATABASE"`
	RedisURL                string        `mapstructure:"REDIS_URL"`
	JWTSecret               string        `mapstructure:"JWT_SECRET"`
	TokenTTL                time.Duration `mapstructure:"TOKEN_TTL"`
	AccessCode              string        `mapstructure:"ACCESS_CODE"`
	CORSOrigins             []string      `mapstructure:"CORS_ORIGINS"`
	FirebaseCredentialsPath string        `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	MetricsPort             string        `mapstructure:"METRICS_PORT"`
}

// defaultJWTSecret is for local development only; production must override it.
const defaultJWTSecret = "sach-wave-secret-key-2026"

var defaults = map[string]interface{}{
	"PORT":                      "5000",
	"ENV":                       "development",
	"STORAGE_DRIVER":            StorageFile,
	"DATA_DIR":                  "./data",
	"POSTGRES_CONN_STR":         "",
	"MONGO_URI":                 "",
	"MONGO_DATABASE":            "sachwave",
	"REDIS_URL":                 "",
	"JWT_SECRET":                defaultJWTSecret,
	"TOKEN_TTL":                 "168h",
	"ACCESS_CODE":               "sachad26",
	"CORS_ORIGINS":              "*",
	"FIREBASE_CREDENTIALS_PATH": "",
	"METRICS_PORT":              "9090",
}

// Load reads .env (if present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.CORSOrigins = splitList(v.GetString("CORS_ORIGINS"))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected storage driver has what it needs.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageFile:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR must be set for the file storage driver")
		}
	case StorageDatabase:
		if c.PostgresConnStr == "" {
			return fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
		}
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI environment variable not set")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
