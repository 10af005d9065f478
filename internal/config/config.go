package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envFileEnvName = "RETAIL_ENV_FILE"

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Broker    BrokerConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// Mirror drivers for the secondary snapshot copy
const (
	MirrorNone     = "none"
	MirrorFile     = "file"
	MirrorPostgres = "postgres"
)

type StorageConfig struct {
	Path         string
	MirrorDriver string
	MirrorPath   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type BrokerConfig struct {
	SeedBrokers       []string
	TransactionsTopic string
}

// Enabled reports whether transaction events should be published
func (b BrokerConfig) Enabled() bool {
	return len(b.SeedBrokers) > 0
}

type LogConfig struct {
	Level string
}

// SlogLevel parses the configured level, falling back to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration from the env file named by --env-file (or
// RETAIL_ENV_FILE) and from the process environment.
func Load() *Config {
	return LoadFile(envFilePath(os.Args[1:]))
}

// LoadFile reads configuration from path and the process environment. A
// missing file is not an error; defaults and environment variables apply.
func LoadFile(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Warn("env file not found, using environment variables", "path", path, "err", err)
	}

	v.SetDefault("APP_NAME", "retail-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("STORAGE_PATH", "./data/db.json")
	v.SetDefault("STORAGE_MIRROR_DRIVER", MirrorNone)
	v.SetDefault("STORAGE_MIRROR_PATH", "./data/db.mirror.json")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "retail")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("BROKER_SEED_BROKERS", "")
	v.SetDefault("BROKER_TRANSACTIONS_TOPIC", "retail.transactions")
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Storage: StorageConfig{
			Path:         v.GetString("STORAGE_PATH"),
			MirrorDriver: strings.ToLower(v.GetString("STORAGE_MIRROR_DRIVER")),
			MirrorPath:   v.GetString("STORAGE_MIRROR_PATH"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Broker: BrokerConfig{
			SeedBrokers:       splitList(v.GetString("BROKER_SEED_BROKERS")),
			TransactionsTopic: v.GetString("BROKER_TRANSACTIONS_TOPIC"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}
}

func envFilePath(args []string) string {
	cmdLine := pflag.NewFlagSet("retail-api", pflag.ContinueOnError)
	arg := cmdLine.String("env-file", ".env", "path to the env file")
	_ = cmdLine.Parse(args)
	if env, ok := os.LookupEnv(envFileEnvName); ok {
		return env
	}
	return *arg
}

// splitList splits a comma separated value, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
