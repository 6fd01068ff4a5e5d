package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Billing   BillingConfig
	Printer   PrinterConfig
	Log       LogConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// DatabaseConfig points at the process-local SQLite store
type DatabaseConfig struct {
	DSN     string
	Seed    bool
	LogSQL  bool
	MaxOpen int
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// BillingConfig holds counter defaults that are not user customizable
type BillingConfig struct {
	BillPrefix     string
	SeedPassword   string
	IdempotencyTTL time.Duration
}

// PrinterConfig selects the receipt printer. Type is "network", "usb" or "none".
type PrinterConfig struct {
	Type       string
	Address    string
	DevicePath string
	PaperWidth int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (if present) and the environment
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		slog.Warn(".env file not found, using environment variables", "error", err)
	}

	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "pos-billing-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_DSN", "file:pos?mode=memory&cache=shared")
	v.SetDefault("DB_SEED", true)
	v.SetDefault("DB_LOG_SQL", false)
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_EXPIRY_HOURS", 12)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("BILL_PREFIX", "INV")
	v.SetDefault("SEED_STAFF_PASSWORD", "admin123")
	v.SetDefault("IDEMPOTENCY_TTL_HOURS", 24)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_ADDRESS", "")
	v.SetDefault("PRINTER_DEVICE_PATH", "/dev/usb/lp0")
	v.SetDefault("PRINTER_PAPER_WIDTH", 48)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			DSN:     v.GetString("DB_DSN"),
			Seed:    v.GetBool("DB_SEED"),
			LogSQL:  v.GetBool("DB_LOG_SQL"),
			MaxOpen: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Billing: BillingConfig{
			BillPrefix:     strings.ToUpper(v.GetString("BILL_PREFIX")),
			SeedPassword:   v.GetString("SEED_STAFF_PASSWORD"),
			IdempotencyTTL: time.Duration(v.GetInt("IDEMPOTENCY_TTL_HOURS")) * time.Hour,
		},
		Printer: PrinterConfig{
			Type:       v.GetString("PRINTER_TYPE"),
			Address:    v.GetString("PRINTER_ADDRESS"),
			DevicePath: v.GetString("PRINTER_DEVICE_PATH"),
			PaperWidth: v.GetInt("PRINTER_PAPER_WIDTH"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
}

// splitList turns "a, b,c" into ["a" "b" "c"]
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
