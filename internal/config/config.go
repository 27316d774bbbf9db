package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	Rules  RulesConfig
	Match  MatchConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RulesConfig holds the statutory constants the eligibility engine and the
// register reports consume. These change by notification, not by release,
// so they are configuration.
type RulesConfig struct {
	TimeLimitMonths         int    `mapstructure:"time_limit_months"`
	AnnualInterestRatePct   string `mapstructure:"annual_interest_rate_pct"`
	NonPaymentGraceDays     int    `mapstructure:"non_payment_grace_days"`
	AgingThresholdDays      int    `mapstructure:"aging_threshold_days"`
	DefaultUsefulLifeMonths int    `mapstructure:"default_useful_life_months"`
}

// MatchConfig holds reconciliation tolerances.
type MatchConfig struct {
	DateToleranceDays  int    `mapstructure:"date_tolerance_days"`
	AmountTolerancePct string `mapstructure:"amount_tolerance_pct"`
	AmountToleranceAbs string `mapstructure:"amount_tolerance_abs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the GSTITC_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTITC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstitc")
	v.SetDefault("db.password", "gstitc_secret")
	v.SetDefault("db.name", "gstitc_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Statutory rule defaults
	v.SetDefault("rules.time_limit_months", 8)
	v.SetDefault("rules.annual_interest_rate_pct", "18")
	v.SetDefault("rules.non_payment_grace_days", 180)
	v.SetDefault("rules.aging_threshold_days", 180)
	v.SetDefault("rules.default_useful_life_months", 60)

	// Matching tolerance defaults
	v.SetDefault("match.date_tolerance_days", 3)
	v.SetDefault("match.amount_tolerance_pct", "1")
	v.SetDefault("match.amount_tolerance_abs", "1.00")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                      "GSTITC_SERVER_PORT",
		"server.read_timeout":              "GSTITC_SERVER_READ_TIMEOUT",
		"server.write_timeout":             "GSTITC_SERVER_WRITE_TIMEOUT",
		"server.environment":               "GSTITC_SERVER_ENVIRONMENT",
		"db.host":                          "GSTITC_DB_HOST",
		"db.port":                          "GSTITC_DB_PORT",
		"db.user":                          "GSTITC_DB_USER",
		"db.password":                      "GSTITC_DB_PASSWORD",
		"db.name":                          "GSTITC_DB_NAME",
		"db.sslmode":                       "GSTITC_DB_SSLMODE",
		"db.max_open":                      "GSTITC_DB_MAX_OPEN",
		"db.max_idle":                      "GSTITC_DB_MAX_IDLE",
		"log.level":                        "GSTITC_LOG_LEVEL",
		"log.format":                       "GSTITC_LOG_FORMAT",
		"rules.time_limit_months":          "GSTITC_RULES_TIME_LIMIT_MONTHS",
		"rules.annual_interest_rate_pct":   "GSTITC_RULES_ANNUAL_INTEREST_RATE_PCT",
		"rules.non_payment_grace_days":     "GSTITC_RULES_NON_PAYMENT_GRACE_DAYS",
		"rules.aging_threshold_days":       "GSTITC_RULES_AGING_THRESHOLD_DAYS",
		"rules.default_useful_life_months": "GSTITC_RULES_DEFAULT_USEFUL_LIFE_MONTHS",
		"match.date_tolerance_days":        "GSTITC_MATCH_DATE_TOLERANCE_DAYS",
		"match.amount_tolerance_pct":       "GSTITC_MATCH_AMOUNT_TOLERANCE_PCT",
		"match.amount_tolerance_abs":       "GSTITC_MATCH_AMOUNT_TOLERANCE_ABS",
		"cors.allowed_origins":             "GSTITC_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTITC_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTITC_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Rules = RulesConfig{
		TimeLimitMonths:         v.GetInt("rules.time_limit_months"),
		AnnualInterestRatePct:   v.GetString("rules.annual_interest_rate_pct"),
		NonPaymentGraceDays:     v.GetInt("rules.non_payment_grace_days"),
		AgingThresholdDays:      v.GetInt("rules.aging_threshold_days"),
		DefaultUsefulLifeMonths: v.GetInt("rules.default_useful_life_months"),
	}
	cfg.Match = MatchConfig{
		DateToleranceDays:  v.GetInt("match.date_tolerance_days"),
		AmountTolerancePct: v.GetString("match.amount_tolerance_pct"),
		AmountToleranceAbs: v.GetString("match.amount_tolerance_abs"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
