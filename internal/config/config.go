package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-MentorshipService/internal/domain"
)

// ErrInvalidConfig конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ProfileService ProfileServiceConfig `toml:"profile_service"`
	Stripe         StripeConfig         `toml:"stripe"`
	Auth           AuthConfig           `toml:"auth"`
	Payments       PaymentsConfig       `toml:"payments"`
	Migrations     MigrationsConfig     `toml:"migrations"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ProfileServiceConfig сервис профилей менторов
type ProfileServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// StripeConfig платежный провайдер
type StripeConfig struct {
	SecretKey        string `toml:"secret_key"`
	WebhookSecret    string `toml:"webhook_secret"`
	Currency         string `toml:"currency"`
	Timeout          int    `toml:"timeout"`           // секунды
	WebhookTolerance int    `toml:"webhook_tolerance"` // секунды
}

// AuthConfig проверка JWT
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// PaymentsConfig комиссия и поведение при оплате
type PaymentsConfig struct {
	CommissionPercent    float64 `toml:"commission_percent"`
	AutoConfirmOnPayment bool    `toml:"auto_confirm_on_payment"`
}

// MigrationsConfig миграции при старте
type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает TOML файл, подмешивает секреты из окружения (и .env, если есть) и проверяет результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "mentorship-service",
			Path:        "/metrics",
		},
		ProfileService: ProfileServiceConfig{Timeout: 5},
		Stripe: StripeConfig{
			Currency:         domain.DefaultCurrency,
			Timeout:          10,
			WebhookTolerance: 300,
		},
		Payments: PaymentsConfig{
			CommissionPercent: float64(domain.DefaultCommissionBasisPoints) / 100,
		},
		Migrations: MigrationsConfig{Enabled: true},
	}
}

// applyEnv секреты из окружения перекрывают значения файла
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		c.Stripe.SecretKey = v
	}
	if v := os.Getenv("STRIPE_WEBHOOK_SECRET"); v != "" {
		c.Stripe.WebhookSecret = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("COMMISSION_PERCENT"); v != "" {
		percent, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: COMMISSION_PERCENT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Payments.CommissionPercent = percent
	}
	return nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: server.http_port must be positive", ErrInvalidConfig)
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("%w: database.port must be positive", ErrInvalidConfig)
	}
	if c.Payments.CommissionPercent < 0 || c.Payments.CommissionPercent > 100 {
		return fmt.Errorf("%w: payments.commission_percent must be within [0,100], got %v",
			ErrInvalidConfig, c.Payments.CommissionPercent)
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("%w: stripe.webhook_secret is required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Stripe.Currency == "" {
		return fmt.Errorf("%w: stripe.currency is required", ErrInvalidConfig)
	}
	return nil
}

// CommissionRate ставка комиссии в базисных пунктах
func (c *Config) CommissionRate() (domain.CommissionRate, error) {
	return domain.NewCommissionRateFromPercent(c.Payments.CommissionPercent)
}

// Duration переводит секунды конфигурации в time.Duration
func Duration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
