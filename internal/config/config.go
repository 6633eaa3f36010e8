package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Logging  LoggingConfig
	GinMode  string
	// BaseURL is used to build the password-setup deep link in invite emails.
	BaseURL string
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "emuser")
	v.SetDefault("DB_PASSWORD", "empassword")
	v.SetDefault("DB_NAME", "employee_management")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("JWT_SECRET", "default-secret-key-change-me")
	v.SetDefault("JWT_ACCESS_TTL", "15m")
	v.SetDefault("JWT_REFRESH_TTL", "168h")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 25)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "email@example.com")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("BASE_URL", "http://localhost:8080")

	return &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret:          v.GetString("JWT_SECRET"),
			AccessTokenTTL:  v.GetDuration("JWT_ACCESS_TTL"),
			RefreshTokenTTL: v.GetDuration("JWT_REFRESH_TTL"),
		},
		SMTP: SMTPConfig{
			Host:        v.GetString("SMTP_HOST"),
			Port:        v.GetInt("SMTP_PORT"),
			Username:    v.GetString("SMTP_USERNAME"),
			Password:    v.GetString("SMTP_PASSWORD"),
			FromAddress: v.GetString("SMTP_FROM"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		GinMode: v.GetString("GIN_MODE"),
		BaseURL: v.GetString("BASE_URL"),
	}
}

// DSN builds the postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}
