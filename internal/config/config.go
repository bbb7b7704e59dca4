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
	JWT    JWTConfig
	S3     S3Config
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

// JWTConfig holds session token signing and expiry settings.
type JWTConfig struct {
	Secret        string        `mapstructure:"secret"`
	SessionExpiry time.Duration `mapstructure:"session_expiry"`
	Issuer        string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the
// TERPTICKETS_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TERPTICKETS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "terptickets")
	v.SetDefault("db.password", "terptickets_secret")
	v.SetDefault("db.name", "terptickets_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.session_expiry", "24h")
	v.SetDefault("jwt.issuer", "terptickets")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "terptickets-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "TERPTICKETS_SERVER_PORT",
		"server.read_timeout":  "TERPTICKETS_SERVER_READ_TIMEOUT",
		"server.write_timeout": "TERPTICKETS_SERVER_WRITE_TIMEOUT",
		"server.environment":   "TERPTICKETS_SERVER_ENVIRONMENT",
		"db.host":              "TERPTICKETS_DB_HOST",
		"db.port":              "TERPTICKETS_DB_PORT",
		"db.user":              "TERPTICKETS_DB_USER",
		"db.password":          "TERPTICKETS_DB_PASSWORD",
		"db.name":              "TERPTICKETS_DB_NAME",
		"db.sslmode":           "TERPTICKETS_DB_SSLMODE",
		"db.max_open":          "TERPTICKETS_DB_MAX_OPEN",
		"db.max_idle":          "TERPTICKETS_DB_MAX_IDLE",
		"jwt.secret":           "TERPTICKETS_JWT_SECRET",
		"jwt.session_expiry":   "TERPTICKETS_JWT_SESSION_EXPIRY",
		"jwt.issuer":           "TERPTICKETS_JWT_ISSUER",
		"s3.region":            "TERPTICKETS_S3_REGION",
		"s3.bucket":            "TERPTICKETS_S3_BUCKET",
		"s3.endpoint":          "TERPTICKETS_S3_ENDPOINT",
		"s3.access_key":        "TERPTICKETS_S3_ACCESS_KEY",
		"s3.secret_key":        "TERPTICKETS_S3_SECRET_KEY",
		"s3.presign_expiry":    "TERPTICKETS_S3_PRESIGN_EXPIRY",
		"cors.allowed_origins": "TERPTICKETS_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if
	// TERPTICKETS_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TERPTICKETS_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret:        v.GetString("jwt.secret"),
		SessionExpiry: v.GetDuration("jwt.session_expiry"),
		Issuer:        v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
