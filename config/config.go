package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers accepted in DB_DRIVER.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server   *ServerConfig
	Database *DatabaseConfig
	Cors     *CorsConfig
	Media    *MediaConfig
}

type ServerConfig struct {
	AppName      string // storefront-catalog
	Environment  string // development, production
	Port         string // :8080
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int64 // in bytes
}

type DatabaseConfig struct {
	Driver        string // pgx or postgres (lib/pq)
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaxOpenConns  int
	MaxIdleConns  int
	MaxLifetime   time.Duration
	SlowThreshold time.Duration
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// MediaConfig locates uploaded category and product images.
type MediaConfig struct {
	BaseURL string
}

// Load reads the .env file when present and builds the configuration from
// the environment. The returned bool reports whether a .env file was loaded.
func Load() (*Config, bool, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		Server: &ServerConfig{
			AppName:      getEnvAsString("APP_NAME", "storefront-catalog"),
			Environment:  getEnvAsString("APP_ENV", "development"),
			Port:         getEnvAsString("APP_PORT", ":8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			BodyLimit:    int64(getEnvAsInt("SERVER_BODY_LIMIT", 10<<20)), // 10 MB
		},
		Database: &DatabaseConfig{
			Driver:        getEnvAsString("DB_DRIVER", DriverPgx),
			Host:          getEnvAsString("DB_HOST", "localhost"),
			Port:          getEnvAsInt("DB_PORT", 5432),
			User:          getEnvAsString("DB_USER", "postgres"),
			Password:      getEnvAsString("DB_PASSWORD", ""),
			Name:          getEnvAsString("DB_NAME", "storefront"),
			SSLMode:       getEnvAsString("DB_SSLMODE", "disable"),
			MaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:   getEnvAsDuration("DB_MAX_LIFETIME", 30*time.Minute),
			SlowThreshold: getEnvAsDuration("DB_SLOW_THRESHOLD", 500*time.Millisecond),
		},
		Cors: &CorsConfig{
			AllowedOrigins:   getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			AllowedMethods:   getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-User-ID"}),
			ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
		},
		Media: &MediaConfig{
			BaseURL: getEnvAsString("MEDIA_BASE_URL", "/media"),
		},
	}

	switch cfg.Database.Driver {
	case DriverPgx, DriverPq:
	default:
		return nil, envLoaded, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, envLoaded, nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// LogLevel is the gecho level used for the environment.
func (c *ServerConfig) LogLevel() string {
	if c.IsProduction() {
		return "info"
	}
	return "debug"
}

func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}
