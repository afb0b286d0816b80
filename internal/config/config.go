package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidPort           = errors.New(ErrMsgInvalidPort)
	ErrInvalidStorageBackend = errors.New(ErrMsgInvalidStorageBackend)
	ErrInvalidLogFormat      = errors.New(ErrMsgInvalidLogFormat)
	ErrInvalidCacheSize      = errors.New(ErrMsgInvalidCacheSize)
	ErrInvalidCacheTTL       = errors.New(ErrMsgInvalidCacheTTL)
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string
	APIKey      string // empty disables authentication

	// TrustedProxies are peer IPs whose X-Forwarded-For header is honoured
	TrustedProxies []string

	StorageBackend string
	DataDir        string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	CacheSize int           // 0 disables the state cache
	CacheTTL  time.Duration // 0 keeps entries until evicted

	GameConfigPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:          getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:         getEnv(EnvLogFormat, DefaultLogFormat),
		ServiceName:       getEnv(EnvServiceName, DefaultServiceName),
		Version:           getEnv(EnvVersion, DefaultVersion),
		Environment:       getEnv(EnvEnvironment, DefaultEnvironment),
		APIKey:            getEnv(EnvAPIKey, ""),
		StorageBackend:    getEnv(EnvStorageBackend, DefaultStorageBackend),
		DataDir:           getEnv(EnvDataDir, DefaultDataDir),
		DBUser:            getEnv(EnvDBUser, "postgres"),
		DBPassword:        getEnv(EnvDBPassword, "postgres"),
		DBHost:            getEnv(EnvDBHost, "localhost"),
		DBPort:            getEnv(EnvDBPort, "5432"),
		DBName:            getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:        getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration(EnvDBMaxConnIdleTime, 5*time.Minute),
		DBMaxConnLifetime: getEnvAsDuration(EnvDBMaxConnLifetime, 30*time.Minute),
		GameConfigPath:    getEnv(EnvGameConfig, ""),
	}

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPort, err)
	}
	cfg.Port = port

	cacheSize, err := strconv.Atoi(getEnv(EnvCacheSize, strconv.Itoa(DefaultCacheSize)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCacheSize, err)
	}
	cfg.CacheSize = cacheSize

	if raw := getEnv(EnvCacheTTL, ""); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCacheTTL, err)
		}
		cfg.CacheTTL = ttl
	}

	cfg.TrustedProxies = splitList(getEnv(EnvTrustedProxies, ""))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back to the default when unset or malformed
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration parses a duration variable, falling back to the default when unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// splitList parses a comma separated variable, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// UsesPostgres reports whether states are stored in PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.StorageBackend == StoragePostgres
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
