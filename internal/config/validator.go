package config

import (
	"fmt"
	"strings"
)

// Validate checks value ranges that cannot be expressed by defaults alone
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d out of range", ErrInvalidPort, c.Port)
	}

	switch c.StorageBackend {
	case StorageFile, StoragePostgres:
	default:
		return fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidStorageBackend, c.StorageBackend, StorageFile, StoragePostgres)
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, c.CacheSize)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCacheTTL, c.CacheTTL)
	}
	return nil
}

// Warnings returns non-fatal configuration issues worth logging at startup
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == "" {
		warnings = append(warnings, "API_KEY is not set - the API accepts unauthenticated requests")
	}
	if c.UsesPostgres() && c.DBPassword == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}
	if c.APIKey == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	return warnings
}
