package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"

	"lector/utils/logger"
)

// validateConfig validates the loaded configuration values. Startup is
// refused on the first violation.
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := validateDatabaseConfig(&config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := validateRedisConfig(&config.Redis); err != nil {
		return fmt.Errorf("redis config validation failed: %w", err)
	}

	if err := validateAuthConfig(&config.Auth, config.Server.DevMode); err != nil {
		return fmt.Errorf("auth config validation failed: %w", err)
	}

	if err := validateFeedConfig(&config.Feed); err != nil {
		return fmt.Errorf("feed config validation failed: %w", err)
	}

	if err := validateStorageConfig(&config.Storage); err != nil {
		return fmt.Errorf("storage config validation failed: %w", err)
	}

	if err := validateFolderConfig(&config.Folder); err != nil {
		return fmt.Errorf("folder config validation failed: %w", err)
	}

	if err := validateJobConfig(&config.Job); err != nil {
		return fmt.Errorf("job config validation failed: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

func validateServerConfig(config *ServerConfig) error {
	if config.Port < 1 || config.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", config.Port)
	}

	if config.ReadTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got ReadTimeout: %v", config.ReadTimeout)
	}

	if config.WriteTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got WriteTimeout: %v", config.WriteTimeout)
	}

	if config.RequestTimeout <= 0 {
		return fmt.Errorf("timeout values must be positive, got RequestTimeout: %v", config.RequestTimeout)
	}

	return nil
}

func validateDatabaseConfig(config *DatabaseConfig) error {
	if config.URL == "" {
		return fmt.Errorf("DATABASE_URL must be provided")
	}

	if !strings.HasPrefix(config.URL, "postgres://") && !strings.HasPrefix(config.URL, "postgresql://") {
		return fmt.Errorf("DATABASE_URL must be a PostgreSQL URL, got %q", schemeOf(config.URL))
	}

	if config.MaxConnections < 1 {
		return fmt.Errorf("max connections must be at least 1, got %d", config.MaxConnections)
	}

	if config.MinConnections < 0 || config.MinConnections > config.MaxConnections {
		return fmt.Errorf("min connections must be between 0 and max connections, got %d", config.MinConnections)
	}

	if config.ConnectionTimeout <= 0 {
		return fmt.Errorf("connection timeout must be positive, got %v", config.ConnectionTimeout)
	}

	return nil
}

func validateRedisConfig(config *RedisConfig) error {
	if config.URL == "" {
		return fmt.Errorf("REDIS_URL must be provided")
	}
	return nil
}

func validateAuthConfig(config *AuthConfig, devMode bool) error {
	if config.SessionTimeoutDays <= 0 {
		return fmt.Errorf("session timeout days must be positive, got %d", config.SessionTimeoutDays)
	}

	if config.MaxActiveSessions < 1 {
		return fmt.Errorf("max active sessions must be at least 1, got %d", config.MaxActiveSessions)
	}

	if config.CSRFTokenLength < 16 {
		return fmt.Errorf("CSRF token length must be at least 16, got %d", config.CSRFTokenLength)
	}

	if config.PBKDF2Iterations < 100000 {
		return fmt.Errorf("PBKDF2 iterations must be at least 100000, got %d", config.PBKDF2Iterations)
	}

	if config.MinUsernameLength < 1 || config.MaxUsernameLength < config.MinUsernameLength {
		return fmt.Errorf("username length bounds are inconsistent: min %d, max %d",
			config.MinUsernameLength, config.MaxUsernameLength)
	}

	if config.MinPasswordLength < 1 || config.MaxPasswordLength < config.MinPasswordLength {
		return fmt.Errorf("password length bounds are inconsistent: min %d, max %d",
			config.MinPasswordLength, config.MaxPasswordLength)
	}

	for _, proxy := range config.TrustedProxies {
		if _, _, err := net.ParseCIDR(proxy); err != nil {
			if net.ParseIP(proxy) == nil {
				return fmt.Errorf("trusted proxy %q is neither an IP nor a CIDR", proxy)
			}
		}
	}

	if config.ServiceTokenSecret == "" && !devMode {
		return fmt.Errorf("SERVICE_TOKEN_SECRET must be provided outside of dev mode")
	}

	return nil
}

func validateFeedConfig(config *FeedConfig) error {
	if config.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %v", config.RefreshInterval)
	}

	if config.RefreshBatchSize < 1 {
		return fmt.Errorf("refresh batch size must be at least 1, got %d", config.RefreshBatchSize)
	}

	if config.MaxConcurrentFeeds < 1 {
		return fmt.Errorf("max concurrent feeds must be at least 1, got %d", config.MaxConcurrentFeeds)
	}

	if config.MaxFeedSizeMB < 1 {
		return fmt.Errorf("max feed size must be at least 1 MB, got %d", config.MaxFeedSizeMB)
	}

	if config.MaxEntriesPerFetch < 1 {
		return fmt.Errorf("max entries per fetch must be at least 1, got %d", config.MaxEntriesPerFetch)
	}

	return nil
}

func validateStorageConfig(config *StorageConfig) error {
	if config.Path == "" {
		return fmt.Errorf("STORAGE_PATH must be provided")
	}

	if !filepath.IsAbs(config.Path) {
		return fmt.Errorf("STORAGE_PATH must be absolute, got %q", config.Path)
	}

	if config.OPMLExpiryHours <= 0 {
		return fmt.Errorf("OPML file expiry must be positive, got %d", config.OPMLExpiryHours)
	}

	if config.OPMLMaxFileSize <= 0 {
		return fmt.Errorf("OPML max file size must be positive, got %d", config.OPMLMaxFileSize)
	}

	if config.OPMLMaxDepth < 1 {
		return fmt.Errorf("OPML max nesting depth must be at least 1, got %d", config.OPMLMaxDepth)
	}

	if config.OPMLMaxOutlines < 1 {
		return fmt.Errorf("OPML max outlines must be at least 1, got %d", config.OPMLMaxOutlines)
	}

	return nil
}

func validateFolderConfig(config *FolderConfig) error {
	if config.MaxDepth < 1 {
		return fmt.Errorf("max folder depth must be at least 1, got %d", config.MaxDepth)
	}

	if config.MaxPerParent < 1 {
		return fmt.Errorf("max folders per parent must be at least 1, got %d", config.MaxPerParent)
	}

	if config.MaxNameLength < 1 {
		return fmt.Errorf("max folder name length must be at least 1, got %d", config.MaxNameLength)
	}

	return nil
}

func validateJobConfig(config *JobConfig) error {
	if config.TTL <= 0 {
		return fmt.Errorf("job TTL must be positive, got %v", config.TTL)
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("job timeout must be positive, got %v", config.Timeout)
	}

	if config.MaxTries < 1 {
		return fmt.Errorf("job max tries must be at least 1, got %d", config.MaxTries)
	}

	if config.MaxJobs < 1 {
		return fmt.Errorf("worker max jobs must be at least 1, got %d", config.MaxJobs)
	}

	if config.Stream == "" || config.ConsumerGroup == "" {
		return fmt.Errorf("job stream and consumer group must be provided")
	}

	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	if !logger.IsValidLevel(config.Level) {
		return fmt.Errorf("log level must be one of: debug, info, warning, error, critical, got %s", config.Level)
	}
	return nil
}

func schemeOf(rawURL string) string {
	if idx := strings.Index(rawURL, "://"); idx > 0 {
		return rawURL[:idx]
	}
	return rawURL
}
