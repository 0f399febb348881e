package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Redis    RedisConfig    `json:"redis"`
	Auth     AuthConfig     `json:"auth"`
	Feed     FeedConfig     `json:"feed"`
	Storage  StorageConfig  `json:"storage"`
	Folder   FolderConfig   `json:"folder"`
	Tag      TagConfig      `json:"tag"`
	Job      JobConfig      `json:"job"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type ServerConfig struct {
	Port           int           `json:"port" env:"SERVER_PORT" default:"9000"`
	ReadTimeout    time.Duration `json:"read_timeout" env:"SERVER_READ_TIMEOUT" default:"60s"`
	WriteTimeout   time.Duration `json:"write_timeout" env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout    time.Duration `json:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" default:"120s"`
	RequestTimeout time.Duration `json:"request_timeout" env:"REQUEST_TIMEOUT" default:"30s"`
	DevMode        bool          `json:"dev_mode" env:"DEV_MODE" default:"false"`
	SSEKeepalive   time.Duration `json:"sse_keepalive" env:"SERVER_SSE_KEEPALIVE" default:"30s"`
}

type DatabaseConfig struct {
	URL               string        `json:"database_url" env:"DATABASE_URL"`
	MaxConnections    int           `json:"max_connections" env:"DB_MAX_CONNECTIONS" default:"25"`
	MinConnections    int           `json:"min_connections" env:"DB_MIN_CONNECTIONS" default:"5"`
	ConnectionTimeout time.Duration `json:"connection_timeout" env:"DB_CONNECTION_TIMEOUT" default:"30s"`
}

type RedisConfig struct {
	URL string `json:"redis_url" env:"REDIS_URL"`
}

type AuthConfig struct {
	SessionTimeoutDays int    `json:"session_timeout_days" env:"SESSION_TIMEOUT_DAYS" default:"30"`
	SessionCookieName  string `json:"session_cookie_name" env:"SESSION_COOKIE_NAME" default:"session_id"`
	CSRFCookieName     string `json:"csrf_cookie_name" env:"CSRF_COOKIE_NAME" default:"csrf_token"`
	CSRFTokenLength    int    `json:"csrf_token_length" env:"CSRF_TOKEN_LENGTH" default:"32"`
	MaxActiveSessions  int    `json:"max_active_sessions" env:"MAX_ACTIVE_SESSIONS" default:"5"`
	PBKDF2Iterations   int    `json:"pbkdf2_iterations" env:"PBKDF2_ITERATIONS" default:"600000"`
	MinUsernameLength  int    `json:"min_username_length" env:"MIN_USERNAME_LENGTH" default:"3"`
	MaxUsernameLength  int    `json:"max_username_length" env:"MAX_USERNAME_LENGTH" default:"32"`
	MinPasswordLength  int    `json:"min_password_length" env:"MIN_PASSWORD_LENGTH" default:"8"`
	MaxPasswordLength  int    `json:"max_password_length" env:"MAX_PASSWORD_LENGTH" default:"128"`
	TrustedProxies     []string `json:"trusted_proxies" env:"TRUSTED_PROXIES"`
	CookieSecure       bool   `json:"cookie_secure" env:"COOKIE_SECURE" default:"true"`
	ServiceTokenSecret string `json:"-" env:"SERVICE_TOKEN_SECRET"`
}

type FeedConfig struct {
	RefreshInterval     time.Duration `json:"refresh_interval" env:"FEED_REFRESH_INTERVAL" default:"15m"`
	RefreshBatchSize    int           `json:"refresh_batch_size" env:"FEED_REFRESH_BATCH_SIZE" default:"10"`
	MaxConcurrentFeeds  int           `json:"max_concurrent_feeds" env:"MAX_CONCURRENT_FEEDS" default:"50"`
	MaxFeedSizeMB       int           `json:"max_feed_size_mb" env:"MAX_FEED_SIZE_MB" default:"5"`
	PerHostInterval     time.Duration `json:"per_host_interval" env:"FETCH_PER_HOST_INTERVAL" default:"2s"`
	UserAgent           string        `json:"user_agent" env:"USER_AGENT" default:"lector/1.0 (+https://lector.example)"`
	MaxEntriesPerFetch  int           `json:"max_entries_per_fetch" env:"MAX_ENTRIES_PER_FETCH" default:"50"`
	LatestArticlesLimit int           `json:"latest_articles_limit" env:"LATEST_ARTICLES_LIMIT" default:"50"`
}

type StorageConfig struct {
	Path              string `json:"storage_path" env:"STORAGE_PATH" default:"/var/lib/lector"`
	OPMLExpiryHours   int    `json:"opml_file_expiry_hours" env:"OPML_FILE_EXPIRY_HOURS" default:"24"`
	OPMLMaxFileSize   int64  `json:"opml_max_file_size" env:"OPML_MAX_FILE_SIZE" default:"16777216"`
	OPMLMaxDepth      int    `json:"max_opml_nesting_depth" env:"MAX_OPML_NESTING_DEPTH" default:"9"`
	OPMLMaxOutlines   int    `json:"max_opml_outlines" env:"MAX_OPML_OUTLINES" default:"10000"`
}

type FolderConfig struct {
	MaxDepth      int `json:"max_folder_depth" env:"MAX_FOLDER_DEPTH" default:"9"`
	MaxPerParent  int `json:"max_folders_per_parent" env:"MAX_FOLDERS_PER_PARENT" default:"50"`
	MaxNameLength int `json:"max_folder_name_length" env:"MAX_FOLDER_NAME_LENGTH" default:"16"`
}

type TagConfig struct {
	MaxNameLength int `json:"max_tag_name_length" env:"MAX_TAG_NAME_LENGTH" default:"64"`
}

type JobConfig struct {
	TTL           time.Duration `json:"job_ttl" env:"JOB_TTL" default:"3600s"`
	Timeout       time.Duration `json:"job_timeout" env:"JOB_TIMEOUT" default:"3600s"`
	MaxTries      int           `json:"job_max_tries" env:"JOB_MAX_TRIES" default:"3"`
	MaxJobs       int           `json:"worker_max_jobs" env:"WORKER_MAX_JOBS" default:"10"`
	Stream        string        `json:"job_stream" env:"JOB_STREAM" default:"lector:jobs"`
	ConsumerGroup string        `json:"job_consumer_group" env:"JOB_CONSUMER_GROUP" default:"lector-workers"`
	PollBlock     time.Duration `json:"job_poll_block" env:"JOB_POLL_BLOCK" default:"500ms"`
}

type LoggingConfig struct {
	Level       string `json:"level" env:"LOG_LEVEL" default:"info"`
	OTelEnabled bool   `json:"otel_enabled" env:"LOG_OTEL_ENABLED" default:"false"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled" env:"METRICS_ENABLED" default:"true"`
}

// NewConfig loads configuration from the environment with fallback to
// declared defaults. A .env file is honored when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{}

	if err := loadFromEnvironment(config); err != nil {
		return nil, err
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// Load is an alias for NewConfig.
func Load() (*Config, error) {
	return NewConfig()
}
