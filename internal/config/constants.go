package config

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
	EnvServiceName       = "SERVICE_NAME"
	EnvVersion           = "VERSION"
	EnvEnvironment       = "ENVIRONMENT"
	EnvAPIKey            = "API_KEY"
	EnvStorageBackend    = "STORAGE_BACKEND"
	EnvDataDir           = "DATA_DIR"
	EnvDBUser            = "DB_USER"
	EnvDBPassword        = "DB_PASSWORD"
	EnvDBHost            = "DB_HOST"
	EnvDBPort            = "DB_PORT"
	EnvDBName            = "DB_NAME"
	EnvDBMaxConns        = "DB_MAX_CONNS"
	EnvDBMaxConnIdleTime = "DB_MAX_CONN_IDLE_TIME"
	EnvDBMaxConnLifetime = "DB_MAX_CONN_LIFETIME"
	EnvCacheSize         = "CACHE_SIZE"
	EnvCacheTTL          = "CACHE_TTL"
	EnvGameConfig        = "GAME_CONFIG"
	EnvTrustedProxies    = "TRUSTED_PROXIES"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultPort           = 8080
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultServiceName    = "pisle-planner"
	DefaultVersion        = "dev"
	DefaultEnvironment    = "dev"
	DefaultStorageBackend = StorageFile
	DefaultDataDir        = "data"
	DefaultDBName         = "pisle"
	DefaultDBMaxConns     = 20
	DefaultCacheSize      = 256
)

// Error messages
const (
	ErrMsgInvalidPort           = "invalid PORT value"
	ErrMsgInvalidStorageBackend = "invalid STORAGE_BACKEND value"
	ErrMsgInvalidLogFormat      = "invalid LOG_FORMAT value"
	ErrMsgInvalidCacheSize      = "invalid CACHE_SIZE value"
	ErrMsgInvalidCacheTTL       = "invalid CACHE_TTL value"
)
