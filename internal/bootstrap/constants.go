package bootstrap

// =============================================================================
// Storage
// =============================================================================

const (
	// StoreNameFile and StoreNamePostgres label the backing store in logs
	StoreNameFile     = "file"
	StoreNamePostgres = "postgres"
)

// Log messages for storage initialization
const (
	LogMsgStorageInitialized = "State storage initialized"
	LogMsgCacheEnabled       = "State cache enabled"
	LogMsgTunablesLoaded     = "Game tunables loaded"
)

// Storage error messages
const (
	ErrMsgFailedOpenFileStore = "failed to open file store"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedMigrateDB     = "failed to migrate database"
	ErrMsgFailedLoadTunables  = "failed to load game config"
)

// =============================================================================
// Logger Configuration
// =============================================================================

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingPlanner     = "Starting pisle planner"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgConfigWarning       = "Configuration warning"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingDatabase      = "Closing database pool"
)
