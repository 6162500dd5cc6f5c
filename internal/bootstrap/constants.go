package bootstrap

import "time"

const (
	// DirPermission is the permission for the log directory
	DirPermission = 0o755

	// LogFilePermission is the permission for session log files
	LogFilePermission = 0o644
)

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	LogFileExtension = ".log"

	// LogFileRetentionCount is how many older session logs survive startup cleanup
	LogFileRetentionCount = 9
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 15 * time.Second

// Log messages
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStarting             = "Starting NiltersBot"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgConfigWarning        = "Configuration warning"
	LogMsgStoreOpened          = "Store opened"
	LogMsgCatalogLoaded        = "Catalog loaded"
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgStoreCloseFailed     = "Store close failed"
	LogMsgServerStopped        = "Server stopped"
)

// Error messages
const (
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	ErrMsgUnknownDriver       = "unknown store driver"
	ErrMsgFailedOpenStore     = "failed to open store"
	ErrMsgFailedLoadCatalog   = "failed to load catalog"
)
