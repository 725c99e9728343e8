package bootstrap

// Log messages for startup
const (
	LogMsgStarting            = "Starting FishBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgStorageReady        = "Storage ready"
	LogMsgCatalogLoaded       = "Catalog loaded"
	LogMsgEventSystemReady    = "Event system initialized"
	LogMsgJobsScheduled       = "Background jobs scheduled"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgSchedulerStopFailed  = "Scheduler did not stop cleanly"
	LogMsgStorageClosed        = "Storage closed"
	LogMsgServerStopped        = "Server stopped"
)

// Error messages
const (
	ErrMsgUnknownStorage  = "unknown storage backend"
	ErrMsgConnectDatabase = "failed to connect to database"
	ErrMsgMigrate         = "failed to migrate database"
	ErrMsgLoadCatalog     = "failed to load catalog"
	ErrMsgCreateService   = "failed to create service"
	ErrMsgCreatePool      = "failed to create worker pool"
	ErrMsgScheduleJob     = "failed to schedule job"
)
