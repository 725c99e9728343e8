package worker

import "errors"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerTaskPanic  = "Worker task panicked"
	LogMsgWorkerSubmitFail = "Failed to submit worker task"
)

// ============================================================================
// Log Messages - Auto-Fishing Sweep
// ============================================================================

// Log messages for auto-fishing sweeps
const (
	LogMsgAutoFishingStarting   = "Auto-fishing sweep starting"
	LogMsgAutoFishingCompleted  = "Auto-fishing sweep completed"
	LogMsgAutoFishingOverlap    = "Auto-fishing sweep already running, skipping"
	LogMsgAutoFishingUserFailed = "Auto-fishing attempt failed"
)

// ============================================================================
// Log Messages - Market Expiry
// ============================================================================

// Log messages for the market expiry job
const (
	LogMsgMarketExpiryCompleted = "Market expiry sweep completed"
)

const ErrMsgSweepInProgress = "sweep already in progress"

// ErrSweepInProgress is returned when a sweep is requested while one is running
var ErrSweepInProgress = errors.New(ErrMsgSweepInProgress)

// Job names used for logging and metrics
const (
	JobNameAutoFishing  = "auto_fishing"
	JobNameMarketExpiry = "market_expiry"
)
