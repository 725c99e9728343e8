package scheduler

const (
	ErrMsgInvalidSpec = "invalid schedule"

	LogMsgJobScheduled         = "Job scheduled"
	LogMsgSchedulerStopped     = "Scheduler stopped"
	LogMsgSchedulerStopTimeout = "Scheduler stop timed out, jobs may still be running"
)
