package worker

// Log messages for the worker pool
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the rollover sweep job
const (
	LogMsgRolloverSweepStarting  = "Rollover sweep starting"
	LogMsgRolloverSweepCompleted = "Rollover sweep completed"
	LogMsgRolloverSweepUserError = "Rollover failed for user"
)
