package achievement

// MultiplierScale converts a wager multiplier into integer progress (x10.5 -> 1050)
const MultiplierScale = 100

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgLoadProgressFailed      = "failed to load achievement progress: %w"
	ErrMsgSaveProgressFailed      = "failed to save progress for %s: %w"
	ErrMsgStatFailed              = "failed to compute %s: %w"
	ErrMsgGrantFailed             = "failed to grant %s reward for %s: %w"
)

const (
	LogMsgCompleted = "Achievement completed"
)
