package signin

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgUpdateUserFailed        = "failed to update user: %w"
	ErrMsgLogFailed               = "failed to write sign-in log: %w"

	LogMsgSignedIn = "User signed in"
)
