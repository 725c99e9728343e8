package wager

// Multiplier is one row of the payout table
type Multiplier struct {
	Value  float64 `json:"multiplier"`
	Weight float64 `json:"weight"`
}

// DefaultTable pays back about 89% of stakes on average
var DefaultTable = []Multiplier{
	{Value: 0, Weight: 40},
	{Value: 0.5, Weight: 20},
	{Value: 1, Weight: 15},
	{Value: 1.5, Weight: 12},
	{Value: 2, Weight: 8},
	{Value: 5, Weight: 4},
	{Value: 10, Weight: 1},
}

const (
	ErrMsgStakeOutOfRange         = "stake must be between %d and %d"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgLogFailed               = "failed to write wager log: %w"
	ErrMsgGateCheckFailed         = "failed to check wipe bomb unlock: %w"

	LogMsgWagerSettled = "Wager settled"
	LogMsgBigWin       = "Wager paid big"

	// BigWinMultiplier marks payouts worth an info log
	BigWinMultiplier = 5.0
)
