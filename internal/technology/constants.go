package technology

import "time"

// Cache defaults
const (
	DefaultCacheSize = 2048
	DefaultCacheTTL  = 10 * time.Minute
)

// Well-known technology keys referenced by feature gates
const (
	KeyMarketAccess = "market_access"
	KeyWipeBomb     = "wipe_bomb"
	KeyAutoFishing  = "auto_fishing"
)

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgListUnlockedFailed      = "failed to list unlocked technologies: %w"
	ErrMsgRecordUnlockFailed      = "failed to record unlock of %s: %w"
	ErrMsgUpdateUserFailed        = "failed to apply technology effect: %w"
	ErrMsgLevelTooLowFmt          = "%w: %s needs level %d, have %d"
	ErrMsgGoldTooLowFmt           = "%w: %s costs %d gold, have %d"
)

const (
	LogMsgUnlocked      = "Technology unlocked"
	LogMsgAutoUnlocked  = "Technology auto-unlocked"
	LogMsgSweepFinished = "Technology sweep finished"
)
