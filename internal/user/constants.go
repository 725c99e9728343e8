package user

import "time"

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 5 * time.Minute

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgInsertUserFailed        = "failed to insert user: %w"
	ErrMsgStarterRodFailed        = "failed to grant starter rod: %w"
	ErrMsgStartingGoldFailed      = "failed to grant starting gold: %w"
	ErrMsgInvalidPlatformFmt      = "%w: %q"
	ErrMsgEmptyPlatformID         = "platform_id is required"
	ErrMsgRodBroken               = "rod is broken"
	ErrMsgUpdateUserFailed        = "failed to update user: %w"
)

const (
	LogMsgUserRegistered = "User registered"
	LogMsgRodEquipped    = "Rod equipped"
	LogMsgAccEquipped    = "Accessory equipped"
	LogMsgBaitEquipped   = "Bait equipped"
	LogMsgTitleSet       = "Title set"
	LogMsgAutoFishingSet = "Auto-fishing toggled"
)
