package market

import "time"

const (
	// DefaultListingDuration applies when Config leaves it zero
	DefaultListingDuration = 72 * time.Hour
	// DefaultBrowseLimit caps browse pages
	DefaultBrowseLimit = 50
	MaxBrowseLimit     = 200
	// ExpiryBatchSize is how many listings one expiry transaction claims
	ExpiryBatchSize = 100
	// suggestionLimit bounds the names offered when a browse name does not resolve
	suggestionLimit = 3
)

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgGateCheckFailed         = "failed to check market access: %w"
	ErrMsgEscrowFailed            = "failed to escrow item: %w"
	ErrMsgTransferFailed          = "failed to transfer item: %w"
	ErrMsgUnknownName             = "no item named %q"
	ErrMsgDidYouMean              = "no item named %q, did you mean %s?"

	LogMsgListed      = "Market listing created"
	LogMsgSold        = "Market listing sold"
	LogMsgDelisted    = "Market listing withdrawn"
	LogMsgExpired     = "Expired market listings returned"
	LogMsgNameMissing = "Listing references unknown template"
)
