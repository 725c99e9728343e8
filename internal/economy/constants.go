package economy

// Error message formats
const (
	ErrMsgCreditFmt    = "invalid credit amount %d: %w"
	ErrMsgDebitFmt     = "invalid debit amount %d: %w"
	ErrMsgCreditFailed = "failed to credit: %w"
	ErrMsgDebitFailed  = "failed to debit: %w"

	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgInvalidQuantityFmt      = "invalid quantity %d: %w"
	ErrMsgNotBuyableFmt           = "%s is not sold in the shop: %w"
)

// Log messages
const (
	LogMsgPurchase    = "Shop purchase completed"
	LogMsgFishSold    = "Fish sold"
	LogMsgPondUpgrade = "Fish pond upgraded"
	LogMsgGoldGranted = "Gold granted by admin"
)

// MaxPurchaseQuantity caps a single bait purchase
const MaxPurchaseQuantity = 999
