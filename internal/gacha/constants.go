package gacha

import "github.com/osse101/FishBot_Go/internal/domain"

// DefaultTierWeights apply when a pool carries no override. Index 0 is rarity 1.
var DefaultTierWeights = []float64{50, 30, 15, 4, 1}

// drawTypes are chosen uniformly before the candidate filter
var drawTypes = []domain.ItemType{domain.ItemTypeRod, domain.ItemTypeAccessory, domain.ItemTypeBait}

// Draw sizes
const (
	SingleDrawCount = 1
	TenDrawCount    = 10
)

// GachaRodDurability is the durability every drawn rod starts with
const GachaRodDurability = 100

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgGrantFailed             = "failed to grant %s %d: %w"
	ErrMsgLogFailed               = "failed to write draw log: %w"
	ErrMsgIndexFailed             = "failed to index pool %d: %w"
)

const (
	LogMsgDrawCompleted = "Gacha draw completed"
	LogMsgEmptyDraws    = "Gacha sub-draws came up empty"
)
