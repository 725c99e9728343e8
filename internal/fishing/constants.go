package fishing

import "github.com/osse101/FishBot_Go/internal/domain"

// ActionFishing names the cooldown in ErrOnCooldown
const ActionFishing = "fish"

// Success chance model
const (
	BaseSuccessRate = 0.5
	MaxSuccessRate  = 0.95
)

// AllElementBonus applies when the rod carries the "all" element and the fish has one
const AllElementBonus = 1.2

type elementPair struct {
	rod  domain.Element
	fish domain.Element
}

// elementBonus maps a rod element to the fish elements it is strong against
var elementBonus = map[elementPair]float64{
	{domain.ElementIce, domain.ElementFire}:        1.5,
	{domain.ElementFire, domain.ElementGrass}:      2.0,
	{domain.ElementElectric, domain.ElementWater}:  2.0,
	{domain.ElementElectric, domain.ElementFlying}: 2.0,
	{domain.ElementGrass, domain.ElementWater}:     1.5,
	{domain.ElementGrass, domain.ElementGround}:    1.5,
	{domain.ElementPoison, domain.ElementGrass}:    1.5,
}

const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetUserFailed           = "failed to get user: %w"
	ErrMsgFeeFmt                  = "%w: fishing costs %d gold, have %d"
	ErrMsgPondFullFmt             = "%w: %d/%d fish, sell some first"
	ErrMsgEquipmentFailed         = "failed to load equipment: %w"
	ErrMsgRodTemplateFailed       = "failed to resolve rod template: %w"
	ErrMsgDurabilityFailed        = "failed to update rod durability: %w"
	ErrMsgBaitFailed              = "failed to consume bait: %w"
	ErrMsgCatchFailed             = "failed to store catch: %w"
	ErrMsgLogFailed               = "failed to write fishing log: %w"
	ErrMsgUpdateUserFailed        = "failed to update user: %w"
	ErrMsgRewardFailed            = "failed to pay level-up reward: %w"
	ErrMsgNoFishTemplates         = "catalog has no fish templates"
)

const (
	LogMsgCatch     = "Fish caught"
	LogMsgMiss      = "Fishing attempt missed"
	LogMsgRodBroken = "Rod broke"
	LogMsgLevelUp   = "User leveled up"
	LogMsgAutoSkip  = "Auto-fishing skipped"
)
