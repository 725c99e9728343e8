package discord

import "time"

// Friendly message constants for Discord responses
const (
	MsgInsufficientFunds = "⚠️ **Not Enough Gold!**\nYou don't have enough gold for this."
	MsgNoRod             = "🎣 **No Rod Equipped**\nBuy a rod in the shop or pull one from the gacha first."
	MsgPondFull          = "🐟 **Fish Pond Full**\nSell some fish or upgrade your pond."
	MsgUserNotFound      = "👤 **User Not Found**\nHave they registered yet?"
	MsgCooldownActive    = "⏳ **Whoa there!**\nThe fish need a moment to come back."
	MsgAlreadySignedIn   = "📅 **Already Signed In**\nCome back tomorrow to keep your streak."
	MsgTechLocked        = "🔒 **Technology Locked**"
	MsgAlreadyUnlocked   = "✅ **Already Unlocked**"
	MsgNotFound          = "❓ **Not Found**\nMaybe check the spelling?"
	MsgGenericError      = "❌ Something went wrong."

	FooterText = "FishBot"
)

// Embed colors
const (
	ColorSuccess = 0x2ecc71
	ColorMiss    = 0x95a5a6
	ColorGacha   = 0x9b59b6
	ColorInfo    = 0x3498db
	ColorGold    = 0xf1c40f
)

const (
	defaultClientTimeout = 10 * time.Second
	defaultMaxRetries    = 3
	defaultRetryDelay    = 500 * time.Millisecond

	apiPrefix      = "/api/v1"
	headerAPIKey   = "X-API-Key"
	apiErrorPrefix = "API error: "

	// maxEmbedLines keeps long lists inside Discord's embed description limit
	maxEmbedLines = 20
)

const (
	LogMsgCommandFailed   = "Discord command failed"
	LogMsgRespondFailed   = "Failed to send interaction response"
	LogMsgDeferFailed     = "Failed to send deferred response"
	LogMsgRetrying        = "Retrying API request"
	LogMsgRequestFailed   = "API request failed"
	LogMsgServerError     = "Server error, will retry"
	LogMsgCommandsSkipped = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated = "Commands updated"
	LogMsgBotReady        = "Bot is ready"
)
