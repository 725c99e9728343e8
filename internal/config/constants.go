package config

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

const (
	ErrMsgAPIKeyRequired     = "API_KEY environment variable must be set for security"
	ErrMsgDiscordCredentials = "DISCORD_TOKEN and DISCORD_APP_ID must be set"
	ErrMsgNegativeValue      = "value must not be negative"
	ErrMsgNonPositiveValue   = "value must be positive"
	ErrMsgPondTableMismatch  = "GAME_POND_UPGRADE_CAPACITIES and GAME_POND_UPGRADE_COSTS must have the same length"
	ErrMsgWagerBounds        = "wager stake bounds are invalid"
)
