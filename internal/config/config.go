package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"fishbot"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	// Storage selects the repository backend: "postgres" or "memory".
	Storage         string        `env:"STORAGE" envDefault:"postgres"`
	DBUser          string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword      string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost          string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort          string        `env:"DB_PORT" envDefault:"5432"`
	DBName          string        `env:"DB_NAME" envDefault:"fishbot"`
	DBMaxConns      int           `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMaxIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"5m"`
	DBMaxConnLife   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"30m"`
	RunMigrations   bool          `env:"DB_RUN_MIGRATIONS" envDefault:"true"`
	CatalogPath     string        `env:"CATALOG_PATH"`
	UserCacheSize   int           `env:"USER_CACHE_SIZE" envDefault:"1000"`
	UserCacheTTL    time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	APIKey         string   `env:"API_KEY"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	Game GameConfig `envPrefix:"GAME_"`
}

// GameConfig carries the economy and progression tunables.
type GameConfig struct {
	StartingGold int64 `env:"STARTING_GOLD" envDefault:"200"`
	StarterRodID int   `env:"STARTER_ROD_ID" envDefault:"1"`

	FishingCooldown time.Duration `env:"FISHING_COOLDOWN" envDefault:"3m"`
	FishingFee      int64         `env:"FISHING_FEE" envDefault:"10"`

	GachaSinglePrice int64 `env:"GACHA_SINGLE_PRICE" envDefault:"160"`
	GachaTenPrice    int64 `env:"GACHA_TEN_PRICE" envDefault:"1500"`

	PondBaseCapacity      int     `env:"POND_BASE_CAPACITY" envDefault:"480"`
	PondUpgradeCapacities []int   `env:"POND_UPGRADE_CAPACITIES" envSeparator:"," envDefault:"999,9999,99999"`
	PondUpgradeCosts      []int64 `env:"POND_UPGRADE_COSTS" envSeparator:"," envDefault:"50000,500000,50000000"`

	SignInBaseReward      int64 `env:"SIGNIN_BASE_REWARD" envDefault:"100"`
	SignInStreakIncrement int64 `env:"SIGNIN_STREAK_INCREMENT" envDefault:"20"`
	SignInStreakCap       int   `env:"SIGNIN_STREAK_CAP" envDefault:"7"`
	SignInExp             int64 `env:"SIGNIN_EXP" envDefault:"50"`

	MaxLevel        int   `env:"MAX_LEVEL" envDefault:"100"`
	BaseExpConstant int64 `env:"BASE_EXP_CONSTANT" envDefault:"100"`
	LevelRewardBase int64 `env:"LEVEL_REWARD_BASE" envDefault:"50"`

	MarketListingDuration time.Duration `env:"MARKET_LISTING_DURATION" envDefault:"72h"`
	MarketExpirySchedule  string        `env:"MARKET_EXPIRY_SCHEDULE" envDefault:"@every 5m"`

	AutoFishingSchedule    string `env:"AUTO_FISHING_SCHEDULE" envDefault:"@every 30s"`
	AutoFishingConcurrency int    `env:"AUTO_FISHING_CONCURRENCY" envDefault:"8"`

	WagerMinStake int64 `env:"WAGER_MIN_STAKE" envDefault:"10"`
	WagerMaxStake int64 `env:"WAGER_MAX_STAKE" envDefault:"100000"`

	// ChargeGoldOnAutoUnlock makes the automatic technology sweep charge
	// required_gold like a manual unlock does. Off by default.
	ChargeGoldOnAutoUnlock bool `env:"CHARGE_GOLD_ON_AUTO_UNLOCK" envDefault:"false"`
}

// DiscordConfig is the chat adapter's configuration, loaded separately by cmd/discord.
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"`
	APIURL  string `env:"API_URL" envDefault:"http://localhost:8080"`
	APIKey  string `env:"API_KEY"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	// ForceCommandUpdate overwrites slash commands even when unchanged
	ForceCommandUpdate bool `env:"DISCORD_FORCE_COMMAND_UPDATE" envDefault:"false"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, errors.New(ErrMsgAPIKeyRequired)
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDiscord loads the chat adapter configuration.
func LoadDiscord() (*DiscordConfig, error) {
	_ = godotenv.Load()

	cfg := &DiscordConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Token == "" || cfg.AppID == "" {
		return nil, errors.New(ErrMsgDiscordCredentials)
	}
	return cfg, nil
}

// Validate rejects tunables that would break economy invariants.
func (g GameConfig) Validate() error {
	switch {
	case g.StartingGold < 0:
		return fmt.Errorf("%s: GAME_STARTING_GOLD", ErrMsgNegativeValue)
	case g.FishingFee < 0:
		return fmt.Errorf("%s: GAME_FISHING_FEE", ErrMsgNegativeValue)
	case g.GachaSinglePrice <= 0 || g.GachaTenPrice <= 0:
		return fmt.Errorf("%s: GAME_GACHA_*_PRICE", ErrMsgNonPositiveValue)
	case g.MaxLevel < 1:
		return fmt.Errorf("%s: GAME_MAX_LEVEL", ErrMsgNonPositiveValue)
	case g.BaseExpConstant <= 0:
		return fmt.Errorf("%s: GAME_BASE_EXP_CONSTANT", ErrMsgNonPositiveValue)
	case len(g.PondUpgradeCapacities) != len(g.PondUpgradeCosts):
		return errors.New(ErrMsgPondTableMismatch)
	case g.WagerMinStake <= 0 || g.WagerMaxStake < g.WagerMinStake:
		return errors.New(ErrMsgWagerBounds)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
