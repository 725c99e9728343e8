package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	Client   *APIClient
	AppID    string
	GuildID  string
	Registry *CommandRegistry

	ctx context.Context
}

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
	APIURL  string
	APIKey  string
}

// New creates a new Discord bot with every game command registered
func New(cfg Config) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	return &Bot{
		Session:  s,
		Client:   NewAPIClient(cfg.APIURL, cfg.APIKey),
		AppID:    cfg.AppID,
		GuildID:  cfg.GuildID,
		Registry: DefaultRegistry(),
		ctx:      context.Background(),
	}, nil
}

// Start opens the gateway connection. Command handlers run with ctx.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() error {
	return b.Session.Close()
}

// Run starts the bot and blocks until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(ctx); err != nil {
		return err
	}
	slog.Info("Discord bot is now running")
	<-ctx.Done()
	return b.Stop()
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info(LogMsgBotReady, "user", r.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.Registry.Handle(b.ctx, s, i, b.Client)
}
