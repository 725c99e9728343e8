package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/FishBot_Go/internal/config"
	"github.com/osse101/FishBot_Go/internal/discord"
	"github.com/osse101/FishBot_Go/internal/logger"
)

func main() {
	cfg, err := config.LoadDiscord()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "fishbot-discord", cfg.Version, cfg.Environment, false))
	if cfg.APIKey == "" {
		slog.Warn("API_KEY not set, discord bot requests will be rejected")
	}
	slog.Info("Configured API URL", "url", cfg.APIURL)

	bot, err := discord.New(discord.Config{
		Token:   cfg.Token,
		AppID:   cfg.AppID,
		GuildID: cfg.GuildID,
		APIURL:  cfg.APIURL,
		APIKey:  cfg.APIKey,
	})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	if err := bot.RegisterCommands(cfg.ForceCommandUpdate); err != nil {
		// Commands registered on a previous run keep working
		slog.Error("Failed to register commands", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bot.Run(ctx); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}
