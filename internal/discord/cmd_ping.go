package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports whether the bot and the game API are reachable
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot is alive",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		content := "Pong! 🏓"
		if !client.Healthy(ctx) {
			content = "Pong! 🏓 (game server unreachable)"
		}
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: content},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}
