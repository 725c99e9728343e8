package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// FishCommand casts the caller's equipped rod once
func FishCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "fish",
		Description: "Cast your line",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		runEmbedCommand(ctx, s, i, client, func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error) {
			res, err := client.Fish(ctx, discordID)
			if err != nil {
				return nil, err
			}
			return fishingEmbed(res), nil
		})
	}

	return cmd, handler
}
