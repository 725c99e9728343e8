package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ProfileCommand shows the caller's level, wallet and gear
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "View your fishing profile",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		avatar := getInteractionUser(i).AvatarURL("")
		runEmbedCommand(ctx, s, i, client, func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error) {
			p, err := client.Profile(ctx, discordID)
			if err != nil {
				return nil, err
			}
			return profileEmbed(p, avatar), nil
		})
	}

	return cmd, handler
}
