package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// SignInCommand claims the daily reward
func SignInCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "signin",
		Description: "Claim your daily sign-in reward",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		runEmbedCommand(ctx, s, i, client, func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error) {
			res, err := client.SignIn(ctx, discordID)
			if err != nil {
				return nil, err
			}
			return signInEmbed(res), nil
		})
	}

	return cmd, handler
}
