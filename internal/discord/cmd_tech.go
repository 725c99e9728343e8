package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	subTechList   = "list"
	subTechUnlock = "unlock"
	optTechKey    = "key"
)

// TechCommand lists the technology tree or unlocks a node
func TechCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "tech",
		Description: "Browse and unlock technologies",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subTechList,
				Description: "Show every technology and what it needs",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subTechUnlock,
				Description: "Unlock a technology",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        optTechKey,
						Description: "Technology key, as shown by /tech list",
						Required:    true,
					},
				},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := getOptions(i)
		sub := subTechList
		var subOpts []*discordgo.ApplicationCommandInteractionDataOption
		if len(opts) > 0 {
			sub = opts[0].Name
			subOpts = opts[0].Options
		}

		runEmbedCommand(ctx, s, i, client, func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error) {
			if sub == subTechUnlock {
				key := ""
				if o, ok := optionMap(subOpts)[optTechKey]; ok {
					key = o.StringValue()
				}
				tech, err := client.UnlockTechnology(ctx, discordID, key)
				if err != nil {
					return nil, err
				}
				return &discordgo.MessageEmbed{
					Title:       "🔓 Technology Unlocked",
					Description: fmt.Sprintf("**%s**\n%s", tech.DisplayName, tech.Description),
					Color:       ColorSuccess,
				}, nil
			}

			list, err := client.Technologies(ctx, discordID)
			if err != nil {
				return nil, err
			}
			return techListEmbed(list), nil
		})
	}

	return cmd, handler
}
