package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/FishBot_Go/internal/domain"
)

const (
	optPool  = "pool"
	optCount = "count"
)

// GachaCommand draws from a gacha pool once or ten times. Without a pool it
// lists the pools instead.
func GachaCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minPool := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        "gacha",
		Description: "Draw from a gacha pool",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optPool,
				Description: "Pool ID (omit to list pools)",
				MinValue:    &minPool,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optCount,
				Description: "Number of draws (default: 1)",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Single", Value: 1},
					{Name: "Ten", Value: 10},
				},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		opts := optionMap(getOptions(i))
		poolID := 0
		if o, ok := opts[optPool]; ok {
			poolID = int(o.IntValue())
		}
		ten := false
		if o, ok := opts[optCount]; ok {
			ten = o.IntValue() == 10
		}

		runEmbedCommand(ctx, s, i, client, func(ctx context.Context, discordID string) (*discordgo.MessageEmbed, error) {
			if poolID == 0 {
				pools, err := client.GachaPools(ctx)
				if err != nil {
					return nil, err
				}
				return gachaPoolsEmbed(pools), nil
			}
			res, err := client.Draw(ctx, discordID, poolID, ten)
			if err != nil {
				return nil, err
			}
			return gachaEmbed(res), nil
		})
	}

	return cmd, handler
}

func gachaPoolsEmbed(pools []domain.GachaPool) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, p := range pools {
		fmt.Fprintf(&b, "`%d` **%s** · %d items\n", p.ID, p.Name, len(p.Candidates))
	}
	if len(pools) == 0 {
		b.WriteString("No pools are open.")
	}
	return &discordgo.MessageEmbed{
		Title:       "🎰 Gacha Pools",
		Description: b.String(),
		Color:       ColorGacha,
	}
}
