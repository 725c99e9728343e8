package discord

import (
	"context"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	for _, name := range []string{"ping", "fish", "gacha", "signin", "profile", "tech"} {
		assert.Contains(t, r.Commands, name)
		assert.Contains(t, r.Handlers, name)
	}

	sorted := r.sortedCommands()
	for n := 1; n < len(sorted); n++ {
		assert.Less(t, sorted[n-1].Name, sorted[n].Name)
	}
}

func TestCommandsEqual(t *testing.T) {
	gacha, _ := GachaCommand()
	fish, _ := FishCommand()
	desired := []*discordgo.ApplicationCommand{gacha, fish}

	t.Run("same set in any order", func(t *testing.T) {
		assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{fish, gacha}, desired))
	})

	t.Run("numeric choices round-tripped as float", func(t *testing.T) {
		remote, _ := GachaCommand()
		for _, c := range remote.Options[1].Choices {
			c.Value = float64(c.Value.(int))
		}
		assert.True(t, commandsEqual([]*discordgo.ApplicationCommand{fish, remote}, desired))
	})

	t.Run("changed description", func(t *testing.T) {
		changed, _ := FishCommand()
		changed.Description = "old text"
		assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{gacha, changed}, desired))
	})

	t.Run("missing command", func(t *testing.T) {
		assert.False(t, commandsEqual([]*discordgo.ApplicationCommand{gacha}, desired))
	})

	t.Run("nested subcommand option changed", func(t *testing.T) {
		a, _ := TechCommand()
		b, _ := TechCommand()
		b.Options[1].Options[0].Required = false
		assert.False(t, commandEqual(a, b))
	})
}

func TestFishCommand_Success(t *testing.T) {
	tc := newTestContext(t)
	tc.registerOK()
	tc.Mux.HandleFunc("POST /api/v1/users/discord/42/fish", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.FishingResult{
			Success:   true,
			FishName:  "Carp",
			Rarity:    2,
			WeightKg:  1.25,
			Value:     40,
			Fee:       10,
			ExpGained: 12,
			LevelUp:   &domain.LevelUp{FromLevel: 1, ToLevel: 2, Reward: 100},
		})
	})

	_, handler := FishCommand()
	handler(context.Background(), tc.Session, commandInteraction("fish"), tc.Client)

	edit := tc.Discord.lastEdit(t)
	require.NotNil(t, edit.Embeds)
	embed := (*edit.Embeds)[0]
	assert.Contains(t, embed.Description, "Carp")
	assert.Contains(t, embed.Description, "★★")
	assert.Contains(t, embed.Description, "Level up!")
	assert.Equal(t, ColorSuccess, embed.Color)
}

func TestFishCommand_Cooldown(t *testing.T) {
	tc := newTestContext(t)
	tc.registerOK()
	tc.Mux.HandleFunc("POST /api/v1/users/discord/42/fish", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "action on cooldown 'fishing': 12s remaining"})
	})

	_, handler := FishCommand()
	handler(context.Background(), tc.Session, commandInteraction("fish"), tc.Client)

	edit := tc.Discord.lastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Contains(t, *edit.Content, MsgCooldownActive)
	assert.Contains(t, *edit.Content, "**12s**")
}

func TestGachaCommand_TenDraw(t *testing.T) {
	tc := newTestContext(t)
	tc.registerOK()
	tc.Mux.HandleFunc("POST /api/v1/users/discord/42/gacha/3/ten", func(w http.ResponseWriter, r *http.Request) {
		draws := make([]domain.GachaDraw, 10)
		for n := range draws {
			draws[n] = domain.GachaDraw{ItemType: domain.ItemTypeRod, Name: "Bamboo Rod", Rarity: 1}
		}
		writeJSON(w, http.StatusOK, domain.GachaResult{PoolID: 3, Cost: 900, Draws: draws, GoldAfter: 100})
	})

	i := commandInteraction("gacha",
		&discordgo.ApplicationCommandInteractionDataOption{Name: optPool, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
		&discordgo.ApplicationCommandInteractionDataOption{Name: optCount, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(10)},
	)
	_, handler := GachaCommand()
	handler(context.Background(), tc.Session, i, tc.Client)

	embed := (*tc.Discord.lastEdit(t).Embeds)[0]
	assert.Equal(t, "🎰 Gacha x10", embed.Title)
	assert.Contains(t, embed.Description, "★ **Bamboo Rod** (Rod)")
}

func TestGachaCommand_NoPoolListsPools(t *testing.T) {
	tc := newTestContext(t)
	tc.registerOK()
	tc.Mux.HandleFunc("GET /api/v1/gacha/pools", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.GachaPool{
			{ID: 1, Name: "Starter", Candidates: make([]domain.GachaCandidate, 3)},
		})
	})

	_, handler := GachaCommand()
	handler(context.Background(), tc.Session, commandInteraction("gacha"), tc.Client)

	embed := (*tc.Discord.lastEdit(t).Embeds)[0]
	assert.Equal(t, "🎰 Gacha Pools", embed.Title)
	assert.Contains(t, embed.Description, "**Starter** · 3 items")
}

func TestTechCommand_Unlock(t *testing.T) {
	tc := newTestContext(t)
	tc.registerOK()
	tc.Mux.HandleFunc("POST /api/v1/users/discord/42/tech/auto_fishing/unlock", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, domain.Technology{Key: "auto_fishing", DisplayName: "Auto Fishing"})
	})

	i := commandInteraction("tech", &discordgo.ApplicationCommandInteractionDataOption{
		Name: subTechUnlock,
		Type: discordgo.ApplicationCommandOptionSubCommand,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: optTechKey, Type: discordgo.ApplicationCommandOptionString, Value: "auto_fishing"},
		},
	})
	_, handler := TechCommand()
	handler(context.Background(), tc.Session, i, tc.Client)

	embed := (*tc.Discord.lastEdit(t).Embeds)[0]
	assert.Contains(t, embed.Description, "Auto Fishing")
}

func TestRunEmbedCommand_RegisterFails(t *testing.T) {
	tc := newTestContext(t)
	tc.Client.MaxRetries = 0
	tc.Mux.HandleFunc("POST /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, handler := SignInCommand()
	handler(context.Background(), tc.Session, commandInteraction("signin"), tc.Client)

	edit := tc.Discord.lastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, MsgGenericError, *edit.Content)
}
