package discord

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/FishBot_Go/internal/domain"
)

var titleCaser = cases.Title(language.English)

// titleCase turns snake_case identifiers like "fish_pond_capacity" into "Fish Pond Capacity"
func titleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// formatFriendlyError maps API failures to short player-facing messages
func formatFriendlyError(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return MsgGenericError
	}
	msg := apiErr.Message

	switch {
	case strings.HasPrefix(msg, domain.ErrMsgOnCooldown):
		// "action on cooldown 'fishing': 12s remaining"
		if _, rest, ok := strings.Cut(msg, ": "); ok {
			return fmt.Sprintf("%s\nWait for: **%s**", MsgCooldownActive, strings.TrimSuffix(rest, " remaining"))
		}
		return MsgCooldownActive
	case strings.HasPrefix(msg, domain.ErrMsgMissingPrerequisites):
		if _, missing, ok := strings.Cut(msg, ": "); ok {
			return fmt.Sprintf("%s\nYou still need: **%s**", MsgTechLocked, missing)
		}
		return MsgTechLocked
	case strings.HasPrefix(msg, domain.ErrMsgLevelTooLow), strings.HasPrefix(msg, domain.ErrMsgTechnologyUnavailable):
		return fmt.Sprintf("%s\n%s", MsgTechLocked, msg)
	case strings.HasPrefix(msg, domain.ErrMsgAlreadyUnlocked):
		return MsgAlreadyUnlocked
	case strings.HasPrefix(msg, domain.ErrMsgInsufficientFunds):
		return MsgInsufficientFunds
	case strings.HasPrefix(msg, domain.ErrMsgNoRodEquipped):
		return MsgNoRod
	case strings.HasPrefix(msg, domain.ErrMsgPondFull):
		return MsgPondFull
	case strings.HasPrefix(msg, domain.ErrMsgAlreadySignedIn):
		return MsgAlreadySignedIn
	case strings.HasPrefix(msg, domain.ErrMsgUserNotFound):
		return MsgUserNotFound
	case apiErr.Status == http.StatusNotFound:
		return MsgNotFound
	case apiErr.Status >= http.StatusInternalServerError || msg == "":
		return MsgGenericError
	}
	return "❌ " + msg
}

func stars(rarity int) string {
	if rarity < domain.MinRarity {
		rarity = domain.MinRarity
	}
	if rarity > domain.MaxRarity {
		rarity = domain.MaxRarity
	}
	return strings.Repeat("★", rarity)
}

// progressLines appends the level-up and cascade notices shared by several commands
func progressLines(b *strings.Builder, lvl *domain.LevelUp, techs []domain.Technology, achievements []domain.Achievement) {
	if lvl != nil {
		fmt.Fprintf(b, "\n🎉 **Level up!** %d → %d (+%d gold)", lvl.FromLevel, lvl.ToLevel, lvl.Reward)
	}
	for _, t := range techs {
		fmt.Fprintf(b, "\n🔓 Unlocked **%s**", t.DisplayName)
	}
	for _, a := range achievements {
		fmt.Fprintf(b, "\n🏆 Achievement **%s**", a.Name)
	}
}

func fishingEmbed(res *domain.FishingResult) *discordgo.MessageEmbed {
	var b strings.Builder
	embed := &discordgo.MessageEmbed{Title: "🎣 Fishing"}

	if res.Success {
		embed.Color = ColorSuccess
		fmt.Fprintf(&b, "You caught a **%s** %s\n", res.FishName, stars(res.Rarity))
		fmt.Fprintf(&b, "Weight: **%.2f kg** · Value: **%d gold**", res.WeightKg, res.Value)
		if res.ElementBonus > 1 {
			fmt.Fprintf(&b, "\nElement bonus ×%.2f", res.ElementBonus)
		}
	} else {
		embed.Color = ColorMiss
		b.WriteString("Nothing bit this time.")
	}
	fmt.Fprintf(&b, "\nFee: %d gold · +%d exp", res.Fee, res.ExpGained)
	if res.RodBroken {
		b.WriteString("\n💥 Your rod broke!")
	}
	progressLines(&b, res.LevelUp, res.UnlockedTechnologies, res.CompletedAchievements)

	embed.Description = b.String()
	return embed
}

func gachaEmbed(res *domain.GachaResult) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, d := range res.Draws {
		fmt.Fprintf(&b, "%s **%s** (%s)\n", stars(d.Rarity), d.Name, titleCase(string(d.ItemType)))
	}
	fmt.Fprintf(&b, "\nSpent **%d gold** · Balance **%d**", res.Cost, res.GoldAfter)
	progressLines(&b, nil, nil, res.CompletedAchievements)
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎰 Gacha x%d", len(res.Draws)),
		Description: b.String(),
		Color:       ColorGacha,
	}
}

func signInEmbed(res *domain.SignInResult) *discordgo.MessageEmbed {
	var b strings.Builder
	fmt.Fprintf(&b, "Reward: **%d gold** · Streak: **%d day(s)**\n+%d exp · Balance **%d**",
		res.Reward, res.Streak, res.ExpGained, res.GoldAfter)
	progressLines(&b, res.LevelUp, res.UnlockedTechnologies, res.CompletedAchievements)
	return &discordgo.MessageEmbed{
		Title:       "📅 Daily Sign-In",
		Description: b.String(),
		Color:       ColorGold,
	}
}

func profileEmbed(p *domain.Profile, avatarURL string) *discordgo.MessageEmbed {
	u := p.User
	name := u.Username
	if p.Title != nil {
		name = fmt.Sprintf("[%s] %s", p.Title.Name, u.Username)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Level", Value: fmt.Sprintf("%d (%d/%d exp)", u.Level, p.ExpIntoLevel, p.ExpForNextLevel), Inline: true},
		{Name: "Gold", Value: fmt.Sprintf("%d", u.Gold), Inline: true},
		{Name: "Premium", Value: fmt.Sprintf("%d", u.Premium), Inline: true},
		{Name: "Catches", Value: fmt.Sprintf("%d", u.FishingCount), Inline: true},
		{Name: "Pond", Value: fmt.Sprintf("%d/%d", p.PondCount, u.FishPondCapacity), Inline: true},
		{Name: "Streak", Value: fmt.Sprintf("%d", u.SignInStreak), Inline: true},
	}
	if p.RodName != "" {
		rod := p.RodName
		if p.Rod != nil && p.Rod.Durability != nil {
			rod = fmt.Sprintf("%s (%d)", p.RodName, *p.Rod.Durability)
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Rod", Value: rod, Inline: true})
	}
	if p.AccessoryName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Accessory", Value: p.AccessoryName, Inline: true})
	}
	if p.BaitName != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Bait", Value: fmt.Sprintf("%s x%d", p.BaitName, p.BaitCount), Inline: true})
	}
	cooldown := "Ready"
	if p.CooldownLeft > 0 {
		cooldown = p.CooldownLeft.Round(time.Second).String()
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Next cast", Value: cooldown, Inline: true})

	embed := &discordgo.MessageEmbed{
		Title:  name,
		Color:  ColorInfo,
		Fields: fields,
	}
	if avatarURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return embed
}

func techListEmbed(list []domain.TechStatus) *discordgo.MessageEmbed {
	var b strings.Builder
	for n, t := range list {
		if n == maxEmbedLines {
			fmt.Fprintf(&b, "…and %d more", len(list)-n)
			break
		}
		mark := "🔒"
		switch {
		case t.Unlocked:
			mark = "✅"
		case t.CanUnlock:
			mark = "🟢"
		}
		fmt.Fprintf(&b, "%s **%s** `%s` · Lv %d · %d gold · %s\n",
			mark, t.DisplayName, t.Key, t.RequiredLevel, t.RequiredGold, titleCase(string(t.EffectType)))
	}
	if len(list) == 0 {
		b.WriteString("No technologies yet.")
	}
	return &discordgo.MessageEmbed{
		Title:       "🔬 Technologies",
		Description: b.String(),
		Color:       ColorInfo,
	}
}
