package discord

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/FishBot_Go/internal/domain"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"insufficient funds", &APIError{Status: 422, Message: domain.ErrMsgInsufficientFunds + ": need 100"}, MsgInsufficientFunds},
		{"no rod", &APIError{Status: 422, Message: domain.ErrMsgNoRodEquipped}, MsgNoRod},
		{"pond full", &APIError{Status: 422, Message: domain.ErrMsgPondFull}, MsgPondFull},
		{"signed in", &APIError{Status: 409, Message: domain.ErrMsgAlreadySignedIn}, MsgAlreadySignedIn},
		{"already unlocked", &APIError{Status: 409, Message: domain.ErrMsgAlreadyUnlocked}, MsgAlreadyUnlocked},
		{"cooldown without time", &APIError{Status: 429, Message: domain.ErrMsgOnCooldown}, MsgCooldownActive},
		{"prerequisites", &APIError{Status: 403, Message: domain.ErrMsgMissingPrerequisites + ": Better Bait, Big Pond"},
			MsgTechLocked + "\nYou still need: **Better Bait, Big Pond**"},
		{"level too low", &APIError{Status: 403, Message: domain.ErrMsgLevelTooLow}, MsgTechLocked + "\n" + domain.ErrMsgLevelTooLow},
		{"unknown 404", &APIError{Status: http.StatusNotFound, Message: domain.ErrMsgPoolNotFound}, MsgNotFound},
		{"server error", &APIError{Status: 500, Message: "Something went wrong"}, MsgGenericError},
		{"other client error", &APIError{Status: 400, Message: "Invalid request"}, "❌ Invalid request"},
		{"transport error", errors.New("dial tcp: connection refused"), MsgGenericError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.err))
		})
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Fish Pond Capacity", titleCase("fish_pond_capacity"))
	assert.Equal(t, "Rod", titleCase("rod"))
}

func TestStarsClamped(t *testing.T) {
	assert.Equal(t, "★", stars(0))
	assert.Equal(t, "★★★★★", stars(9))
}

func TestFishingEmbed_Miss(t *testing.T) {
	embed := fishingEmbed(&domain.FishingResult{Fee: 10, ExpGained: 2, RodBroken: true})
	assert.Equal(t, ColorMiss, embed.Color)
	assert.Contains(t, embed.Description, "Nothing bit")
	assert.Contains(t, embed.Description, "rod broke")
}

func TestTechListEmbed_Truncates(t *testing.T) {
	list := make([]domain.TechStatus, maxEmbedLines+5)
	for n := range list {
		list[n].DisplayName = "Node"
		list[n].EffectType = domain.TechEffectPermission
	}
	list[0].Unlocked = true

	embed := techListEmbed(list)
	assert.Contains(t, embed.Description, "✅ **Node**")
	assert.Contains(t, embed.Description, "…and 5 more")
	assert.Contains(t, embed.Description, "Permission")
}
