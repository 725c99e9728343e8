package achievement

import (
	"fmt"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
)

// Heavy catch threshold in grams
const heavyCatchGrams = 100_000

// defaultRules is the fixed rule list. Ids are stable and persisted in progress rows.
func defaultRules(cat *catalog.Catalog) []domain.Achievement {
	species := int64(0)
	for _, f := range cat.AllFish() {
		if f.Category != domain.FishCategoryGarbage {
			species++
		}
	}

	return []domain.Achievement{
		{ID: 1, Key: "first_catch", Name: "First Catch", Description: "Land your first fish.",
			Stat: domain.StatFishCount, Threshold: 1, Reward: domain.CoinsReward{Amount: 50}},
		{ID: 2, Key: "novice_angler", Name: "Novice Angler", Description: "Land one hundred fish.",
			Stat: domain.StatFishCount, Threshold: 100, Reward: domain.TitleReward{TitleID: 1}},
		{ID: 3, Key: "thousand_casts", Name: "Thousand Casts", Description: "Land one thousand fish.",
			Stat: domain.StatFishCount, Threshold: 1000, Reward: domain.PremiumReward{Amount: 50}},
		{ID: 4, Key: "collector", Name: "Collector", Description: "Catch every species at least once.",
			Stat: domain.StatUniqueSpecies, Threshold: species, Reward: domain.TitleReward{TitleID: 2}},
		{ID: 5, Key: "beachcomber", Name: "Beachcomber", Description: "Fish fifty pieces of garbage out of the water.",
			Stat: domain.StatGarbageCount, Threshold: 50, Reward: domain.TitleReward{TitleID: 3}},
		{ID: 6, Key: "high_roller", Name: "High Roller", Description: "Hit a x10 wipe bomb.",
			Stat: domain.StatMaxWagerMultiplier, Threshold: 10 * MultiplierScale, Reward: domain.TitleReward{TitleID: 4}},
		{ID: 7, Key: "legend_hunter", Name: "Legend Hunter", Description: "Own a legendary rod.",
			Stat: domain.StatLegendaryRods, Threshold: 1, Reward: domain.TitleReward{TitleID: 5}},
		{ID: 8, Key: "crown_jewel", Name: "Crown Jewel", Description: "Own a legendary accessory.",
			Stat: domain.StatLegendaryAccessory, Threshold: 1, Reward: domain.PremiumReward{Amount: 100}},
		{ID: 9, Key: "heavyweight", Name: "Heavyweight", Description: "Land a fish of 100 kg or more.",
			Stat: domain.StatHeavyCatch, Threshold: heavyCatchGrams, Reward: domain.BaitReward{BaitID: 5, Quantity: 3}},
		{ID: 10, Key: "tycoon", Name: "Tycoon", Description: "Earn 100,000 gold from fishing.",
			Stat: domain.StatCoinsEarned, Threshold: 100_000, Reward: domain.TitleReward{TitleID: 6}},
	}
}

// DescribeReward renders a reward for players
func DescribeReward(cat *catalog.Catalog, r domain.Reward) string {
	switch v := r.(type) {
	case domain.CoinsReward:
		return fmt.Sprintf("%d gold", v.Amount)
	case domain.PremiumReward:
		return fmt.Sprintf("%d premium", v.Amount)
	case domain.TitleReward:
		if t, err := cat.Title(v.TitleID); err == nil {
			return fmt.Sprintf("title %q", t.Name)
		}
		return fmt.Sprintf("title #%d", v.TitleID)
	case domain.BaitReward:
		if b, err := cat.Bait(v.BaitID); err == nil {
			return fmt.Sprintf("%dx %s", v.Quantity, b.Name)
		}
		return fmt.Sprintf("%dx bait #%d", v.Quantity, v.BaitID)
	}
	return ""
}
