package fishing

import (
	"errors"
	"math"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/utils"
)

// Outcome is the pure result of one roll
type Outcome struct {
	Success      bool
	SuccessRate  float64
	Fish         *domain.FishTemplate
	WeightGrams  int
	Value        int64
	ElementBonus float64
	Exp          int64
}

// Resolver rolls fishing outcomes. Catch weights are 1/rarity², fixed at construction.
type Resolver struct {
	fish    []domain.FishTemplate
	weights []float64
}

// NewResolver precomputes catch weights for every fish template
func NewResolver(cat *catalog.Catalog) (*Resolver, error) {
	fish := cat.AllFish()
	if len(fish) == 0 {
		return nil, errors.New(ErrMsgNoFishTemplates)
	}
	weights := make([]float64, len(fish))
	for i, f := range fish {
		r := float64(f.Rarity)
		weights[i] = 1 / (r * r)
	}
	return &Resolver{fish: fish, weights: weights}, nil
}

// SuccessRate combines gear modifiers; a missing accessory or bait contributes 1
func SuccessRate(eq *domain.Equipment) float64 {
	rate := BaseSuccessRate
	if eq.RodTpl != nil {
		rate *= eq.RodTpl.QualityMod
	}
	if eq.AccTpl != nil {
		rate *= eq.AccTpl.QualityMod
	}
	if eq.Bait != nil {
		rate *= 1 + eq.Bait.SuccessRateBonus
	}
	return math.Min(rate, MaxSuccessRate)
}

// ElementBonus returns the value multiplier of a rod element against a fish element
func ElementBonus(rod, fish domain.Element) float64 {
	if rod == domain.ElementNone || fish == domain.ElementNone {
		return 1
	}
	if rod == domain.ElementAll {
		return AllElementBonus
	}
	if b, ok := elementBonus[elementPair{rod, fish}]; ok {
		return b
	}
	return 1
}

// FishValue scales base value by weight relative to the template average and
// applies the gear multipliers. Never less than 1.
func FishValue(f *domain.FishTemplate, weightGrams int, bonus float64, eq *domain.Equipment) int64 {
	avg := f.AverageWeightKg()
	base := float64(f.BaseValue)
	if avg > 0 {
		base = math.Round(float64(f.BaseValue) * (float64(weightGrams) / 1000) / avg)
	}

	v := base * bonus
	if eq != nil && eq.Bait != nil {
		v *= 1 + eq.Bait.ValueBonus
	}
	if eq != nil && eq.AccTpl != nil && eq.AccTpl.CoinMod > 0 {
		v *= eq.AccTpl.CoinMod
	}

	value := int64(math.Round(v))
	if value < 1 {
		return 1
	}
	return value
}

// CatchExp is the experience for a successful catch at the given level
func CatchExp(rarity int, value int64, weightGrams int, level int) int64 {
	weightKg := float64(weightGrams) / 1000
	raw := float64(rarity*10) + float64(value/10) + math.Floor(weightKg*10)
	exp := int64(math.Floor(raw * (1 + float64(level-1)*0.01)))
	if exp < 1 {
		return 1
	}
	return exp
}

// Roll resolves one attempt. rnd must return values in [0,1).
func (r *Resolver) Roll(eq *domain.Equipment, level int, rnd func() float64) Outcome {
	out := Outcome{SuccessRate: SuccessRate(eq)}
	if rnd() > out.SuccessRate {
		return out
	}

	idx := utils.WeightedIndex(r.weights, rnd())
	fish := r.fish[idx]

	span := fish.MaxWeight - fish.MinWeight + 1
	out.WeightGrams = fish.MinWeight + utils.UniformIndex(span, rnd())

	rodElement := domain.ElementNone
	if eq.RodTpl != nil {
		rodElement = eq.RodTpl.Element
	}
	out.Success = true
	out.Fish = &fish
	out.ElementBonus = ElementBonus(rodElement, fish.Element)
	out.Value = FishValue(&fish, out.WeightGrams, out.ElementBonus, eq)
	out.Exp = CatchExp(fish.Rarity, out.Value, out.WeightGrams, level)
	return out
}
