package technology

import (
	"fmt"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
)

// check returns the first reason tech cannot be unlocked, in the order
// already unlocked, level, gold, prerequisites. skipGold ignores the price.
func check(cat *catalog.Catalog, tech *domain.Technology, user *domain.User, unlocked map[int]struct{}, skipGold bool) error {
	if _, ok := unlocked[tech.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, tech.DisplayName)
	}
	if user.Level < tech.RequiredLevel {
		return fmt.Errorf(ErrMsgLevelTooLowFmt, domain.ErrLevelTooLow, tech.DisplayName, tech.RequiredLevel, user.Level)
	}
	if !skipGold && user.Gold < tech.RequiredGold {
		return fmt.Errorf(ErrMsgGoldTooLowFmt, domain.ErrInsufficientFunds, tech.DisplayName, tech.RequiredGold, user.Gold)
	}
	if missing := missingPrerequisites(cat, tech, unlocked); len(missing) > 0 {
		return domain.ErrMissingPrerequisites{Missing: missing}
	}
	return nil
}

func missingPrerequisites(cat *catalog.Catalog, tech *domain.Technology, unlocked map[int]struct{}) []string {
	var missing []string
	for _, id := range tech.Prerequisites {
		if _, ok := unlocked[id]; ok {
			continue
		}
		name := fmt.Sprintf("#%d", id)
		if pre, err := cat.Technology(id); err == nil {
			name = pre.DisplayName
		}
		missing = append(missing, name)
	}
	return missing
}

// applyEffect mutates the user for the technology's effect. Permission
// technologies only record ownership.
func applyEffect(user *domain.User, tech *domain.Technology) bool {
	switch tech.EffectType {
	case domain.TechEffectAutoFishing:
		if user.AutoFishing {
			return false
		}
		user.AutoFishing = true
		return true
	case domain.TechEffectFishPondCapacity:
		if tech.EffectValue == 0 {
			return false
		}
		user.FishPondCapacity += tech.EffectValue
		return true
	}
	return false
}

// pending returns every locked technology that passes the skip-gold check
// against the current unlocked set
func pending(cat *catalog.Catalog, user *domain.User, unlocked map[int]struct{}, chargeGold bool) []domain.Technology {
	var out []domain.Technology
	for _, t := range cat.Technologies() {
		t := t
		if check(cat, &t, user, unlocked, !chargeGold) == nil {
			out = append(out, t)
		}
	}
	return out
}
