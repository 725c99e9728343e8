package user

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// Profile assembles a read-only snapshot from committed state
func (s *service) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	u, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	inv, err := s.store.GetInventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	techIDs, err := s.store.ListUserTechnologyIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &domain.Profile{User: *u, PondCount: len(inv.Fish), UnlockedTechKeys: []string{}}
	p.ExpIntoLevel, p.ExpForNextLevel = s.curve.Progress(u.Exp)

	if u.CurrentTitleID != nil {
		if t, err := s.catalog.Title(*u.CurrentTitleID); err == nil {
			p.Title = t
		}
	}
	for i := range inv.Rods {
		if inv.Rods[i].IsEquipped {
			p.Rod = &inv.Rods[i]
			if tpl, err := s.catalog.Rod(inv.Rods[i].TemplateID); err == nil {
				p.RodName = tpl.Name
			}
		}
	}
	for i := range inv.Accessories {
		if inv.Accessories[i].IsEquipped {
			p.Accessory = &inv.Accessories[i]
			if tpl, err := s.catalog.Accessory(inv.Accessories[i].TemplateID); err == nil {
				p.AccessoryName = tpl.Name
			}
		}
	}
	if u.CurrentBaitID != nil {
		if tpl, err := s.catalog.Bait(*u.CurrentBaitID); err == nil {
			p.BaitName = tpl.Name
		}
		for _, b := range inv.Baits {
			if b.BaitID == *u.CurrentBaitID {
				p.BaitCount = b.Quantity
			}
		}
	}
	for _, id := range techIDs {
		if t, err := s.catalog.Technology(id); err == nil {
			p.UnlockedTechKeys = append(p.UnlockedTechKeys, t.Key)
		}
	}
	if u.LastFishingTime != nil {
		if left := s.cfg.FishingCooldown - s.now().Sub(*u.LastFishingTime); left > 0 {
			p.CooldownLeft = left
		}
	}
	return p, nil
}
