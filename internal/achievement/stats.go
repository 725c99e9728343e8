package achievement

import (
	"context"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// snapshot computes statistics on first use only, so rules that are already
// complete never trigger their queries
type snapshot struct {
	ctx     context.Context
	tx      repository.Tx
	catalog *catalog.Catalog
	user    *domain.User

	counts map[int]int64
	values map[domain.AchievementStat]int64
}

func newSnapshot(ctx context.Context, tx repository.Tx, cat *catalog.Catalog, user *domain.User) *snapshot {
	return &snapshot{ctx: ctx, tx: tx, catalog: cat, user: user, values: make(map[domain.AchievementStat]int64)}
}

func (s *snapshot) get(stat domain.AchievementStat) (int64, error) {
	if v, ok := s.values[stat]; ok {
		return v, nil
	}
	v, err := s.compute(stat)
	if err != nil {
		return 0, err
	}
	s.values[stat] = v
	return v, nil
}

func (s *snapshot) compute(stat domain.AchievementStat) (int64, error) {
	switch stat {
	case domain.StatFishCount:
		return s.user.FishingCount, nil
	case domain.StatCoinsEarned:
		return s.user.TotalIncome, nil
	case domain.StatUniqueSpecies, domain.StatGarbageCount:
		counts, err := s.catchCounts()
		if err != nil {
			return 0, err
		}
		var species, garbage int64
		for fishID, n := range counts {
			f, err := s.catalog.Fish(fishID)
			if err != nil {
				continue
			}
			if f.Category == domain.FishCategoryGarbage {
				garbage += n
			} else {
				species++
			}
		}
		if stat == domain.StatGarbageCount {
			return garbage, nil
		}
		return species, nil
	case domain.StatMaxWagerMultiplier:
		m, err := s.tx.MaxWagerMultiplier(s.ctx, s.user.ID)
		if err != nil {
			return 0, err
		}
		return int64(m * MultiplierScale), nil
	case domain.StatHeavyCatch:
		w, err := s.tx.MaxCatchWeight(s.ctx, s.user.ID)
		return int64(w), err
	case domain.StatLegendaryRods:
		rods, err := s.tx.ListRods(s.ctx, s.user.ID)
		if err != nil {
			return 0, err
		}
		owned := make(map[int]struct{})
		for _, r := range rods {
			if tpl, err := s.catalog.Rod(r.TemplateID); err == nil && tpl.Rarity == domain.MaxRarity {
				owned[r.TemplateID] = struct{}{}
			}
		}
		return int64(len(owned)), nil
	case domain.StatLegendaryAccessory:
		accs, err := s.tx.ListAccessories(s.ctx, s.user.ID)
		if err != nil {
			return 0, err
		}
		owned := make(map[int]struct{})
		for _, a := range accs {
			if tpl, err := s.catalog.Accessory(a.TemplateID); err == nil && tpl.Rarity == domain.MaxRarity {
				owned[a.TemplateID] = struct{}{}
			}
		}
		return int64(len(owned)), nil
	}
	return 0, nil
}

func (s *snapshot) catchCounts() (map[int]int64, error) {
	if s.counts != nil {
		return s.counts, nil
	}
	counts, err := s.tx.CatchCountsByFish(s.ctx, s.user.ID)
	if err != nil {
		return nil, err
	}
	s.counts = counts
	return counts, nil
}
