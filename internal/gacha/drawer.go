package gacha

import (
	"fmt"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/utils"
)

type bucketKey struct {
	itemType domain.ItemType
	rarity   int
}

type poolIndex struct {
	weights []float64
	buckets map[bucketKey][]domain.GachaDraw
}

// Drawer resolves single draws against pre-indexed pools. It holds no mutable state.
type Drawer struct {
	pools map[int]*poolIndex
}

// NewDrawer indexes every catalog pool by (item type, rarity)
func NewDrawer(cat *catalog.Catalog) (*Drawer, error) {
	d := &Drawer{pools: make(map[int]*poolIndex)}
	for _, p := range cat.Pools() {
		idx := &poolIndex{
			weights: tierWeights(p),
			buckets: make(map[bucketKey][]domain.GachaDraw),
		}
		for _, c := range p.Candidates {
			name, rarity, err := cat.TemplateInfo(c.ItemType, c.TemplateID)
			if err != nil {
				return nil, fmt.Errorf(ErrMsgIndexFailed, p.ID, err)
			}
			k := bucketKey{c.ItemType, rarity}
			idx.buckets[k] = append(idx.buckets[k], domain.GachaDraw{
				ItemType:   c.ItemType,
				TemplateID: c.TemplateID,
				Name:       name,
				Rarity:     rarity,
			})
		}
		d.pools[p.ID] = idx
	}
	return d, nil
}

func tierWeights(p domain.GachaPool) []float64 {
	if len(p.TierWeights) == 0 {
		return DefaultTierWeights
	}
	w := make([]float64, domain.MaxRarity)
	for tier, weight := range p.TierWeights {
		if tier >= domain.MinRarity && tier <= domain.MaxRarity {
			w[tier-1] = weight
		}
	}
	return w
}

// Draw runs one sub-draw: tier by weight, type uniformly, then a uniform pick
// among the pool's candidates of that tier and type. ok is false when that
// bucket is empty.
func (d *Drawer) Draw(poolID int, rnd func() float64) (draw domain.GachaDraw, ok bool, err error) {
	idx, found := d.pools[poolID]
	if !found {
		return domain.GachaDraw{}, false, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, poolID)
	}

	tier := utils.WeightedIndex(idx.weights, rnd()) + 1
	if tier < domain.MinRarity {
		return domain.GachaDraw{}, false, nil
	}
	itemType := drawTypes[utils.UniformIndex(len(drawTypes), rnd())]

	bucket := idx.buckets[bucketKey{itemType, tier}]
	if len(bucket) == 0 {
		return domain.GachaDraw{}, false, nil
	}
	return bucket[utils.UniformIndex(len(bucket), rnd())], true, nil
}

// DrawN runs n independent sub-draws, dropping empty ones
func (d *Drawer) DrawN(poolID, n int, rnd func() float64) ([]domain.GachaDraw, error) {
	out := make([]domain.GachaDraw, 0, n)
	for i := 0; i < n; i++ {
		draw, ok, err := d.Draw(poolID, rnd)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, draw)
		}
	}
	return out, nil
}
