// Package catalog holds the read-only reference data: item templates, gacha
// pools, technologies and titles. A Catalog is immutable once built and is
// safe for concurrent use without locking.
package catalog

import (
	"fmt"
	"sort"

	"github.com/osse101/FishBot_Go/internal/domain"
)

// Document is the on-disk catalog layout
type Document struct {
	Version      string                     `json:"version"`
	Fish         []domain.FishTemplate      `json:"fish"`
	Rods         []domain.RodTemplate       `json:"rods"`
	Accessories  []domain.AccessoryTemplate `json:"accessories"`
	Baits        []domain.BaitTemplate      `json:"baits"`
	GachaPools   []domain.GachaPool         `json:"gacha_pools"`
	Technologies []domain.Technology        `json:"technologies"`
	Titles       []domain.Title             `json:"titles"`
}

// Catalog indexes a Document by id
type Catalog struct {
	version      string
	fish         []domain.FishTemplate
	fishByID     map[int]*domain.FishTemplate
	rods         []domain.RodTemplate
	rodsByID     map[int]*domain.RodTemplate
	accessories  []domain.AccessoryTemplate
	accByID      map[int]*domain.AccessoryTemplate
	baits        []domain.BaitTemplate
	baitsByID    map[int]*domain.BaitTemplate
	pools        []domain.GachaPool
	poolsByID    map[int]*domain.GachaPool
	technologies []domain.Technology
	techByID     map[int]*domain.Technology
	techByKey    map[string]*domain.Technology
	titles       []domain.Title
	titlesByID   map[int]*domain.Title
}

// New indexes doc and checks cross references. Slices are copied.
func New(doc Document) (*Catalog, error) {
	c := &Catalog{
		version:      doc.Version,
		fish:         append([]domain.FishTemplate(nil), doc.Fish...),
		rods:         append([]domain.RodTemplate(nil), doc.Rods...),
		accessories:  append([]domain.AccessoryTemplate(nil), doc.Accessories...),
		baits:        append([]domain.BaitTemplate(nil), doc.Baits...),
		pools:        append([]domain.GachaPool(nil), doc.GachaPools...),
		technologies: append([]domain.Technology(nil), doc.Technologies...),
		titles:       append([]domain.Title(nil), doc.Titles...),
		fishByID:     make(map[int]*domain.FishTemplate, len(doc.Fish)),
		rodsByID:     make(map[int]*domain.RodTemplate, len(doc.Rods)),
		accByID:      make(map[int]*domain.AccessoryTemplate, len(doc.Accessories)),
		baitsByID:    make(map[int]*domain.BaitTemplate, len(doc.Baits)),
		poolsByID:    make(map[int]*domain.GachaPool, len(doc.GachaPools)),
		techByID:     make(map[int]*domain.Technology, len(doc.Technologies)),
		techByKey:    make(map[string]*domain.Technology, len(doc.Technologies)),
		titlesByID:   make(map[int]*domain.Title, len(doc.Titles)),
	}

	sort.Slice(c.technologies, func(i, j int) bool { return c.technologies[i].ID < c.technologies[j].ID })

	for i := range c.fish {
		f := &c.fish[i]
		if _, dup := c.fishByID[f.ID]; dup {
			return nil, fmt.Errorf("%w: fish %d", ErrDuplicateID, f.ID)
		}
		if f.MinWeight <= 0 || f.MinWeight > f.MaxWeight {
			return nil, fmt.Errorf("%w: fish %d weight range [%d,%d]", ErrInvalidTemplate, f.ID, f.MinWeight, f.MaxWeight)
		}
		if err := checkRarity(f.Rarity); err != nil {
			return nil, fmt.Errorf("fish %d: %w", f.ID, err)
		}
		c.fishByID[f.ID] = f
	}
	for i := range c.rods {
		r := &c.rods[i]
		if _, dup := c.rodsByID[r.ID]; dup {
			return nil, fmt.Errorf("%w: rod %d", ErrDuplicateID, r.ID)
		}
		if err := checkRarity(r.Rarity); err != nil {
			return nil, fmt.Errorf("rod %d: %w", r.ID, err)
		}
		c.rodsByID[r.ID] = r
	}
	for i := range c.accessories {
		a := &c.accessories[i]
		if _, dup := c.accByID[a.ID]; dup {
			return nil, fmt.Errorf("%w: accessory %d", ErrDuplicateID, a.ID)
		}
		if err := checkRarity(a.Rarity); err != nil {
			return nil, fmt.Errorf("accessory %d: %w", a.ID, err)
		}
		c.accByID[a.ID] = a
	}
	for i := range c.baits {
		b := &c.baits[i]
		if _, dup := c.baitsByID[b.ID]; dup {
			return nil, fmt.Errorf("%w: bait %d", ErrDuplicateID, b.ID)
		}
		if err := checkRarity(b.Rarity); err != nil {
			return nil, fmt.Errorf("bait %d: %w", b.ID, err)
		}
		c.baitsByID[b.ID] = b
	}
	for i := range c.titles {
		t := &c.titles[i]
		if _, dup := c.titlesByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: title %d", ErrDuplicateID, t.ID)
		}
		c.titlesByID[t.ID] = t
	}
	for i := range c.pools {
		p := &c.pools[i]
		if _, dup := c.poolsByID[p.ID]; dup {
			return nil, fmt.Errorf("%w: gacha pool %d", ErrDuplicateID, p.ID)
		}
		for _, cand := range p.Candidates {
			if _, err := c.TemplateRarity(cand.ItemType, cand.TemplateID); err != nil {
				return nil, fmt.Errorf("gacha pool %d: %w", p.ID, err)
			}
		}
		c.poolsByID[p.ID] = p
	}
	for i := range c.technologies {
		t := &c.technologies[i]
		if _, dup := c.techByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: technology %d", ErrDuplicateID, t.ID)
		}
		if _, dup := c.techByKey[t.Key]; dup {
			return nil, fmt.Errorf("%w: technology key %s", ErrDuplicateID, t.Key)
		}
		c.techByID[t.ID] = t
		c.techByKey[t.Key] = t
	}
	for _, t := range c.technologies {
		for _, pre := range t.Prerequisites {
			if _, ok := c.techByID[pre]; !ok {
				return nil, fmt.Errorf("%w: technology %s requires unknown %d", ErrInvalidTemplate, t.Key, pre)
			}
		}
	}
	if err := c.checkAcyclic(); err != nil {
		return nil, err
	}

	return c, nil
}

func checkRarity(r int) error {
	if r < domain.MinRarity || r > domain.MaxRarity {
		return fmt.Errorf("%w: rarity %d out of range", ErrInvalidTemplate, r)
	}
	return nil
}

// checkAcyclic rejects prerequisite cycles, which would make a technology unreachable
func (c *Catalog) checkAcyclic() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[int]int, len(c.technologies))

	var visit func(id int) error
	visit = func(id int) error {
		switch state[id] {
		case visiting:
			return fmt.Errorf("%w: prerequisite cycle at technology %d", ErrInvalidTemplate, id)
		case done:
			return nil
		}
		state[id] = visiting
		for _, pre := range c.techByID[id].Prerequisites {
			if err := visit(pre); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}

	for _, t := range c.technologies {
		if err := visit(t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Version returns the document version string
func (c *Catalog) Version() string { return c.version }

// Fish returns a fish template by id
func (c *Catalog) Fish(id int) (*domain.FishTemplate, error) {
	if f, ok := c.fishByID[id]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: fish %d", domain.ErrTemplateNotFound, id)
}

// AllFish returns every fish template. Callers must not modify the result.
func (c *Catalog) AllFish() []domain.FishTemplate { return c.fish }

// Rod returns a rod template by id
func (c *Catalog) Rod(id int) (*domain.RodTemplate, error) {
	if r, ok := c.rodsByID[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: rod %d", domain.ErrTemplateNotFound, id)
}

// Rods returns every rod template
func (c *Catalog) Rods() []domain.RodTemplate { return c.rods }

// Accessory returns an accessory template by id
func (c *Catalog) Accessory(id int) (*domain.AccessoryTemplate, error) {
	if a, ok := c.accByID[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: accessory %d", domain.ErrTemplateNotFound, id)
}

// Accessories returns every accessory template
func (c *Catalog) Accessories() []domain.AccessoryTemplate { return c.accessories }

// Bait returns a bait template by id
func (c *Catalog) Bait(id int) (*domain.BaitTemplate, error) {
	if b, ok := c.baitsByID[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: bait %d", domain.ErrTemplateNotFound, id)
}

// Baits returns every bait template
func (c *Catalog) Baits() []domain.BaitTemplate { return c.baits }

// Pool returns a gacha pool by id
func (c *Catalog) Pool(id int) (*domain.GachaPool, error) {
	if p, ok := c.poolsByID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotFound, id)
}

// Pools returns every gacha pool
func (c *Catalog) Pools() []domain.GachaPool { return c.pools }

// Technology returns a technology by id
func (c *Catalog) Technology(id int) (*domain.Technology, error) {
	if t, ok := c.techByID[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrTechnologyNotFound, id)
}

// TechnologyByKey returns a technology by its stable key
func (c *Catalog) TechnologyByKey(key string) (*domain.Technology, error) {
	if t, ok := c.techByKey[key]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTechnologyNotFound, key)
}

// Technologies returns all technologies ordered by id
func (c *Catalog) Technologies() []domain.Technology { return c.technologies }

// Title returns a title by id
func (c *Catalog) Title(id int) (*domain.Title, error) {
	if t, ok := c.titlesByID[id]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrTitleNotFound, id)
}

// Titles returns every title
func (c *Catalog) Titles() []domain.Title { return c.titles }

// TemplateRarity resolves the rarity of any drawable or tradable template
func (c *Catalog) TemplateRarity(itemType domain.ItemType, id int) (int, error) {
	_, rarity, err := c.TemplateInfo(itemType, id)
	return rarity, err
}

// TemplateInfo resolves display name and rarity for any template kind
func (c *Catalog) TemplateInfo(itemType domain.ItemType, id int) (string, int, error) {
	switch itemType {
	case domain.ItemTypeFish:
		f, err := c.Fish(id)
		if err != nil {
			return "", 0, err
		}
		return f.Name, f.Rarity, nil
	case domain.ItemTypeRod:
		r, err := c.Rod(id)
		if err != nil {
			return "", 0, err
		}
		return r.Name, r.Rarity, nil
	case domain.ItemTypeAccessory:
		a, err := c.Accessory(id)
		if err != nil {
			return "", 0, err
		}
		return a.Name, a.Rarity, nil
	case domain.ItemTypeBait:
		b, err := c.Bait(id)
		if err != nil {
			return "", 0, err
		}
		return b.Name, b.Rarity, nil
	}
	return "", 0, fmt.Errorf("%w: item type %q", domain.ErrInvalidInput, itemType)
}
