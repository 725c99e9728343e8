package naming

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/osse101/FishBot_Go/internal/catalog"
	"github.com/osse101/FishBot_Go/internal/domain"
)

// Match is a template found by name
type Match struct {
	ItemType   domain.ItemType `json:"item_type"`
	TemplateID int             `json:"template_id"`
	Name       string          `json:"name"`
	Distance   int             `json:"distance"`
}

// Resolver maps player-typed names onto catalog templates
type Resolver interface {
	// Resolve returns the single best match for name, optionally restricted to one item type.
	Resolve(name string, itemType domain.ItemType) (Match, bool)
	// Suggest returns up to limit near matches ordered by distance.
	Suggest(name string, itemType domain.ItemType, limit int) []Match
}

type entry struct {
	key   string
	match Match
}

type resolver struct {
	entries []entry
	exact   map[string][]Match
}

// NewResolver indexes every template name in the catalog
func NewResolver(c *catalog.Catalog) Resolver {
	r := &resolver{exact: make(map[string][]Match)}

	add := func(t domain.ItemType, id int, name string) {
		m := Match{ItemType: t, TemplateID: id, Name: name}
		key := normalize(name)
		r.entries = append(r.entries, entry{key: key, match: m})
		r.exact[key] = append(r.exact[key], m)
	}
	for _, f := range c.AllFish() {
		add(domain.ItemTypeFish, f.ID, f.Name)
	}
	for _, rod := range c.Rods() {
		add(domain.ItemTypeRod, rod.ID, rod.Name)
	}
	for _, a := range c.Accessories() {
		add(domain.ItemTypeAccessory, a.ID, a.Name)
	}
	for _, b := range c.Baits() {
		add(domain.ItemTypeBait, b.ID, b.Name)
	}
	return r
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// distanceLimit scales typo tolerance with name length
func distanceLimit(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	case n <= 12:
		return 2
	default:
		return 3
	}
}

func (r *resolver) Resolve(name string, itemType domain.ItemType) (Match, bool) {
	key := normalize(name)
	if key == "" {
		return Match{}, false
	}
	for _, m := range r.exact[key] {
		if itemType == "" || m.ItemType == itemType {
			return m, true
		}
	}

	suggestions := r.Suggest(name, itemType, 2)
	if len(suggestions) == 0 {
		return Match{}, false
	}
	// ambiguous typo: two equally close names
	if len(suggestions) == 2 && suggestions[0].Distance == suggestions[1].Distance {
		return Match{}, false
	}
	return suggestions[0], true
}

func (r *resolver) Suggest(name string, itemType domain.ItemType, limit int) []Match {
	key := normalize(name)
	if key == "" || limit <= 0 {
		return nil
	}

	var out []Match
	for _, e := range r.entries {
		if itemType != "" && e.match.ItemType != itemType {
			continue
		}
		var dist int
		switch {
		case e.key == key:
			dist = 0
		case len(key) >= 3 && strings.HasPrefix(e.key, key):
			dist = 1
		default:
			dist = levenshtein.ComputeDistance(key, e.key)
			if dist > distanceLimit(len(e.key)) {
				continue
			}
		}
		m := e.match
		m.Distance = dist
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
