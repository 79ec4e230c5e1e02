package commodity

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// UnknownHandler is told about an id the taxonomy could not place. It is
// called at most once per id.
type UnknownHandler func(id string)

// Taxonomy maps commodity ids to display names, categories and source
// economies. Lookups never fail: unmapped ids fall back to CategoryUnknown.
type Taxonomy struct {
	byID   map[string]Commodity
	byName map[string]string // normalized display name -> id
	names  []string          // normalized display names, sorted

	mu        sync.Mutex
	onUnknown UnknownHandler
	reported  map[string]bool
}

// NewTaxonomy builds a taxonomy from a commodity table.
func NewTaxonomy(entries []Commodity) *Taxonomy {
	t := &Taxonomy{
		byID:     make(map[string]Commodity, len(entries)),
		byName:   make(map[string]string, len(entries)),
		reported: make(map[string]bool),
	}
	for _, c := range entries {
		t.byID[c.ID] = c
		name := normalize(c.Name)
		t.byName[name] = c.ID
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
	return t
}

var (
	defaultTaxonomy     *Taxonomy
	defaultTaxonomyOnce sync.Once
)

// Default returns the taxonomy built from the shipped commodity table.
func Default() *Taxonomy {
	defaultTaxonomyOnce.Do(func() {
		defaultTaxonomy = NewTaxonomy(builtin)
	})
	return defaultTaxonomy
}

// OnUnknown installs the diagnostic hook for unplaceable ids.
func (t *Taxonomy) OnUnknown(fn UnknownHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUnknown = fn
}

// Classify returns the category of a commodity id.
func (t *Taxonomy) Classify(id string) Category {
	if c, ok := t.Resolve(id); ok {
		return c.Category
	}
	t.report(id)
	return CategoryUnknown
}

// DisplayName returns the human-readable name, or the raw id when unmapped.
func (t *Taxonomy) DisplayName(id string) string {
	if c, ok := t.Resolve(id); ok {
		return c.Name
	}
	return id
}

// Economies returns the source economies of a commodity, sorted. Unknown ids
// have none.
func (t *Taxonomy) Economies(id string) []Economy {
	c, ok := t.Resolve(id)
	if !ok {
		t.report(id)
		return nil
	}
	out := make([]Economy, len(c.Economies))
	copy(out, c.Economies)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Resolve finds the taxonomy entry for id: first by id, then by exact
// display name, then by the closest display name within a small edit
// distance.
func (t *Taxonomy) Resolve(id string) (Commodity, bool) {
	if c, ok := t.byID[id]; ok {
		return c, true
	}

	key := normalize(id)
	if key == "" {
		return Commodity{}, false
	}
	if c, ok := t.byID[key]; ok {
		return c, true
	}
	if found, ok := t.byName[key]; ok {
		return t.byID[found], true
	}

	if len(key) < 3 {
		return Commodity{}, false
	}
	best, bestDist := "", -1
	for _, name := range t.names {
		dist := levenshtein.ComputeDistance(key, name)
		if dist > distanceLimit(len(name)) {
			continue
		}
		// names is sorted, so strict < keeps the first of equally close names
		if bestDist < 0 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	if bestDist < 0 {
		return Commodity{}, false
	}
	return t.byID[t.byName[best]], true
}

// All returns every commodity ordered by id.
func (t *Taxonomy) All() []Commodity {
	out := make([]Commodity, 0, len(t.byID))
	for _, c := range t.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (t *Taxonomy) report(id string) {
	t.mu.Lock()
	if t.reported[id] {
		t.mu.Unlock()
		return
	}
	t.reported[id] = true
	fn := t.onUnknown
	t.mu.Unlock()

	if fn != nil {
		fn(id)
	}
}

// Classify uses the default taxonomy.
func Classify(id string) Category { return Default().Classify(id) }

// DisplayName uses the default taxonomy.
func DisplayName(id string) string { return Default().DisplayName(id) }

// Economies uses the default taxonomy.
func Economies(id string) []Economy { return Default().Economies(id) }

// normalize lowercases and strips everything but letters and digits. Journal
// style names ("$Steel_Name;") reduce to the bare id.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "_name;")
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
