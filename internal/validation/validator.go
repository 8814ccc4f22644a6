package validation

import (
	"regexp"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// contentTypes the `type` filter may name.
var contentTypes = map[string]bool{
	"article":  true,
	"event":    true,
	"business": true,
	"video":    true,
}

// FilterValidator sanitizes parsed FilterSpecs against the taxonomy. A
// component that does not resolve (unknown slug, malformed slug, tier or
// type outside the allow-list) is cleared rather than failing the page —
// an invalid filter is treated as unset.
//
// The taxonomy index is cached in memory and refreshed in the background;
// SetIndex and Sanitize are safe for concurrent use.
type FilterValidator struct {
	mu    sync.RWMutex
	index *engine.TaxonomyIndex
	log   zerolog.Logger
}

// NewFilterValidator creates a validator with an empty taxonomy cache.
// Until the first SetIndex call, taxonomy-backed components pass through
// unchecked (the store is the authority when the cache is cold).
func NewFilterValidator(log zerolog.Logger) *FilterValidator {
	return &FilterValidator{
		log: log.With().Str("component", "filter_validator").Logger(),
	}
}

// SetIndex swaps in a freshly loaded taxonomy index.
func (v *FilterValidator) SetIndex(index *engine.TaxonomyIndex) {
	v.mu.Lock()
	v.index = index
	v.mu.Unlock()
}

// Index returns the current taxonomy index, nil when the cache is cold.
func (v *FilterValidator) Index() *engine.TaxonomyIndex {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.index
}

// Sanitize returns the spec with every unresolvable component cleared and
// the area/neighborhood consistency rule applied. The cleared components
// are logged at debug level; sanitization itself never fails.
func (v *FilterValidator) Sanitize(f engine.FilterSpec) engine.FilterSpec {
	f = f.Normalize()

	if f.Tier != "" && !validTier(f.Tier) {
		v.dropped("tier", f.Tier)
		f.Tier = ""
	}
	if f.Type != "" && !contentTypes[f.Type] {
		v.dropped("type", f.Type)
		f.Type = ""
	}
	for _, field := range []struct {
		name  string
		value *string
	}{
		{"category", &f.Category},
		{"area", &f.Area},
		{"neighborhood", &f.Neighborhood},
		{"tag", &f.Tag},
		{"amenity", &f.Amenity},
		{"identity", &f.Identity},
	} {
		if *field.value != "" && !slugRegex.MatchString(*field.value) {
			v.dropped(field.name, *field.value)
			*field.value = ""
		}
	}

	index := v.Index()
	if index == nil {
		return f
	}

	if f.Category != "" {
		if _, ok := index.Categories[f.Category]; !ok {
			v.dropped("category", f.Category)
			f.Category = ""
		}
	}
	if f.Area != "" {
		if _, ok := index.Areas[f.Area]; !ok {
			v.dropped("area", f.Area)
			f.Area = ""
		}
	}
	if f.Neighborhood != "" {
		if _, ok := index.NeighborhoodArea[f.Neighborhood]; !ok {
			v.dropped("neighborhood", f.Neighborhood)
			f.Neighborhood = ""
		}
	}

	// Re-assert the cascade: a neighborhood outside the selected area is
	// cleared, exactly as a client-side area change would clear it.
	if f.Area != "" && f.Neighborhood != "" {
		if index.NeighborhoodArea[f.Neighborhood] != f.Area {
			v.dropped("neighborhood", f.Neighborhood)
			f.Neighborhood = ""
		}
	}

	return f
}

func (v *FilterValidator) dropped(field, value string) {
	v.log.Debug().Str("filter", field).Str("value", value).Msg("Dropped unresolvable filter component")
}

func validTier(tier string) bool {
	for _, t := range models.BusinessTiers {
		if tier == t {
			return true
		}
	}
	return false
}
