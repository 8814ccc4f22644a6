package engine

import (
	"net/url"
	"strings"
)

// Query-string keys recognized by ParseFilterSpec. Absence of a key means
// the filter is unset; presence with an empty value is normalized to unset.
const (
	keyQuery        = "q"
	keyArea         = "area"
	keyNeighborhood = "neighborhood"
	keyCategory     = "category"
	keyTier         = "tier"
	keyTag          = "tag"
	keyAmenity      = "amenity"
	keyIdentity     = "identity"
	keyType         = "type"
	keyUpcoming     = "upcoming"
	keyFeatured     = "featured"
)

// FilterSpec is the immutable record of the active content filters for one
// fetch. It is constructed only through ParseFilterSpec or the With*
// helpers; paging (limit/offset) is a fetch-envelope concern and the
// "load more" cursor never serializes (it is client-local state that resets
// whenever the FilterSpec changes).
type FilterSpec struct {
	Query        string
	Area         string
	Neighborhood string
	Category     string
	Tier         string
	Tag          string
	Amenity      string
	Identity     string
	Type         string
	Upcoming     bool
	Featured     bool
}

// ParseFilterSpec maps a URL query onto a FilterSpec. Unknown keys are
// ignored; absent or empty keys leave the filter unset. Parsing never
// fails: an unresolvable value is a validation concern, not a parse error.
func ParseFilterSpec(values url.Values) FilterSpec {
	return FilterSpec{
		Query:        strings.TrimSpace(values.Get(keyQuery)),
		Area:         strings.TrimSpace(values.Get(keyArea)),
		Neighborhood: strings.TrimSpace(values.Get(keyNeighborhood)),
		Category:     strings.TrimSpace(values.Get(keyCategory)),
		Tier:         strings.TrimSpace(values.Get(keyTier)),
		Tag:          strings.TrimSpace(values.Get(keyTag)),
		Amenity:      strings.TrimSpace(values.Get(keyAmenity)),
		Identity:     strings.TrimSpace(values.Get(keyIdentity)),
		Type:         strings.TrimSpace(values.Get(keyType)),
		Upcoming:     parseFlag(values.Get(keyUpcoming)),
		Featured:     parseFlag(values.Get(keyFeatured)),
	}
}

func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

// Values serializes the spec back to a URL query. Unset filters are
// omitted, so ParseFilterSpec(f.Values()) == f.Normalize() for every spec.
func (f FilterSpec) Values() url.Values {
	values := url.Values{}
	set := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" {
			values.Set(key, v)
		}
	}
	set(keyQuery, f.Query)
	set(keyArea, f.Area)
	set(keyNeighborhood, f.Neighborhood)
	set(keyCategory, f.Category)
	set(keyTier, f.Tier)
	set(keyTag, f.Tag)
	set(keyAmenity, f.Amenity)
	set(keyIdentity, f.Identity)
	set(keyType, f.Type)
	if f.Upcoming {
		values.Set(keyUpcoming, "1")
	}
	if f.Featured {
		values.Set(keyFeatured, "1")
	}
	return values
}

// Encode returns the canonical query-string form of the spec.
func (f FilterSpec) Encode() string {
	return f.Values().Encode()
}

// Normalize trims whitespace from every component, collapsing
// whitespace-only values to unset. Normalization never changes meaning.
func (f FilterSpec) Normalize() FilterSpec {
	f.Query = strings.TrimSpace(f.Query)
	f.Area = strings.TrimSpace(f.Area)
	f.Neighborhood = strings.TrimSpace(f.Neighborhood)
	f.Category = strings.TrimSpace(f.Category)
	f.Tier = strings.TrimSpace(f.Tier)
	f.Tag = strings.TrimSpace(f.Tag)
	f.Amenity = strings.TrimSpace(f.Amenity)
	f.Identity = strings.TrimSpace(f.Identity)
	f.Type = strings.TrimSpace(f.Type)
	return f
}

// IsZero reports whether no filter is active.
func (f FilterSpec) IsZero() bool {
	return f == FilterSpec{}
}

// TaxonomyIndex is the slug lookup the cascade and validation rules run
// against. NeighborhoodArea maps each neighborhood slug to its parent area
// slug.
type TaxonomyIndex struct {
	Categories       map[string]struct{}
	Areas            map[string]struct{}
	NeighborhoodArea map[string]string
}

// NewTaxonomyIndex creates an empty index.
func NewTaxonomyIndex() *TaxonomyIndex {
	return &TaxonomyIndex{
		Categories:       make(map[string]struct{}),
		Areas:            make(map[string]struct{}),
		NeighborhoodArea: make(map[string]string),
	}
}

// WithArea returns the spec with the area filter changed. A previously
// selected neighborhood that does not belong to the new area is cleared;
// clearing the area (city-wide) keeps any neighborhood selection.
func (f FilterSpec) WithArea(area string, tax *TaxonomyIndex) FilterSpec {
	next := f
	next.Area = strings.TrimSpace(area)
	if next.Area == "" || next.Neighborhood == "" {
		return next
	}
	if tax == nil {
		next.Neighborhood = ""
		return next
	}
	if parent, ok := tax.NeighborhoodArea[next.Neighborhood]; !ok || parent != next.Area {
		next.Neighborhood = ""
	}
	return next
}

// WithNeighborhood returns the spec with the neighborhood filter changed,
// snapping the area filter to the neighborhood's parent area when known.
func (f FilterSpec) WithNeighborhood(neighborhood string, tax *TaxonomyIndex) FilterSpec {
	next := f
	next.Neighborhood = strings.TrimSpace(neighborhood)
	if next.Neighborhood == "" || tax == nil {
		return next
	}
	if parent, ok := tax.NeighborhoodArea[next.Neighborhood]; ok {
		next.Area = parent
	}
	return next
}
