// Package engine implements the content selection pass that composes a
// page render: parsing filter state from the URL, ranking candidate pools,
// filling named sections without repeating an item, falling back to broader
// pools on underfill, and interleaving articles with videos into a feed.
//
// The engine is pure: it never touches the data store. Pools arrive already
// fetched; everything here is deterministic given the same inputs.
package engine

// Item is the minimal view of a selectable content unit. Identifiers are
// opaque and stable across the pools of one render.
type Item interface {
	ItemID() string
}

// UsedIDSet records the identifiers already claimed by earlier sections of
// a page render. One instance is created per render and discarded when the
// render completes; it is never shared across renders.
type UsedIDSet map[string]struct{}

// NewUsedIDSet creates an empty render-scoped set.
func NewUsedIDSet() UsedIDSet {
	return make(UsedIDSet)
}

// Has reports whether id has been claimed.
func (s UsedIDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add claims id for the current render.
func (s UsedIDSet) Add(id string) {
	s[id] = struct{}{}
}

// Len returns the number of claimed identifiers.
func (s UsedIDSet) Len() int {
	return len(s)
}
