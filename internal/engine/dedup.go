package engine

// Section describes one named slot on a page. Target is the most items the
// section may hold; a section can legitimately end up smaller when every
// pool is exhausted, never larger.
type Section struct {
	Name   string
	Target int
}

// SectionResult carries the items assigned to a section together with the
// target, so callers can distinguish a full section from an underfilled
// one. Underfill is a rendering signal (empty state), not an error.
type SectionResult[T Item] struct {
	Name   string
	Target int
	Items  []T
}

// Underfilled reports whether the section fell short of its target after
// every fallback tier was drained.
func (r SectionResult[T]) Underfilled() bool {
	return len(r.Items) < r.Target
}

// Empty reports whether the section received no items at all, which tells
// presentation to render the section's empty-state content.
func (r SectionResult[T]) Empty() bool {
	return len(r.Items) == 0
}

// Fill takes up to sec.Target items from pool in rank order, skipping any
// identifier already claimed in used, and claims each accepted identifier.
// Sections filled earlier therefore always win contested items; later
// fills never steal an item back.
func Fill[T Item](sec Section, pool []T, used UsedIDSet) []T {
	if sec.Target <= 0 {
		return nil
	}
	out := make([]T, 0, sec.Target)
	for _, item := range pool {
		if len(out) == sec.Target {
			break
		}
		id := item.ItemID()
		if used.Has(id) {
			continue
		}
		used.Add(id)
		out = append(out, item)
	}
	return out
}

// Allocate fills a section from its primary pool and then, while it is
// still under target, from each broader fallback tier in order. Every tier
// runs under the same dedup discipline: an identifier claimed by any
// earlier fill, on any tier, is never reintroduced.
func Allocate[T Item](sec Section, used UsedIDSet, tiers ...[]T) SectionResult[T] {
	result := SectionResult[T]{Name: sec.Name, Target: sec.Target, Items: make([]T, 0, sec.Target)}
	for _, tier := range tiers {
		if len(result.Items) >= sec.Target {
			break
		}
		remaining := Section{Name: sec.Name, Target: sec.Target - len(result.Items)}
		result.Items = append(result.Items, Fill(remaining, tier, used)...)
	}
	return result
}
