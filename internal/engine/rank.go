package engine

import (
	"sort"
	"time"
)

// DateOrder selects the direction of the date tie-break.
type DateOrder int

const (
	// DateDesc ranks newer items first (stories, videos).
	DateDesc DateOrder = iota
	// DateAsc ranks sooner items first (upcoming events).
	DateAsc
)

// Chain is a page-specific ranking: an ordered list of predicates, most
// significant first, each contributing 1 or 0, then a date tie-break in the
// given direction, then the item identifier. The identifier step makes the
// order total, so equal inputs always rank identically.
type Chain[T Item] struct {
	Predicates []func(T) bool
	Date       func(T) time.Time
	Order      DateOrder
}

// Rank returns a new slice holding pool in ranked order. The sort is
// stable, so items the whole chain cannot separate keep their fetch order.
// The input slice is never mutated.
func Rank[T Item](pool []T, chain Chain[T]) []T {
	ranked := make([]T, len(pool))
	copy(ranked, pool)
	if len(ranked) < 2 {
		return ranked
	}

	scores := make([]int, len(ranked))
	for i, item := range ranked {
		scores[i] = chain.score(item)
	}

	order := make([]int, len(ranked))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		if scores[i] != scores[j] {
			return scores[i] > scores[j]
		}
		if chain.Date != nil {
			di, dj := chain.Date(ranked[i]), chain.Date(ranked[j])
			if !di.Equal(dj) {
				if chain.Order == DateAsc {
					return di.Before(dj)
				}
				return di.After(dj)
			}
		}
		return ranked[i].ItemID() < ranked[j].ItemID()
	})

	out := make([]T, len(ranked))
	for pos, i := range order {
		out[pos] = ranked[i]
	}
	return out
}

// score packs the predicate outcomes into a single comparable value,
// most significant predicate in the highest bit.
func (c Chain[T]) score(item T) int {
	score := 0
	n := len(c.Predicates)
	for i, pred := range c.Predicates {
		if pred != nil && pred(item) {
			score |= 1 << (n - 1 - i)
		}
	}
	return score
}
