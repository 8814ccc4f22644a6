package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dedupItem struct {
	id string
}

func (d dedupItem) ItemID() string { return d.id }

func pool(idList ...string) []dedupItem {
	out := make([]dedupItem, len(idList))
	for i, id := range idList {
		out[i] = dedupItem{id: id}
	}
	return out
}

func resultIDs(r SectionResult[dedupItem]) []string {
	out := make([]string, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.id
	}
	return out
}

func TestFillRespectsTarget(t *testing.T) {
	used := NewUsedIDSet()

	got := Fill(Section{Name: "picks", Target: 2}, pool("a", "b", "c", "d"), used)

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].id)
	assert.Equal(t, "b", got[1].id)
	assert.Equal(t, 2, used.Len())
}

func TestFillSkipsClaimedIDs(t *testing.T) {
	used := NewUsedIDSet()
	used.Add("a")
	used.Add("c")

	got := Fill(Section{Name: "picks", Target: 3}, pool("a", "b", "c", "d"), used)

	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].id)
	assert.Equal(t, "d", got[1].id)
}

func TestAllocateSectionsAreDisjoint(t *testing.T) {
	used := NewUsedIDSet()
	latest := pool("a", "b", "c", "d", "e", "f")

	hero := Allocate(Section{Name: "hero", Target: 1}, used, latest)
	picks := Allocate(Section{Name: "picks", Target: 3}, used, latest)

	assert.Equal(t, []string{"a"}, resultIDs(hero))
	assert.Equal(t, []string{"b", "c", "d"}, resultIDs(picks))
}

func TestAllocateFallbackTierFillsShortfall(t *testing.T) {
	used := NewUsedIDSet()
	primary := pool("n1")
	fallback := pool("w1", "w2", "w3")

	got := Allocate(Section{Name: "spotlight", Target: 3}, used, primary, fallback)

	assert.Equal(t, []string{"n1", "w1", "w2"}, resultIDs(got))
	assert.False(t, got.Underfilled())
}

func TestAllocateFallbackNeverReintroducesClaimedItem(t *testing.T) {
	// The featured pick also appears in the latest pool; the fallback must
	// top up with two distinct items, never repeat it.
	used := NewUsedIDSet()
	featured := pool("star")
	latest := pool("star", "l1", "l2", "l3", "l4")

	got := Allocate(Section{Name: "picks", Target: 3}, used, featured, latest)

	assert.Equal(t, []string{"star", "l1", "l2"}, resultIDs(got))
}

func TestAllocateStopsAtTargetAcrossTiers(t *testing.T) {
	used := NewUsedIDSet()

	got := Allocate(Section{Name: "stories", Target: 2}, used, pool("a", "b"), pool("c", "d"))

	assert.Equal(t, []string{"a", "b"}, resultIDs(got))
	assert.False(t, used.Has("c"))
}

func TestAllocateAllTiersExhaustedUnderfills(t *testing.T) {
	used := NewUsedIDSet()

	got := Allocate(Section{Name: "videos", Target: 6}, used, pool("v1"), pool("v1", "v2"))

	assert.Equal(t, []string{"v1", "v2"}, resultIDs(got))
	assert.True(t, got.Underfilled())
	assert.False(t, got.Empty())
}

func TestAllocateEmptyPoolsYieldEmptySection(t *testing.T) {
	used := NewUsedIDSet()

	got := Allocate[dedupItem](Section{Name: "events", Target: 4}, used, nil, nil)

	require.NotNil(t, got.Items)
	assert.True(t, got.Empty())
	assert.True(t, got.Underfilled())
}
