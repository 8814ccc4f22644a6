package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func feedItems(kind FeedKind, prefix string, n int) []FeedItem {
	out := make([]FeedItem, n)
	for i := range out {
		out[i] = FeedItem{Kind: kind, ID: fmt.Sprintf("%s%d", prefix, i)}
	}
	return out
}

func feedIDs(items []FeedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestInterleaveVideoCapReached(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 10)
	videos := feedItems(FeedVideo, "v", 5)

	got := Interleave(articles, videos, 4, 2)

	assert.Equal(t, []string{
		"a0", "a1", "a2", "a3", "v0",
		"a4", "a5", "a6", "a7", "v1",
		"a8", "a9",
	}, feedIDs(got))
}

func TestInterleaveArticlesExhaustFirst(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 2)
	videos := feedItems(FeedVideo, "v", 5)

	got := Interleave(articles, videos, 4, 2)

	assert.Equal(t, []string{"a0", "a1", "v0", "v1"}, feedIDs(got))
}

func TestInterleaveNoVideos(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 5)

	got := Interleave(articles, nil, 4, 2)

	assert.Equal(t, []string{"a0", "a1", "a2", "a3", "a4"}, feedIDs(got))
}

func TestInterleaveNoArticles(t *testing.T) {
	videos := feedItems(FeedVideo, "v", 3)

	got := Interleave(nil, videos, 4, 2)

	assert.Equal(t, []string{"v0", "v1"}, feedIDs(got))
}

func TestInterleaveBothEmpty(t *testing.T) {
	got := Interleave(nil, nil, 4, 2)

	assert.Empty(t, got)
}

func TestInterleaveZeroVideoCap(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 6)
	videos := feedItems(FeedVideo, "v", 3)

	got := Interleave(articles, videos, 4, 0)

	assert.Equal(t, []string{"a0", "a1", "a2", "a3", "a4", "a5"}, feedIDs(got))
}

func TestInterleaveGroupSizeClampedToOne(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 3)
	videos := feedItems(FeedVideo, "v", 2)

	got := Interleave(articles, videos, 0, 2)

	assert.Equal(t, []string{"a0", "v0", "a1", "v1", "a2"}, feedIDs(got))
}

func TestInterleaveTerminatesOnLargeInputs(t *testing.T) {
	articles := feedItems(FeedArticle, "a", 500)
	videos := feedItems(FeedVideo, "v", 500)

	got := Interleave(articles, videos, 3, 100)

	assert.Len(t, got, 600)
}
