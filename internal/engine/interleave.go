package engine

import (
	"time"
)

// FeedKind tags the two halves of the merged feed.
type FeedKind string

const (
	FeedArticle FeedKind = "article"
	FeedVideo   FeedKind = "video"
)

// FeedItem is the card-level view of a feed entry: just enough to render.
type FeedItem struct {
	Kind     FeedKind   `json:"kind"`
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	ImageURL string     `json:"image_url,omitempty"`
	EmbedURL string     `json:"embed_url,omitempty"`
	Category string     `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

// ItemID identifies the feed entry.
func (f FeedItem) ItemID() string { return f.ID }

// interleave states. The loop below is the explicit form of the merge:
// read-only cursors over immutable inputs, a fresh output slice, and a
// stall guard as a termination invariant rather than an incidental break.
type interleaveState int

const (
	drainingA interleaveState = iota
	insertingB
	drainingRemainder
	done
)

// Interleave merges articles and videos into one ordered feed: groupSize
// articles, then one video while fewer than maxVideos have been placed,
// repeating. When the video cap is reached or videos run out, the rest of
// the articles drain without alternation; videos beyond the cap are
// dropped. The inputs must already be deduplicated against the render's
// UsedIDSet.
func Interleave(articles, videos []FeedItem, groupSize, maxVideos int) []FeedItem {
	if groupSize < 1 {
		groupSize = 1
	}
	if maxVideos < 0 {
		maxVideos = 0
	}
	if maxVideos > len(videos) {
		maxVideos = len(videos)
	}

	out := make([]FeedItem, 0, len(articles)+maxVideos)
	ai, vi := 0, 0
	state := drainingA

	for state != done {
		prevA, prevV, prevState := ai, vi, state

		switch state {
		case drainingA:
			for n := 0; n < groupSize && ai < len(articles); n++ {
				out = append(out, articles[ai])
				ai++
			}
			switch {
			case vi < maxVideos:
				state = insertingB
			case ai < len(articles):
				state = drainingRemainder
			default:
				state = done
			}

		case insertingB:
			out = append(out, videos[vi])
			vi++
			switch {
			case ai < len(articles):
				state = drainingA
			case vi < maxVideos:
				state = insertingB
			default:
				state = done
			}

		case drainingRemainder:
			for ai < len(articles) {
				out = append(out, articles[ai])
				ai++
			}
			state = done
		}

		// Termination invariant: a pass that advances neither cursor and
		// changes no state would spin forever; stop instead.
		if state != done && ai == prevA && vi == prevV && state == prevState {
			state = done
		}
	}

	return out
}
