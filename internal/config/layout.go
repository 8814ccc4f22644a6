package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout carries the per-page section constants: target sizes, fallback
// thresholds, the feed interleave pattern, and the newsletter sidebar
// threshold. Defaults match the production pages; a YAML file pointed to by
// LAYOUT_PATH may override individual values.
type Layout struct {
	Home       HomeLayout       `yaml:"home"`
	Area       AreaLayout       `yaml:"area"`
	Feed       FeedLayout       `yaml:"feed"`
	Related    RelatedLayout    `yaml:"related"`
	Directory  DirectoryLayout  `yaml:"directory"`
	Newsletter NewsletterLayout `yaml:"newsletter"`
}

// HomeLayout sizes the homepage sections.
type HomeLayout struct {
	HeroTarget   int `yaml:"heroTarget"`
	PicksTarget  int `yaml:"picksTarget"`
	EventsTarget int `yaml:"eventsTarget"`
	FeedArticles int `yaml:"feedArticles"`
}

// AreaLayout sizes the area and neighborhood landing pages.
type AreaLayout struct {
	SpotlightTarget int `yaml:"spotlightTarget"`
	StoriesTarget   int `yaml:"storiesTarget"`
	VideosTarget    int `yaml:"videosTarget"`
	EventsTarget    int `yaml:"eventsTarget"`
}

// FeedLayout is the article/video interleave pattern: groupSize articles
// per video slot, at most maxVideos videos in the merged feed.
type FeedLayout struct {
	GroupSize int `yaml:"groupSize"`
	MaxVideos int `yaml:"maxVideos"`
}

// RelatedLayout sizes the "related events" rail on event detail pages.
type RelatedLayout struct {
	Target    int `yaml:"target"`
	PoolLimit int `yaml:"poolLimit"`
}

// DirectoryLayout sizes the business directory listing.
type DirectoryLayout struct {
	PageSize int `yaml:"pageSize"`
}

// NewsletterLayout sizes the newsletter archive. SidebarThreshold is the
// edition count at which the sidebar switches to its long-form heading.
type NewsletterLayout struct {
	PageSize         int `yaml:"pageSize"`
	SidebarThreshold int `yaml:"sidebarThreshold"`
}

// DefaultLayout returns the built-in section constants. These values are
// load-bearing for snapshot stability and must not drift silently.
func DefaultLayout() Layout {
	return Layout{
		Home: HomeLayout{
			HeroTarget:   1,
			PicksTarget:  3,
			EventsTarget: 4,
			FeedArticles: 12,
		},
		Area: AreaLayout{
			SpotlightTarget: 6,
			StoriesTarget:   6,
			VideosTarget:    3,
			EventsTarget:    4,
		},
		Feed: FeedLayout{
			GroupSize: 4,
			MaxVideos: 2,
		},
		Related: RelatedLayout{
			Target:    3,
			PoolLimit: 24,
		},
		Directory: DirectoryLayout{
			PageSize: 24,
		},
		Newsletter: NewsletterLayout{
			PageSize:         12,
			SidebarThreshold: 6,
		},
	}
}

// LoadLayout reads the layout file if present and overlays it on the
// defaults. A missing or unparseable file falls back to defaults.
func LoadLayout(path string) Layout {
	layout := DefaultLayout()
	if path == "" {
		return layout
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("layout: cannot read %s: %v (falling back to defaults)", path, err)
		return layout
	}
	if err := yaml.Unmarshal(raw, &layout); err != nil {
		log.Printf("layout: cannot parse %s: %v (falling back to defaults)", path, err)
		return DefaultLayout()
	}
	return layout
}

// Validate rejects layout values the selection engine cannot honor.
func (l Layout) Validate() error {
	if l.Feed.GroupSize < 1 {
		return fmt.Errorf("layout: feed.groupSize must be >= 1, got %d", l.Feed.GroupSize)
	}
	if l.Feed.MaxVideos < 0 {
		return fmt.Errorf("layout: feed.maxVideos must be >= 0, got %d", l.Feed.MaxVideos)
	}
	for name, target := range map[string]int{
		"home.heroTarget":      l.Home.HeroTarget,
		"home.picksTarget":     l.Home.PicksTarget,
		"home.eventsTarget":    l.Home.EventsTarget,
		"area.spotlightTarget": l.Area.SpotlightTarget,
		"related.target":       l.Related.Target,
		"directory.pageSize":   l.Directory.PageSize,
		"newsletter.pageSize":  l.Newsletter.PageSize,
	} {
		if target < 1 {
			return fmt.Errorf("layout: %s must be >= 1, got %d", name, target)
		}
	}
	return nil
}
