package models

import (
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
)

// Page payloads are the hand-off to presentation: named sections holding
// the items the selection pass assigned. An empty section means "render
// the empty state", never an error.

// HomePage holds the homepage sections.
type HomePage struct {
	HeroKicker     string            `json:"hero_kicker,omitempty"`
	Hero           []Post            `json:"hero"`
	EditorsPicks   []Post            `json:"editors_picks"`
	UpcomingEvents []Event           `json:"upcoming_events"`
	Feed           []engine.FeedItem `json:"feed"`
}

// AreaPage holds the sections of an area or neighborhood landing page.
// Neighborhood is set only for neighborhood pages.
type AreaPage struct {
	Area           Area          `json:"area"`
	Neighborhood   *Neighborhood `json:"neighborhood,omitempty"`
	Spotlight      []Business    `json:"spotlight"`
	Stories        []Post        `json:"stories"`
	Videos         []Video       `json:"videos"`
	UpcomingEvents []Event       `json:"upcoming_events"`
}

// StoriesPage holds one page of the stories archive: the interleaved feed
// plus the total for pagination.
type StoriesPage struct {
	Feed   []engine.FeedItem `json:"feed"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// EventsPage holds one page of the events listing.
type EventsPage struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// DirectoryPage holds one page of the business directory.
type DirectoryPage struct {
	Businesses []Business `json:"businesses"`
	Total      int        `json:"total"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// NewsletterArchive holds the newsletter archive listing. SidebarHeading
// switches between the short and long form at a configured edition count.
type NewsletterArchive struct {
	Editions       []NewsletterEdition `json:"editions"`
	Total          int                 `json:"total"`
	Limit          int                 `json:"limit"`
	Offset         int                 `json:"offset"`
	SidebarHeading string              `json:"sidebar_heading"`
}
