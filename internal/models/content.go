package models

import (
	"time"
)

// Post represents a published editorial story. Category/neighborhood/area
// names are denormalized at fetch time; the selection engine only ever
// reads the flat scalar fields.
type Post struct {
	ID               string    `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Title            string    `json:"title" db:"title"`
	Excerpt          string    `json:"excerpt,omitempty" db:"excerpt"`
	HeroImageURL     string    `json:"hero_image_url,omitempty" db:"hero_image_url"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured"`
	CategoryID       string    `json:"category_id,omitempty" db:"category_id"`
	CategorySlug     string    `json:"category_slug,omitempty" db:"-"`
	CategoryName     string    `json:"category_name,omitempty" db:"-"`
	NeighborhoodID   string    `json:"neighborhood_id,omitempty" db:"neighborhood_id"`
	NeighborhoodSlug string    `json:"neighborhood_slug,omitempty" db:"-"`
	AreaID           string    `json:"area_id,omitempty" db:"area_id"`
	AreaSlug         string    `json:"area_slug,omitempty" db:"-"`
	PublishedAt      time.Time `json:"published_at" db:"published_at"`
}

// ItemID identifies the post across content pools.
func (p Post) ItemID() string { return p.ID }

// Event represents a dated happening, possibly scoped to a neighborhood.
type Event struct {
	ID               string     `json:"id" db:"id"`
	Slug             string     `json:"slug" db:"slug"`
	Title            string     `json:"title" db:"title"`
	VenueName        string     `json:"venue_name,omitempty" db:"venue_name"`
	ImageURL         string     `json:"image_url,omitempty" db:"image_url"`
	IsFeatured       bool       `json:"is_featured" db:"is_featured"`
	CategoryID       string     `json:"category_id,omitempty" db:"category_id"`
	CategorySlug     string     `json:"category_slug,omitempty" db:"-"`
	NeighborhoodID   string     `json:"neighborhood_id,omitempty" db:"neighborhood_id"`
	NeighborhoodSlug string     `json:"neighborhood_slug,omitempty" db:"-"`
	AreaID           string     `json:"area_id,omitempty" db:"area_id"`
	AreaSlug         string     `json:"area_slug,omitempty" db:"-"`
	StartAt          time.Time  `json:"start_at" db:"start_at"`
	EndAt            *time.Time `json:"end_at,omitempty" db:"end_at"`
}

// ItemID identifies the event across content pools.
func (e Event) ItemID() string { return e.ID }

// Business tiers, highest first. Tier drives directory ordering and
// spotlight eligibility.
var BusinessTiers = []string{"sponsor", "premium", "standard", "free"}

// Business represents a directory listing.
type Business struct {
	ID               string   `json:"id" db:"id"`
	Slug             string   `json:"slug" db:"slug"`
	Name             string   `json:"name" db:"name"`
	Tier             string   `json:"tier" db:"tier"`
	Tagline          string   `json:"tagline,omitempty" db:"tagline"`
	ImageURL         string   `json:"image_url,omitempty" db:"image_url"`
	WebsiteURL       string   `json:"website_url,omitempty" db:"website_url"`
	IsFeatured       bool     `json:"is_featured" db:"is_featured"`
	CategoryID       string   `json:"category_id,omitempty" db:"category_id"`
	CategorySlug     string   `json:"category_slug,omitempty" db:"-"`
	CategoryName     string   `json:"category_name,omitempty" db:"-"`
	NeighborhoodID   string   `json:"neighborhood_id,omitempty" db:"neighborhood_id"`
	NeighborhoodSlug string   `json:"neighborhood_slug,omitempty" db:"-"`
	AreaID           string   `json:"area_id,omitempty" db:"area_id"`
	AreaSlug         string   `json:"area_slug,omitempty" db:"-"`
	Amenities        []string `json:"amenities,omitempty" db:"amenities"`
	Identities       []string `json:"identities,omitempty" db:"identities"`
}

// ItemID identifies the business across content pools.
func (b Business) ItemID() string { return b.ID }

// TierRank returns the ordinal of the business tier, 0 being highest.
// Unknown tiers sort last.
func (b Business) TierRank() int {
	for i, t := range BusinessTiers {
		if b.Tier == t {
			return i
		}
	}
	return len(BusinessTiers)
}

// Video represents an embedded media item linked to an area.
type Video struct {
	ID               string    `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Title            string    `json:"title" db:"title"`
	EmbedURL         string    `json:"embed_url" db:"embed_url"`
	ThumbnailURL     string    `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
	IsFeatured       bool      `json:"is_featured" db:"is_featured"`
	NeighborhoodID   string    `json:"neighborhood_id,omitempty" db:"neighborhood_id"`
	NeighborhoodSlug string    `json:"neighborhood_slug,omitempty" db:"-"`
	AreaID           string    `json:"area_id,omitempty" db:"area_id"`
	AreaSlug         string    `json:"area_slug,omitempty" db:"-"`
	PublishedAt      time.Time `json:"published_at" db:"published_at"`
}

// ItemID identifies the video across content pools.
func (v Video) ItemID() string { return v.ID }

// NewsletterEdition represents one sent edition of the newsletter.
type NewsletterEdition struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Subject     string    `json:"subject" db:"subject"`
	PreviewText string    `json:"preview_text,omitempty" db:"preview_text"`
	SentAt      time.Time `json:"sent_at" db:"sent_at"`
}

// ItemID identifies the edition across content pools.
func (n NewsletterEdition) ItemID() string { return n.ID }
