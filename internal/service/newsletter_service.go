package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/repository"
)

// Sidebar headings for the newsletter archive. The long form appears once
// the archive passes the configured edition threshold.
const (
	sidebarHeadingShort = "Catch Up"
	sidebarHeadingLong  = "From the Archive"
)

// newsletterService is the concrete implementation of NewsletterService
type newsletterService struct {
	repos  *repository.Repositories
	layout config.NewsletterLayout
	log    zerolog.Logger
}

// newNewsletterService creates a new NewsletterService
func newNewsletterService(repos *repository.Repositories, layout config.Layout, log zerolog.Logger) *newsletterService {
	return &newsletterService{
		repos:  repos,
		layout: layout.Newsletter,
		log:    log.With().Str("service", "newsletter").Logger(),
	}
}

// Archive serves the newsletter archive listing, newest edition first.
func (s *newsletterService) Archive(ctx context.Context, limit, offset int) (*models.NewsletterArchive, error) {
	if limit <= 0 {
		limit = s.layout.PageSize
	}

	editions, err := s.repos.Newsletter.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list newsletters: %w", err)
	}

	total, err := s.repos.Newsletter.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Newsletter count failed, defaulting to page size")
		total = len(editions)
	}

	heading := sidebarHeadingShort
	if total >= s.layout.SidebarThreshold+1 {
		heading = sidebarHeadingLong
	}

	return &models.NewsletterArchive{
		Editions:       editions,
		Total:          total,
		Limit:          limit,
		Offset:         offset,
		SidebarHeading: heading,
	}, nil
}
