package service

import (
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/config"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// feedFromPost flattens a post to its card fields.
func feedFromPost(p models.Post) engine.FeedItem {
	published := p.PublishedAt
	return engine.FeedItem{
		Kind:     engine.FeedArticle,
		ID:       p.ID,
		Title:    p.Title,
		Slug:     p.Slug,
		ImageURL: p.HeroImageURL,
		Category: p.CategoryName,
		Date:     &published,
	}
}

// feedFromVideo flattens a video to its card fields.
func feedFromVideo(v models.Video) engine.FeedItem {
	published := v.PublishedAt
	return engine.FeedItem{
		Kind:     engine.FeedVideo,
		ID:       v.ID,
		Title:    v.Title,
		Slug:     v.Slug,
		ImageURL: v.ThumbnailURL,
		EmbedURL: v.EmbedURL,
		Date:     &published,
	}
}

// buildFeed deduplicates both streams against the render's used set, then
// interleaves them under the configured pattern. Posts already claimed by
// an earlier section never reappear in the feed.
func buildFeed(posts []models.Post, videos []models.Video, used engine.UsedIDSet, layout config.FeedLayout) []engine.FeedItem {
	freshPosts := engine.Fill(engine.Section{Name: "feed_articles", Target: len(posts)}, posts, used)
	freshVideos := engine.Fill(engine.Section{Name: "feed_videos", Target: len(videos)}, videos, used)

	articles := make([]engine.FeedItem, 0, len(freshPosts))
	for _, p := range freshPosts {
		articles = append(articles, feedFromPost(p))
	}
	clips := make([]engine.FeedItem, 0, len(freshVideos))
	for _, v := range freshVideos {
		clips = append(clips, feedFromVideo(v))
	}

	return engine.Interleave(articles, clips, layout.GroupSize, layout.MaxVideos)
}
