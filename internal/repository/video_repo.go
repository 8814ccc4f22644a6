package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/database"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// videoRepo is the concrete implementation of VideoRepository
type videoRepo struct {
	db *database.DB
}

// NewVideoRepo creates a new video repository
func NewVideoRepo(db *database.DB) VideoRepository {
	return &videoRepo{db: db}
}

const videoColumns = `v.id, v.slug, v.title, v.embed_url, v.thumbnail_url, v.is_featured,
	v.neighborhood_id, n.slug, v.area_id, a.slug, v.published_at`

// List returns published videos matching the filter, newest first.
func (r *videoRepo) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Video, error) {
	q := psql.Select(videoColumns).
		From("videos v").
		LeftJoin("neighborhoods n ON n.id = v.neighborhood_id").
		LeftJoin("areas a ON a.id = v.area_id").
		Where(squirrel.Eq{"v.status": "published"}).
		Where("v.published_at <= NOW()")

	if f.Neighborhood != "" {
		q = q.Where(squirrel.Eq{"n.slug": f.Neighborhood})
	}
	if f.Area != "" {
		q = q.Where(squirrel.Eq{"a.slug": f.Area})
	}
	if f.Featured {
		q = q.Where(squirrel.Eq{"v.is_featured": true})
	}
	if f.Query != "" {
		q = q.Where(squirrel.ILike{"v.title": "%" + f.Query + "%"})
	}

	q = q.OrderBy("v.published_at DESC", "v.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build videos query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		var neighborhoodID, neighborhoodSlug sql.NullString
		var areaID, areaSlug sql.NullString

		err := rows.Scan(
			&video.ID, &video.Slug, &video.Title, &video.EmbedURL,
			&video.ThumbnailURL, &video.IsFeatured,
			&neighborhoodID, &neighborhoodSlug,
			&areaID, &areaSlug,
			&video.PublishedAt,
		)
		if err != nil {
			return nil, err
		}

		video.NeighborhoodID = neighborhoodID.String
		video.NeighborhoodSlug = neighborhoodSlug.String
		video.AreaID = areaID.String
		video.AreaSlug = areaSlug.String
		videos = append(videos, video)
	}
	return videos, rows.Err()
}
