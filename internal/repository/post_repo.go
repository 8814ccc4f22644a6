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

// postRepo is the concrete implementation of PostRepository
type postRepo struct {
	db *database.DB
}

// NewPostRepo creates a new post repository
func NewPostRepo(db *database.DB) PostRepository {
	return &postRepo{db: db}
}

const postColumns = `p.id, p.slug, p.title, p.excerpt, p.hero_image_url, p.is_featured,
	p.category_id, c.slug, c.name, p.neighborhood_id, n.slug, p.area_id, a.slug, p.published_at`

func postSelect() squirrel.SelectBuilder {
	return psql.Select(postColumns).
		From("posts p").
		LeftJoin("categories c ON c.id = p.category_id").
		LeftJoin("neighborhoods n ON n.id = p.neighborhood_id").
		LeftJoin("areas a ON a.id = p.area_id").
		Where(squirrel.Eq{"p.status": "published"}).
		Where("p.published_at <= NOW()")
}

// applyPostFilters translates the FilterSpec into predicates. Unset
// components contribute nothing.
func applyPostFilters(q squirrel.SelectBuilder, f engine.FilterSpec) squirrel.SelectBuilder {
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"c.slug": f.Category})
	}
	if f.Neighborhood != "" {
		q = q.Where(squirrel.Eq{"n.slug": f.Neighborhood})
	}
	if f.Area != "" {
		q = q.Where(squirrel.Eq{"a.slug": f.Area})
	}
	if f.Tag != "" {
		q = q.Where("p.tags @> ARRAY[?]::text[]", f.Tag)
	}
	if f.Featured {
		q = q.Where(squirrel.Eq{"p.is_featured": true})
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.excerpt": pattern},
		})
	}
	return q
}

// List returns published posts matching the filter, newest first with the
// id as a deterministic tie-break.
func (r *postRepo) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Post, error) {
	q := applyPostFilters(postSelect(), f).
		OrderBy("p.published_at DESC", "p.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build posts query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// Count returns the number of published posts matching the filter.
func (r *postRepo) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	q := applyPostFilters(psql.Select("COUNT(*)").
		From("posts p").
		LeftJoin("categories c ON c.id = p.category_id").
		LeftJoin("neighborhoods n ON n.id = p.neighborhood_id").
		LeftJoin("areas a ON a.id = p.area_id").
		Where(squirrel.Eq{"p.status": "published"}).
		Where("p.published_at <= NOW()"), f)

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build posts count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// GetBySlug retrieves a single published post; nil when absent.
func (r *postRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query, args, err := postSelect().Where(squirrel.Eq{"p.slug": slug}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build post query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	post, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (models.Post, error) {
	var post models.Post
	var categoryID, categorySlug, categoryName sql.NullString
	var neighborhoodID, neighborhoodSlug sql.NullString
	var areaID, areaSlug sql.NullString

	err := row.Scan(
		&post.ID, &post.Slug, &post.Title, &post.Excerpt, &post.HeroImageURL, &post.IsFeatured,
		&categoryID, &categorySlug, &categoryName,
		&neighborhoodID, &neighborhoodSlug,
		&areaID, &areaSlug,
		&post.PublishedAt,
	)
	if err != nil {
		return models.Post{}, err
	}

	post.CategoryID = categoryID.String
	post.CategorySlug = categorySlug.String
	post.CategoryName = categoryName.String
	post.NeighborhoodID = neighborhoodID.String
	post.NeighborhoodSlug = neighborhoodSlug.String
	post.AreaID = areaID.String
	post.AreaSlug = areaSlug.String
	return post, nil
}
