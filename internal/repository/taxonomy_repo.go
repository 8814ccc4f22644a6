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

// taxonomyRepo is the concrete implementation of TaxonomyRepository
type taxonomyRepo struct {
	db *database.DB
}

// NewTaxonomyRepo creates a new taxonomy repository
func NewTaxonomyRepo(db *database.DB) TaxonomyRepository {
	return &taxonomyRepo{db: db}
}

// LoadIndex builds the slug lookup used for filter validation and the
// area/neighborhood cascade.
func (r *taxonomyRepo) LoadIndex(ctx context.Context) (*engine.TaxonomyIndex, error) {
	index := engine.NewTaxonomyIndex()

	categories, err := r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		index.Categories[c.Slug] = struct{}{}
	}

	areas, err := r.ListAreas(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range areas {
		index.Areas[a.Slug] = struct{}{}
	}

	neighborhoods, err := r.ListNeighborhoods(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, n := range neighborhoods {
		index.NeighborhoodArea[n.Slug] = n.AreaSlug
	}

	return index, nil
}

// ListCategories returns all categories ordered by name.
func (r *taxonomyRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, name FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListAreas returns all areas ordered by name.
func (r *taxonomyRepo) ListAreas(ctx context.Context) ([]models.Area, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, slug, name, description FROM areas ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query areas: %w", err)
	}
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.Slug, &a.Name, &a.Description); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// ListNeighborhoods returns neighborhoods, optionally scoped to one area.
func (r *taxonomyRepo) ListNeighborhoods(ctx context.Context, areaSlug string) ([]models.Neighborhood, error) {
	q := psql.Select("n.id", "n.slug", "n.name", "n.area_id", "a.slug", "n.description").
		From("neighborhoods n").
		Join("areas a ON a.id = n.area_id").
		OrderBy("n.name", "n.id")
	if areaSlug != "" {
		q = q.Where(squirrel.Eq{"a.slug": areaSlug})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build neighborhoods query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query neighborhoods: %w", err)
	}
	defer rows.Close()

	var neighborhoods []models.Neighborhood
	for rows.Next() {
		var n models.Neighborhood
		if err := rows.Scan(&n.ID, &n.Slug, &n.Name, &n.AreaID, &n.AreaSlug, &n.Description); err != nil {
			return nil, err
		}
		neighborhoods = append(neighborhoods, n)
	}
	return neighborhoods, rows.Err()
}

// GetAreaBySlug retrieves one area; nil when absent.
func (r *taxonomyRepo) GetAreaBySlug(ctx context.Context, slug string) (*models.Area, error) {
	var a models.Area
	err := r.db.QueryRowContext(ctx,
		`SELECT id, slug, name, description FROM areas WHERE slug = $1`, slug).
		Scan(&a.ID, &a.Slug, &a.Name, &a.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query area: %w", err)
	}
	return &a, nil
}

// GetNeighborhoodBySlug retrieves one neighborhood; nil when absent.
func (r *taxonomyRepo) GetNeighborhoodBySlug(ctx context.Context, slug string) (*models.Neighborhood, error) {
	var n models.Neighborhood
	err := r.db.QueryRowContext(ctx,
		`SELECT n.id, n.slug, n.name, n.area_id, a.slug, n.description
		 FROM neighborhoods n JOIN areas a ON a.id = n.area_id
		 WHERE n.slug = $1`, slug).
		Scan(&n.ID, &n.Slug, &n.Name, &n.AreaID, &n.AreaSlug, &n.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query neighborhood: %w", err)
	}
	return &n, nil
}
