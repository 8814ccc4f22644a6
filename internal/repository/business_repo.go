package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mellanda-pixel/atl-vibes-and-views/internal/database"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/engine"
	"github.com/mellanda-pixel/atl-vibes-and-views/internal/models"
)

// businessRepo is the concrete implementation of BusinessRepository
type businessRepo struct {
	db *database.DB
}

// NewBusinessRepo creates a new business repository
func NewBusinessRepo(db *database.DB) BusinessRepository {
	return &businessRepo{db: db}
}

const businessColumns = `b.id, b.slug, b.name, b.tier, b.tagline, b.image_url, b.website_url,
	b.is_featured, b.category_id, c.slug, c.name, b.neighborhood_id, n.slug,
	b.area_id, a.slug, b.amenities, b.identities`

// tierOrder ranks listings sponsor-first inside the SQL ordering so paging
// stays consistent with what the ranker produces for full pools.
const tierOrder = `CASE b.tier
	WHEN 'sponsor' THEN 0
	WHEN 'premium' THEN 1
	WHEN 'standard' THEN 2
	ELSE 3 END`

func businessSelect() squirrel.SelectBuilder {
	return psql.Select(businessColumns).
		From("businesses b").
		LeftJoin("categories c ON c.id = b.category_id").
		LeftJoin("neighborhoods n ON n.id = b.neighborhood_id").
		LeftJoin("areas a ON a.id = b.area_id").
		Where(squirrel.Eq{"b.status": "active"})
}

func applyBusinessFilters(q squirrel.SelectBuilder, f engine.FilterSpec) squirrel.SelectBuilder {
	if f.Category != "" {
		q = q.Where(squirrel.Eq{"c.slug": f.Category})
	}
	if f.Neighborhood != "" {
		q = q.Where(squirrel.Eq{"n.slug": f.Neighborhood})
	}
	if f.Area != "" {
		q = q.Where(squirrel.Eq{"a.slug": f.Area})
	}
	if f.Tier != "" {
		q = q.Where(squirrel.Eq{"b.tier": f.Tier})
	}
	if f.Amenity != "" {
		q = q.Where("b.amenities @> ARRAY[?]::text[]", f.Amenity)
	}
	if f.Identity != "" {
		q = q.Where("b.identities @> ARRAY[?]::text[]", f.Identity)
	}
	if f.Featured {
		q = q.Where(squirrel.Eq{"b.is_featured": true})
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"b.name": pattern},
			squirrel.ILike{"b.tagline": pattern},
		})
	}
	return q
}

// List returns active businesses matching the filter, tier-ranked then
// alphabetical, with the id as a deterministic tie-break.
func (r *businessRepo) List(ctx context.Context, f engine.FilterSpec, limit, offset int) ([]models.Business, error) {
	q := applyBusinessFilters(businessSelect(), f).
		OrderBy(tierOrder, "b.name ASC", "b.id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build businesses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}
	return businesses, rows.Err()
}

// Count returns the number of active businesses matching the filter.
func (r *businessRepo) Count(ctx context.Context, f engine.FilterSpec) (int, error) {
	q := applyBusinessFilters(psql.Select("COUNT(*)").
		From("businesses b").
		LeftJoin("categories c ON c.id = b.category_id").
		LeftJoin("neighborhoods n ON n.id = b.neighborhood_id").
		LeftJoin("areas a ON a.id = b.area_id").
		Where(squirrel.Eq{"b.status": "active"}), f)

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build businesses count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count businesses: %w", err)
	}
	return count, nil
}

// GetBySlug retrieves a single active business; nil when absent.
func (r *businessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	query, args, err := businessSelect().Where(squirrel.Eq{"b.slug": slug}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build business query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	business, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func scanBusiness(row rowScanner) (models.Business, error) {
	var business models.Business
	var categoryID, categorySlug, categoryName sql.NullString
	var neighborhoodID, neighborhoodSlug sql.NullString
	var areaID, areaSlug sql.NullString

	err := row.Scan(
		&business.ID, &business.Slug, &business.Name, &business.Tier,
		&business.Tagline, &business.ImageURL, &business.WebsiteURL, &business.IsFeatured,
		&categoryID, &categorySlug, &categoryName,
		&neighborhoodID, &neighborhoodSlug,
		&areaID, &areaSlug,
		pq.Array(&business.Amenities), pq.Array(&business.Identities),
	)
	if err != nil {
		return models.Business{}, err
	}

	business.CategoryID = categoryID.String
	business.CategorySlug = categorySlug.String
	business.CategoryName = categoryName.String
	business.NeighborhoodID = neighborhoodID.String
	business.NeighborhoodSlug = neighborhoodSlug.String
	business.AreaID = areaID.String
	business.AreaSlug = areaSlug.String
	return business, nil
}
