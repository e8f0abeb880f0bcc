package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

// Repository exposes read access to categories and products.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveCategories returns active categories in sort order.
func (r *Repository) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	var rows []models.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActiveProductsByCategory returns the derived product count per
// category in a single aggregate query.
func (r *Repository) CountActiveProductsByCategory(ctx context.Context) (map[uint]int, error) {
	type row struct {
		CategoryID uint
		Count      int
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id, COUNT(*) AS count").
		Where("is_active = ? AND category_id IS NOT NULL", true).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}

// ProductFilter narrows ListProducts. All supplied filters combine with AND;
// the search text matches name OR description as a case-sensitive substring.
type ProductFilter struct {
	CategoryID   *uint
	FeaturedOnly bool
	Search       string
}

// ListProducts returns active products matching the filter, newest first.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true)

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var rows []models.Product
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindActiveProduct loads a single active product with its category.
func (r *Repository) FindActiveProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// IncrementViews bumps the view counter atomically in the store so
// concurrent fetches do not lose updates.
func (r *Repository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}
