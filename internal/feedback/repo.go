package feedback

import (
	"context"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

// Repository persists contact messages and product reviews.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateContact stores an inbound contact-form message.
func (r *Repository) CreateContact(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// CreateReview stores a review. Reviews are created unapproved.
func (r *Repository) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListApprovedByProduct returns a product's approved reviews, newest first,
// with the author hydrated for display.
func (r *Repository) ListApprovedByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ? AND is_approved = ?", productID, true).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
