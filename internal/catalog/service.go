package catalog

import (
	"context"
	stdErrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type repository interface {
	ListActiveCategories(ctx context.Context) ([]models.Category, error)
	CountActiveProductsByCategory(ctx context.Context) (map[uint]int, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindActiveProduct(ctx context.Context, id uint) (*models.Product, error)
	IncrementViews(ctx context.Context, id uint) error
}

type reviewsLoader interface {
	ListApprovedByProduct(ctx context.Context, productID uint) ([]models.Review, error)
}

// Service serves the public browsing surface of the catalog.
type Service struct {
	repo    repository
	reviews reviewsLoader
	logg    *logger.Logger
}

func NewService(repo repository, reviews reviewsLoader, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if reviews == nil {
		return nil, fmt.Errorf("reviews loader is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{repo: repo, reviews: reviews, logg: logg}, nil
}

// ListCategories returns active categories in sort order with their derived
// product counts.
func (s *Service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListActiveCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing categories")
	}

	counts, err := s.repo.CountActiveProductsByCategory(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "counting products per category")
	}

	out := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryDTO(category, counts[category.ID]))
	}
	return out, nil
}

// ListProducts returns active products matching the filter, newest first.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing products")
	}

	out := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		out = append(out, newProductDTO(product))
	}
	return out, nil
}

// GetProduct returns a single active product with its approved reviews, and
// records the view.
func (s *Service) GetProduct(ctx context.Context, id uint) (*ProductDetailDTO, error) {
	product, err := s.repo.FindActiveProduct(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading product")
	}

	// View tracking is best effort; a failed bump never blocks the page.
	if err := s.repo.IncrementViews(ctx, product.ID); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "product_id", product.ID), "incrementing product views: "+err.Error())
	} else {
		product.ViewsCount++
	}

	reviews, err := s.reviews.ListApprovedByProduct(ctx, product.ID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading reviews")
	}

	detail := &ProductDetailDTO{
		ProductDTO:    newProductDTO(*product),
		Reviews:       make([]ReviewDTO, 0, len(reviews)),
		AverageRating: averageRating(reviews),
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, newReviewDTO(review))
	}
	return detail, nil
}
