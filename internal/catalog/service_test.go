package catalog

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type stubRepo struct {
	categories []models.Category
	counts     map[uint]int
	products   []models.Product
	product    *models.Product
	findErr    error
	bumpErr    error
	bumped     []uint
}

func (s *stubRepo) ListActiveCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *stubRepo) CountActiveProductsByCategory(ctx context.Context) (map[uint]int, error) {
	return s.counts, nil
}

func (s *stubRepo) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubRepo) FindActiveProduct(ctx context.Context, id uint) (*models.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.product, nil
}

func (s *stubRepo) IncrementViews(ctx context.Context, id uint) error {
	if s.bumpErr != nil {
		return s.bumpErr
	}
	s.bumped = append(s.bumped, id)
	return nil
}

type stubReviews struct {
	reviews []models.Review
	err     error
}

func (s *stubReviews) ListApprovedByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.reviews, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *stubRepo, reviews *stubReviews) *Service {
	t.Helper()

	svc, err := NewService(repo, reviews, testLogger())
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidatesInputs(t *testing.T) {
	_, err := NewService(nil, &stubReviews{}, testLogger())
	assert.Error(t, err)

	_, err = NewService(&stubRepo{}, nil, testLogger())
	assert.Error(t, err)

	_, err = NewService(&stubRepo{}, &stubReviews{}, nil)
	assert.Error(t, err)
}

func TestListCategoriesAttachesCounts(t *testing.T) {
	repo := &stubRepo{
		categories: []models.Category{
			{ID: 1, Name: "Abayas"},
			{ID: 2, Name: "Dresses"},
		},
		counts: map[uint]int{1: 3},
	}
	svc := newTestService(t, repo, &stubReviews{})

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 3, categories[0].ProductCount)
	assert.Zero(t, categories[1].ProductCount)
}

func TestGetProductNotFound(t *testing.T) {
	repo := &stubRepo{findErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &stubReviews{})

	_, err := svc.GetProduct(context.Background(), 42)
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeNotFound, typed.Code())
}

func TestGetProductBumpsViewsAndAggregatesReviews(t *testing.T) {
	discount := decimal.NewFromFloat(79.99)
	repo := &stubRepo{
		product: &models.Product{
			ID:            7,
			Name:          "Classic Abaya",
			Price:         decimal.NewFromFloat(99.99),
			DiscountPrice: &discount,
			ViewsCount:    10,
			CreatedAt:     time.Now().UTC(),
		},
	}
	reviews := &stubReviews{
		reviews: []models.Review{
			{ID: 1, Rating: 5, User: &models.User{Name: "Amina"}},
			{ID: 2, Rating: 4},
		},
	}
	svc := newTestService(t, repo, reviews)

	detail, err := svc.GetProduct(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, repo.bumped)
	assert.Equal(t, 11, detail.ViewsCount, "response reflects the recorded view")
	assert.True(t, detail.HasDiscount)
	assert.InDelta(t, 79.99, detail.FinalPrice, 0.0001)
	require.Len(t, detail.Reviews, 2)
	assert.Equal(t, "Amina", detail.Reviews[0].UserName)
	assert.InDelta(t, 4.5, detail.AverageRating, 0.0001)
}

func TestGetProductViewBumpFailureIsNonFatal(t *testing.T) {
	repo := &stubRepo{
		product: &models.Product{ID: 3, Name: "Kimono", Price: decimal.NewFromInt(50), ViewsCount: 2},
		bumpErr: fmt.Errorf("db down"),
	}
	svc := newTestService(t, repo, &stubReviews{})

	detail, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.ViewsCount)
	assert.Zero(t, detail.AverageRating, "no reviews means zero average")
}

func TestProductDTOPlaceholderImage(t *testing.T) {
	dto := newProductDTO(models.Product{Name: "Silk Scarf", Price: decimal.NewFromInt(20)})
	assert.Equal(t, "https://via.placeholder.com/300x250?text=Silk+Scarf", dto.ImageURL)
	assert.NotNil(t, dto.Sizes)
	assert.NotNil(t, dto.Colors)
	assert.NotNil(t, dto.AdditionalImages)
}
