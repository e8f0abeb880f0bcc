package cart

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type stubCartRepo struct {
	lines    map[uint]*models.CartItem
	nextID   uint
	upserted []models.CartItem
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{lines: map[uint]*models.CartItem{}, nextID: 1}
}

func (s *stubCartRepo) ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var out []models.CartItem
	for id := uint(1); id < s.nextID; id++ {
		if line, ok := s.lines[id]; ok && line.UserID == userID {
			out = append(out, *line)
		}
	}
	return out, nil
}

func (s *stubCartRepo) FindLine(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	if line, ok := s.lines[itemID]; ok && line.UserID == userID {
		cp := *line
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCartRepo) Upsert(ctx context.Context, item *models.CartItem) error {
	s.upserted = append(s.upserted, *item)
	for _, line := range s.lines {
		if line.UserID == item.UserID && line.ProductID == item.ProductID &&
			line.SelectedSize == item.SelectedSize && line.SelectedColor == item.SelectedColor {
			line.Quantity += item.Quantity
			return nil
		}
	}
	item.ID = s.nextID
	s.nextID++
	cp := *item
	s.lines[item.ID] = &cp
	return nil
}

func (s *stubCartRepo) Save(ctx context.Context, item *models.CartItem) error {
	cp := *item
	s.lines[item.ID] = &cp
	return nil
}

func (s *stubCartRepo) DeleteLine(ctx context.Context, userID, itemID uint) (int64, error) {
	if line, ok := s.lines[itemID]; ok && line.UserID == userID {
		delete(s.lines, itemID)
		return 1, nil
	}
	return 0, nil
}

func (s *stubCartRepo) ClearUser(ctx context.Context, userID uint) error {
	for id, line := range s.lines {
		if line.UserID == userID {
			delete(s.lines, id)
		}
	}
	return nil
}

type stubProducts struct {
	products map[uint]*models.Product
}

func (s *stubProducts) FindActiveProduct(ctx context.Context, id uint) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newCartService(t *testing.T, repo *stubCartRepo, products *stubProducts) *Service {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, products, logg)
	require.NoError(t, err)
	return svc
}

func inStockProduct(id uint, price float64) *models.Product {
	return &models.Product{
		ID:            id,
		Name:          "Product",
		Price:         decimal.NewFromFloat(price),
		InStock:       true,
		StockQuantity: 10,
		IsActive:      true,
	}
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	repo := newStubCartRepo()
	products := &stubProducts{products: map[uint]*models.Product{1: inStockProduct(1, 100)}}
	svc := newCartService(t, repo, products)

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1})
	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, 1, repo.upserted[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := newCartService(t, newStubCartRepo(), &stubProducts{products: map[uint]*models.Product{}})

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 99})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeNotFound, typed.Code())
}

func TestAddToCartOutOfStock(t *testing.T) {
	product := inStockProduct(1, 100)
	product.InStock = false
	svc := newCartService(t, newStubCartRepo(), &stubProducts{products: map[uint]*models.Product{1: product}})

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 1})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeOutOfStock, typed.Code())
}

func TestAddToCartQuantityExceedsStock(t *testing.T) {
	product := inStockProduct(1, 100)
	product.StockQuantity = 2
	svc := newCartService(t, newStubCartRepo(), &stubProducts{products: map[uint]*models.Product{1: product}})

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 5})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeOutOfStock, typed.Code())
}

func TestUpdateCartItemQuantityExceedsStock(t *testing.T) {
	repo := newStubCartRepo()
	product := inStockProduct(1, 100)
	product.StockQuantity = 2
	svc := newCartService(t, repo, &stubProducts{products: map[uint]*models.Product{1: product}})

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	repo.lines[1].Product = product

	qty := 5
	_, err = svc.UpdateCartItem(context.Background(), 1, 1, UpdateInput{Quantity: &qty})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeOutOfStock, typed.Code())
}

func TestGetCartPricesLive(t *testing.T) {
	repo := newStubCartRepo()
	discount := decimal.NewFromInt(80)
	product := inStockProduct(1, 100)
	product.DiscountPrice = &discount
	products := &stubProducts{products: map[uint]*models.Product{1: product}}
	svc := newCartService(t, repo, products)

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	// The repo stub does not preload; attach the product the way the real
	// repository would.
	for _, line := range repo.lines {
		line.Product = product
	}

	dto, err := svc.GetCart(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, 3, dto.Count)
	assert.InDelta(t, 240, dto.Total, 0.0001, "totals use the discounted price")
	assert.InDelta(t, 240, dto.Items[0].Subtotal, 0.0001)
}

func TestUpdateCartItemQuantityZeroRemovesLine(t *testing.T) {
	repo := newStubCartRepo()
	products := &stubProducts{products: map[uint]*models.Product{1: inStockProduct(1, 100)}}
	svc := newCartService(t, repo, products)

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	zero := 0
	dto, err := svc.UpdateCartItem(context.Background(), 1, 1, UpdateInput{Quantity: &zero})
	require.NoError(t, err)
	assert.Empty(t, dto.Items)
	assert.Empty(t, repo.lines)
}

func TestUpdateCartItemPartialFields(t *testing.T) {
	repo := newStubCartRepo()
	products := &stubProducts{products: map[uint]*models.Product{1: inStockProduct(1, 100)}}
	svc := newCartService(t, repo, products)

	_, err := svc.AddToCart(context.Background(), 1, AddInput{ProductID: 1, Quantity: 2, SelectedSize: "M"})
	require.NoError(t, err)

	size := "L"
	_, err = svc.UpdateCartItem(context.Background(), 1, 1, UpdateInput{SelectedSize: &size})
	require.NoError(t, err)

	line := repo.lines[1]
	require.NotNil(t, line)
	assert.Equal(t, "L", line.SelectedSize)
	assert.Equal(t, 2, line.Quantity, "unset fields are untouched")
}

func TestUpdateCartItemNotFound(t *testing.T) {
	svc := newCartService(t, newStubCartRepo(), &stubProducts{products: map[uint]*models.Product{}})

	qty := 2
	_, err := svc.UpdateCartItem(context.Background(), 1, 42, UpdateInput{Quantity: &qty})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeNotFound, typed.Code())
}

func TestRemoveCartItemNotFound(t *testing.T) {
	svc := newCartService(t, newStubCartRepo(), &stubProducts{products: map[uint]*models.Product{}})

	_, err := svc.RemoveCartItem(context.Background(), 1, 42)
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeNotFound, typed.Code())
}

func TestEmptyCartShape(t *testing.T) {
	dto := EmptyCart()
	assert.NotNil(t, dto.Items)
	assert.Zero(t, dto.Total)
	assert.Zero(t, dto.Count)
}
