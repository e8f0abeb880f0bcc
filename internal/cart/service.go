package cart

import (
	"context"
	stdErrors "errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type repository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
	FindLine(ctx context.Context, userID, itemID uint) (*models.CartItem, error)
	Upsert(ctx context.Context, item *models.CartItem) error
	Save(ctx context.Context, item *models.CartItem) error
	DeleteLine(ctx context.Context, userID, itemID uint) (int64, error)
	ClearUser(ctx context.Context, userID uint) error
}

type productLoader interface {
	FindActiveProduct(ctx context.Context, id uint) (*models.Product, error)
}

// Service owns the shopping cart.
type Service struct {
	repo     repository
	products productLoader
	logg     *logger.Logger
}

func NewService(repo repository, products productLoader, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{repo: repo, products: products, logg: logg}, nil
}

// GetCart returns the user's cart with totals priced live. Totals follow the
// current final price, not the price at add time.
func (s *Service) GetCart(ctx context.Context, userID uint) (CartDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "loading cart")
	}
	return newCartDTO(items), nil
}

// AddToCart adds a product to the cart. Re-adding the same product and
// variant accumulates onto the existing line via the storage-level upsert.
func (s *Service) AddToCart(ctx context.Context, userID uint, input AddInput) (CartDTO, error) {
	product, err := s.products.FindActiveProduct(ctx, input.ProductID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "loading product")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if !product.InStock || product.StockQuantity < quantity {
		return CartDTO{}, errors.New(errors.CodeOutOfStock, "insufficient stock").
			WithDetails(map[string]any{"available": product.StockQuantity})
	}

	item := &models.CartItem{
		UserID:        userID,
		ProductID:     product.ID,
		Quantity:      quantity,
		SelectedSize:  input.SelectedSize,
		SelectedColor: input.SelectedColor,
		Notes:         input.Notes,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "adding cart line")
	}

	return s.GetCart(ctx, userID)
}

// UpdateCartItem applies a partial update to one cart line. Setting the
// quantity to zero or below removes the line.
func (s *Service) UpdateCartItem(ctx context.Context, userID, itemID uint, input UpdateInput) (CartDTO, error) {
	item, err := s.repo.FindLine(ctx, userID, itemID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return CartDTO{}, errors.New(errors.CodeNotFound, "cart item not found")
		}
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "loading cart line")
	}

	if input.Quantity != nil && *input.Quantity <= 0 {
		if _, err := s.repo.DeleteLine(ctx, userID, itemID); err != nil {
			return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "removing cart line")
		}
		return s.GetCart(ctx, userID)
	}

	if input.Quantity != nil {
		if item.Product != nil && (!item.Product.InStock || item.Product.StockQuantity < *input.Quantity) {
			return CartDTO{}, errors.New(errors.CodeOutOfStock, "insufficient stock").
				WithDetails(map[string]any{"available": item.Product.StockQuantity})
		}
		item.Quantity = *input.Quantity
	}
	if input.SelectedSize != nil {
		item.SelectedSize = *input.SelectedSize
	}
	if input.SelectedColor != nil {
		item.SelectedColor = *input.SelectedColor
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	// Saving loses the preloaded association otherwise.
	item.Product = nil
	if err := s.repo.Save(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "uq_cart_line") {
			return CartDTO{}, errors.New(errors.CodeConflict, "cart already has this product variant")
		}
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "updating cart line")
	}

	return s.GetCart(ctx, userID)
}

// RemoveCartItem deletes one line from the cart.
func (s *Service) RemoveCartItem(ctx context.Context, userID, itemID uint) (CartDTO, error) {
	removed, err := s.repo.DeleteLine(ctx, userID, itemID)
	if err != nil {
		return CartDTO{}, errors.Wrap(errors.CodeInternal, err, "removing cart line")
	}
	if removed == 0 {
		return CartDTO{}, errors.New(errors.CodeNotFound, "cart item not found")
	}
	return s.GetCart(ctx, userID)
}

// ClearCart empties the user's cart.
func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	if err := s.repo.ClearUser(ctx, userID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clearing cart")
	}
	return nil
}
