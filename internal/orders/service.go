package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/internal/cart"
	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/enums"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

// orderNumberAttempts bounds the retry loop on order number collisions.
// With an 8-digit space a repeat collision is vanishingly unlikely.
const orderNumberAttempts = 5

// defaultPaymentMethod applies when checkout does not name one.
const defaultPaymentMethod = "Cash on Delivery"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartLoader interface {
	ListByUser(ctx context.Context, userID uint) ([]models.CartItem, error)
}

type orderLister interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
}

// checkoutTx is the transactional slice of one checkout attempt: everything
// behind it commits or rolls back together.
type checkoutTx interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	DecrementStock(ctx context.Context, productID uint, qty int) (bool, error)
	ClearCart(ctx context.Context, userID uint) error
}

type gormCheckoutTx struct {
	orders *Repository
	cart   *cart.Repository
}

func (g *gormCheckoutTx) CreateOrder(ctx context.Context, order *models.Order) error {
	return g.orders.Create(ctx, order)
}

func (g *gormCheckoutTx) DecrementStock(ctx context.Context, productID uint, qty int) (bool, error) {
	return g.orders.DecrementStock(ctx, productID, qty)
}

func (g *gormCheckoutTx) ClearCart(ctx context.Context, userID uint) error {
	return g.cart.ClearUser(ctx, userID)
}

// Service owns checkout and order history.
type Service struct {
	tx        txRunner
	history   orderLister
	cart      cartLoader
	logg      *logger.Logger
	newNumber func() (string, error)
	newTx     func(tx *gorm.DB) checkoutTx
}

func NewService(tx txRunner, ordersRepo *Repository, cartRepo *cart.Repository, logg *logger.Logger) (*Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repo is required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repo is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		tx:        tx,
		history:   ordersRepo,
		cart:      cartRepo,
		logg:      logg,
		newNumber: newOrderNumber,
		newTx: func(tx *gorm.DB) checkoutTx {
			return &gormCheckoutTx{orders: ordersRepo.WithTx(tx), cart: cartRepo.WithTx(tx)}
		},
	}, nil
}

// CreateOrder turns the user's cart into an order. Each attempt runs in one
// transaction: order header, item snapshots, guarded stock decrements and
// the cart clear land together or not at all. A collision on the order
// number rolls the attempt back and retries with a fresh number.
func (s *Service) CreateOrder(ctx context.Context, userID uint, input CreateOrderInput) (*OrderDTO, error) {
	items, err := s.cart.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading cart")
	}
	if len(items) == 0 {
		return nil, errors.New(errors.CodeEmptyCart, "cart is empty")
	}

	if strings.TrimSpace(input.PaymentMethod) == "" {
		input.PaymentMethod = defaultPaymentMethod
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			return nil, errors.New(errors.CodeInternal, "cart line missing product")
		}
		if !item.Product.InStock || item.Product.StockQuantity < item.Quantity {
			return nil, errors.New(errors.CodeOutOfStock, "insufficient stock").
				WithDetails(map[string]any{
					"product_id":   item.ProductID,
					"product_name": item.Product.Name,
					"requested":    item.Quantity,
					"available":    item.Product.StockQuantity,
				})
		}
		total = total.Add(item.Product.FinalPrice().Mul(intDecimal(item.Quantity)))
	}

	var created *models.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := s.newNumber()
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "generating order number")
		}

		order := buildOrder(userID, number, total, items, input)
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			run := s.newTx(tx)
			if err := run.CreateOrder(ctx, order); err != nil {
				return err
			}
			for _, item := range items {
				ok, err := run.DecrementStock(ctx, item.ProductID, item.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New(errors.CodeOutOfStock, "insufficient stock").
						WithDetails(map[string]any{"product_id": item.ProductID})
				}
			}
			return run.ClearCart(ctx, userID)
		})
		if err == nil {
			created = order
			break
		}
		if db.IsUniqueViolation(err, "uq_orders_number") {
			continue
		}
		if typed := errors.As(err); typed != nil {
			return nil, typed
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating order")
	}
	if created == nil {
		return nil, errors.New(errors.CodeInternal, "could not allocate an order number")
	}

	// Hydrate the response from the products already loaded on the cart
	// lines instead of another round trip.
	productsByID := make(map[uint]*models.Product, len(items))
	for _, item := range items {
		productsByID[item.ProductID] = item.Product
	}
	for i := range created.Items {
		created.Items[i].Product = productsByID[created.Items[i].ProductID]
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_number": created.OrderNumber,
		"user_id":      created.UserID,
		"total":        created.TotalAmount.String(),
	}), "order created")

	dto := newOrderDTO(*created)
	return &dto, nil
}

// ListOrders returns the user's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, userID uint) ([]OrderDTO, error) {
	rows, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for _, order := range rows {
		out = append(out, newOrderDTO(order))
	}
	return out, nil
}

func buildOrder(userID uint, number string, total decimal.Decimal, items []models.CartItem, input CreateOrderInput) *models.Order {
	order := &models.Order{
		OrderNumber:     number,
		UserID:          userID,
		TotalAmount:     total,
		Status:          enums.OrderStatusPending,
		PaymentStatus:   enums.PaymentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		DeliveryDate:    input.DeliveryDate,
		Notes:           input.Notes,
		Items:           make([]models.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Price:         item.Product.FinalPrice(),
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			Notes:         item.Notes,
		})
	}
	return order
}

func intDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
