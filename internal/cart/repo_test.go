package cart

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One in-memory SQLite DB per connection; pin the pool to one.
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  discount_price NUMERIC,
  category_id INTEGER,
  image_url TEXT,
  additional_images TEXT,
  in_stock INTEGER NOT NULL DEFAULT 1,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  sizes TEXT,
  colors TEXT,
  material TEXT,
  care_instructions TEXT,
  delivery_time TEXT,
  views_count INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	cartItems := `
CREATE TABLE IF NOT EXISTS cart_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  selected_size TEXT NOT NULL DEFAULT '',
  selected_color TEXT NOT NULL DEFAULT '',
  notes TEXT,
  created_at DATETIME,
  CONSTRAINT uq_cart_line UNIQUE (user_id, product_id, selected_size, selected_color)
);`
	require.NoError(t, conn.Exec(products).Error)
	require.NoError(t, conn.Exec(cartItems).Error)
	return conn
}

func seedProduct(t *testing.T, conn *gorm.DB, name string, price int64) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Price:         decimal.NewFromInt(price),
		InStock:       true,
		StockQuantity: 10,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestUpsertAccumulatesQuantity(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Classic Abaya", 100)

	first := &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 2, SelectedSize: "M", SelectedColor: "Black"}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 3, SelectedSize: "M", SelectedColor: "Black"}
	require.NoError(t, repo.Upsert(ctx, second))

	items, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1, "same variant merges onto one line")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpsertKeepsDistinctVariantsApart(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Classic Abaya", 100)

	require.NoError(t, repo.Upsert(ctx, &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1, SelectedSize: "M"}))
	require.NoError(t, repo.Upsert(ctx, &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1, SelectedSize: "L"}))
	require.NoError(t, repo.Upsert(ctx, &models.CartItem{UserID: 2, ProductID: product.ID, Quantity: 1, SelectedSize: "M"}))

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2, "different sizes stay separate lines")

	theirs, err := repo.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, theirs, 1, "carts are per user")
}

func TestListByUserPreloadsProducts(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Silk Scarf", 45)
	require.NoError(t, repo.Upsert(ctx, &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}))

	items, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Silk Scarf", items[0].Product.Name)
}

func TestFindLineScopedToUser(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Kimono", 80)
	line := &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Upsert(ctx, line))

	found, err := repo.FindLine(ctx, 1, line.ID)
	require.NoError(t, err)
	assert.Equal(t, line.ID, found.ID)

	_, err = repo.FindLine(ctx, 2, line.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "other users cannot see the line")
}

func TestDeleteLineAndClear(t *testing.T) {
	conn := setupCartTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	product := seedProduct(t, conn, "Kimono", 80)
	other := seedProduct(t, conn, "Scarf", 20)
	line := &models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.Upsert(ctx, line))
	require.NoError(t, repo.Upsert(ctx, &models.CartItem{UserID: 1, ProductID: other.ID, Quantity: 2}))

	removed, err := repo.DeleteLine(ctx, 2, line.ID)
	require.NoError(t, err)
	assert.Zero(t, removed, "wrong user removes nothing")

	removed, err = repo.DeleteLine(ctx, 1, line.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	require.NoError(t, repo.ClearUser(ctx, 1))
	items, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}
