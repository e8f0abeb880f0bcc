package cart

import (
	"github.com/shopspring/decimal"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

// CartProductDTO is the slim product projection embedded in a cart line.
type CartProductDTO struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	FinalPrice    float64 `json:"final_price"`
	ImageURL      string  `json:"image_url"`
	InStock       bool    `json:"in_stock"`
	StockQuantity int     `json:"stock_quantity"`
}

type CartLineDTO struct {
	ID            uint            `json:"id"`
	Product       *CartProductDTO `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selected_size"`
	SelectedColor string          `json:"selected_color"`
	Notes         string          `json:"notes"`
	Subtotal      float64         `json:"subtotal"`
}

// CartDTO is the whole cart with totals derived from live product prices.
type CartDTO struct {
	Items []CartLineDTO `json:"items"`
	Total float64       `json:"total"`
	Count int           `json:"count"`
}

// EmptyCart is what anonymous visitors see.
func EmptyCart() CartDTO {
	return CartDTO{Items: []CartLineDTO{}}
}

func newCartDTO(items []models.CartItem) CartDTO {
	dto := CartDTO{Items: make([]CartLineDTO, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		line := CartLineDTO{
			ID:            item.ID,
			Quantity:      item.Quantity,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			Notes:         item.Notes,
		}
		if item.Product != nil {
			subtotal := item.Product.FinalPrice().Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.Product = &CartProductDTO{
				ID:            item.Product.ID,
				Name:          item.Product.Name,
				Price:         item.Product.Price.InexactFloat64(),
				FinalPrice:    item.Product.FinalPrice().InexactFloat64(),
				ImageURL:      item.Product.ImageURL,
				InStock:       item.Product.InStock,
				StockQuantity: item.Product.StockQuantity,
			}
			line.Subtotal = subtotal.InexactFloat64()
			total = total.Add(subtotal)
		}
		dto.Items = append(dto.Items, line)
		dto.Count += item.Quantity
	}
	dto.Total = total.InexactFloat64()
	return dto
}

// AddInput carries a validated add-to-cart request.
type AddInput struct {
	ProductID     uint
	Quantity      int
	SelectedSize  string
	SelectedColor string
	Notes         string
}

// UpdateInput carries a partial cart line update. Nil fields are left alone.
type UpdateInput struct {
	Quantity      *int
	SelectedSize  *string
	SelectedColor *string
	Notes         *string
}
