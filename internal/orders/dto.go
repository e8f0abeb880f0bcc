package orders

import (
	"time"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

type OrderItemDTO struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductImage  string  `json:"product_image"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Subtotal      float64 `json:"subtotal"`
	SelectedSize  string  `json:"selected_size"`
	SelectedColor string  `json:"selected_color"`
	Notes         string  `json:"notes"`
}

type OrderDTO struct {
	ID              uint           `json:"id"`
	OrderNumber     string         `json:"order_number"`
	TotalAmount     float64        `json:"total_amount"`
	Status          string         `json:"status"`
	StatusLabel     string         `json:"status_label"`
	PaymentStatus   string         `json:"payment_status"`
	PaymentMethod   string         `json:"payment_method"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone"`
	CustomerAddress string         `json:"customer_address"`
	DeliveryDate    *time.Time     `json:"delivery_date"`
	Notes           string         `json:"notes"`
	Items           []OrderItemDTO `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
}

func newOrderDTO(order models.Order) OrderDTO {
	dto := OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		TotalAmount:     order.TotalAmount.InexactFloat64(),
		Status:          string(order.Status),
		StatusLabel:     order.Status.Label(),
		PaymentStatus:   string(order.PaymentStatus),
		PaymentMethod:   order.PaymentMethod,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		DeliveryDate:    order.DeliveryDate,
		Notes:           order.Notes,
		Items:           make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		line := OrderItemDTO{
			ID:            item.ID,
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			Price:         item.Price.InexactFloat64(),
			Subtotal:      item.Price.Mul(intDecimal(item.Quantity)).InexactFloat64(),
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			Notes:         item.Notes,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.ProductImage = item.Product.ImageURL
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

// CreateOrderInput carries the validated checkout form.
type CreateOrderInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	DeliveryDate    *time.Time
	Notes           string
}
