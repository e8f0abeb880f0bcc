package controllers

import (
	"net/http"
	"time"

	"github.com/atelierhq/storefront-backend/api/middleware"
	"github.com/atelierhq/storefront-backend/api/responses"
	"github.com/atelierhq/storefront-backend/api/validators"
	"github.com/atelierhq/storefront-backend/internal/orders"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type createOrderRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerPhone   string     `json:"customer_phone" validate:"required,min=7,max=20"`
	CustomerAddress string     `json:"customer_address" validate:"required,min=5,max=1000"`
	PaymentMethod   string     `json:"payment_method" validate:"omitempty,max=30"`
	DeliveryDate    *time.Time `json:"delivery_date"`
	Notes           string     `json:"notes" validate:"omitempty,max=1000"`
}

// CreateOrder checks the caller's cart out into an order.
func CreateOrder(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.CreateOrder(r.Context(), middleware.UserIDFromContext(r.Context()), orders.CreateOrderInput{
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
			CustomerAddress: body.CustomerAddress,
			PaymentMethod:   body.PaymentMethod,
			DeliveryDate:    body.DeliveryDate,
			Notes:           body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// ListOrders returns the caller's order history.
func ListOrders(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListOrders(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
