package controllers

import (
	"net/http"

	"github.com/atelierhq/storefront-backend/api/middleware"
	"github.com/atelierhq/storefront-backend/api/responses"
	"github.com/atelierhq/storefront-backend/api/validators"
	"github.com/atelierhq/storefront-backend/internal/cart"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type addToCartRequest struct {
	ProductID     uint   `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"omitempty,gte=1,lte=99"`
	SelectedSize  string `json:"selected_size" validate:"omitempty,max=20"`
	SelectedColor string `json:"selected_color" validate:"omitempty,max=30"`
	Notes         string `json:"notes" validate:"omitempty,max=500"`
}

type updateCartItemRequest struct {
	Quantity      *int    `json:"quantity" validate:"omitempty,lte=99"`
	SelectedSize  *string `json:"selected_size" validate:"omitempty,max=20"`
	SelectedColor *string `json:"selected_color" validate:"omitempty,max=30"`
	Notes         *string `json:"notes" validate:"omitempty,max=500"`
}

// GetCart returns the caller's cart. Anonymous visitors get an empty cart,
// not an error.
func GetCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID == 0 {
			responses.WriteSuccess(w, cart.EmptyCart())
			return
		}

		dto, err := svc.GetCart(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AddToCart adds a product (and variant) to the caller's cart.
func AddToCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addToCartRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddToCart(r.Context(), middleware.UserIDFromContext(r.Context()), cart.AddInput{
			ProductID:     body.ProductID,
			Quantity:      body.Quantity,
			SelectedSize:  body.SelectedSize,
			SelectedColor: body.SelectedColor,
			Notes:         body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// UpdateCartItem applies a partial update to one cart line.
func UpdateCartItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), itemID, cart.UpdateInput{
			Quantity:      body.Quantity,
			SelectedSize:  body.SelectedSize,
			SelectedColor: body.SelectedColor,
			Notes:         body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// RemoveCartItem deletes one line from the caller's cart.
func RemoveCartItem(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParseIDParam(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveCartItem(r.Context(), middleware.UserIDFromContext(r.Context()), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ClearCart empties the caller's cart.
func ClearCart(svc *cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ClearCart(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart.EmptyCart())
	}
}
