package controllers

import (
	"net/http"

	"github.com/atelierhq/storefront-backend/api/middleware"
	"github.com/atelierhq/storefront-backend/api/responses"
	"github.com/atelierhq/storefront-backend/api/validators"
	"github.com/atelierhq/storefront-backend/internal/feedback"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=120"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=2,max=5000"`
}

type reviewRequest struct {
	ProductID uint   `json:"product_id" validate:"required"`
	OrderID   *uint  `json:"order_id"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title     string `json:"title" validate:"omitempty,max=200"`
	Comment   string `json:"comment" validate:"omitempty,max=5000"`
}

// SubmitContact accepts a contact-form message, authenticated or not.
func SubmitContact(svc *feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body contactRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.SubmitContact(r.Context(), feedback.ContactInput{
			Name:    body.Name,
			Email:   body.Email,
			Phone:   body.Phone,
			Subject: body.Subject,
			Message: body.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// SubmitReview stores a product review for moderation.
func SubmitReview(svc *feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body reviewRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddReview(r.Context(), middleware.UserIDFromContext(r.Context()), body.ProductID, feedback.ReviewInput{
			Rating:  body.Rating,
			Title:   body.Title,
			Comment: body.Comment,
			OrderID: body.OrderID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}
