package feedback

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

// defaultContactSubject fills in when the form leaves the subject blank.
const defaultContactSubject = "General inquiry"

type repository interface {
	CreateContact(ctx context.Context, msg *models.ContactMessage) error
	CreateReview(ctx context.Context, review *models.Review) error
	ListApprovedByProduct(ctx context.Context, productID uint) ([]models.Review, error)
}

type productChecker interface {
	FindActiveProduct(ctx context.Context, id uint) (*models.Product, error)
}

// Service handles contact messages and review submission.
type Service struct {
	repo     repository
	products productChecker
	logg     *logger.Logger
}

func NewService(repo repository, products productChecker, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product checker is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{repo: repo, products: products, logg: logg}, nil
}

// ContactInput carries a validated contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

type ContactDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitContact stores a contact message. Anonymous submissions are fine;
// only name and message are required by validation upstream.
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) (*ContactDTO, error) {
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		subject = defaultContactSubject
	}

	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: subject,
		Message: input.Message,
	}
	if err := s.repo.CreateContact(ctx, msg); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "storing contact message")
	}

	s.logg.Info(s.logg.WithField(ctx, "contact_id", msg.ID), "contact message received")
	return &ContactDTO{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Subject:   msg.Subject,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}, nil
}

// ReviewInput carries a validated review submission. OrderID optionally
// links the review to the purchase it came from.
type ReviewInput struct {
	Rating  int
	Title   string
	Comment string
	OrderID *uint
}

type ReviewDTO struct {
	ID         uint      `json:"id"`
	ProductID  uint      `json:"product_id"`
	OrderID    *uint     `json:"order_id"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// AddReview stores a review for moderation. It stays hidden from the product
// page until approved.
func (s *Service) AddReview(ctx context.Context, userID, productID uint, input ReviewInput) (*ReviewDTO, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.New(errors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.products.FindActiveProduct(ctx, productID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading product")
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Title:     strings.TrimSpace(input.Title),
		Comment:   input.Comment,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "storing review")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"review_id":  review.ID,
		"product_id": productID,
	}), "review submitted")

	return &ReviewDTO{
		ID:         review.ID,
		ProductID:  review.ProductID,
		OrderID:    review.OrderID,
		Rating:     review.Rating,
		Title:      review.Title,
		Comment:    review.Comment,
		IsApproved: review.IsApproved,
		CreatedAt:  review.CreatedAt,
	}, nil
}

// ListApprovedByProduct exposes the repository to the catalog's product page.
func (s *Service) ListApprovedByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.repo.ListApprovedByProduct(ctx, productID)
}
