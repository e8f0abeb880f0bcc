package catalog

import (
	"net/url"
	"time"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

const placeholderImageBase = "https://via.placeholder.com/300x250?text="

type CategoryDTO struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ProductCount int    `json:"product_count"`
}

type ProductDTO struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	DiscountPrice    *float64  `json:"discount_price"`
	FinalPrice       float64   `json:"final_price"`
	HasDiscount      bool      `json:"has_discount"`
	CategoryID       *uint     `json:"category_id"`
	CategoryName     string    `json:"category_name"`
	ImageURL         string    `json:"image_url"`
	AdditionalImages []string  `json:"additional_images"`
	InStock          bool      `json:"in_stock"`
	StockQuantity    int       `json:"stock_quantity"`
	IsFeatured       bool      `json:"is_featured"`
	Sizes            []string  `json:"sizes"`
	Colors           []string  `json:"colors"`
	Material         string    `json:"material"`
	CareInstructions string    `json:"care_instructions"`
	DeliveryTime     string    `json:"delivery_time"`
	ViewsCount       int       `json:"views_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type ReviewDTO struct {
	ID        uint      `json:"id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductDetailDTO is the single-product payload: the listing fields plus the
// approved reviews and their average rating.
type ProductDetailDTO struct {
	ProductDTO
	Reviews       []ReviewDTO `json:"reviews"`
	AverageRating float64     `json:"average_rating"`
}

func newCategoryDTO(category models.Category, productCount int) CategoryDTO {
	return CategoryDTO{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		ImageURL:     category.ImageURL,
		ProductCount: productCount,
	}
}

func newProductDTO(product models.Product) ProductDTO {
	dto := ProductDTO{
		ID:               product.ID,
		Name:             product.Name,
		Description:      product.Description,
		Price:            product.Price.InexactFloat64(),
		FinalPrice:       product.FinalPrice().InexactFloat64(),
		HasDiscount:      product.HasDiscount(),
		CategoryID:       product.CategoryID,
		ImageURL:         product.ImageURL,
		AdditionalImages: product.AdditionalImages,
		InStock:          product.InStock,
		StockQuantity:    product.StockQuantity,
		IsFeatured:       product.IsFeatured,
		Sizes:            product.Sizes,
		Colors:           product.Colors,
		Material:         product.Material,
		CareInstructions: product.CareInstructions,
		DeliveryTime:     product.DeliveryTime,
		ViewsCount:       product.ViewsCount,
		CreatedAt:        product.CreatedAt,
	}
	if product.DiscountPrice != nil {
		discounted := product.DiscountPrice.InexactFloat64()
		dto.DiscountPrice = &discounted
	}
	if product.Category != nil {
		dto.CategoryName = product.Category.Name
	}
	if dto.ImageURL == "" {
		dto.ImageURL = placeholderImageBase + url.QueryEscape(product.Name)
	}
	if dto.AdditionalImages == nil {
		dto.AdditionalImages = []string{}
	}
	if dto.Sizes == nil {
		dto.Sizes = []string{}
	}
	if dto.Colors == nil {
		dto.Colors = []string{}
	}
	return dto
}

func newReviewDTO(review models.Review) ReviewDTO {
	dto := ReviewDTO{
		ID:        review.ID,
		Rating:    review.Rating,
		Title:     review.Title,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
	if review.User != nil {
		dto.UserName = review.User.Name
	}
	return dto
}

// averageRating returns the mean rating rounded to one decimal place, or 0
// when there are no reviews.
func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	mean := float64(total) / float64(len(reviews))
	return float64(int(mean*10+0.5)) / 10
}
