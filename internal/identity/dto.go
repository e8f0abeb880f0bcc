package identity

import (
	"time"

	"github.com/atelierhq/storefront-backend/pkg/db/models"
)

// UserDTO is the public projection of an account. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
		City:      user.City,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
}

// LoginInput carries validated credentials.
type LoginInput struct {
	Email    string
	Password string
}
