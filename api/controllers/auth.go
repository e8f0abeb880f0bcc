package controllers

import (
	"net/http"

	"github.com/atelierhq/storefront-backend/api/middleware"
	"github.com/atelierhq/storefront-backend/api/responses"
	"github.com/atelierhq/storefront-backend/api/validators"
	"github.com/atelierhq/storefront-backend/internal/identity"
	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Address  string `json:"address" validate:"omitempty,max=500"`
	City     string `json:"city" validate:"omitempty,max=50"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates an account and immediately opens a session for it.
func Register(svc *identity.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, token, err := svc.Register(r.Context(), identity.RegisterInput{
			Name:     body.Name,
			Email:    body.Email,
			Password: body.Password,
			Phone:    body.Phone,
			Address:  body.Address,
			City:     body.City,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, cfg, token)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]*identity.UserDTO{"user": user})
	}
}

// Login authenticates credentials and sets the session cookie.
func Login(svc *identity.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, token, err := svc.Login(r.Context(), identity.LoginInput{
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, cfg, token)
		responses.WriteSuccess(w, map[string]*identity.UserDTO{"user": user})
	}
}

// Logout invalidates the session server-side and expires the cookie. Always
// succeeds, with or without a live session.
func Logout(svc *identity.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromContext(r.Context())
		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clearSessionCookie(w, cfg)
		responses.WriteSuccess(w, map[string]string{"message": "logged out"})
	}
}

// CurrentUser reports who the session belongs to; anonymous callers get a
// null user rather than an error.
func CurrentUser(svc *identity.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.CurrentUser(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]*identity.UserDTO{"user": user})
	}
}

func setSessionCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.Session.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.App.IsProd(),
		SameSite: http.SameSiteLaxMode,
	})
}
