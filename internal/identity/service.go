package identity

import (
	"context"
	stdErrors "errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/db"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/security"
	"github.com/atelierhq/storefront-backend/pkg/session"
)

type repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

// Service owns registration, login and session identity.
type Service struct {
	repo     repository
	sessions session.Store
	password config.PasswordConfig
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(repo repository, sessions session.Store, password config.PasswordConfig, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("repo is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		repo:     repo,
		sessions: sessions,
		password: password,
		logg:     logg,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Register creates an account and logs the new user in. A duplicate email is
// rejected up front, with the unique constraint as the concurrent-write
// backstop.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*UserDTO, string, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", errors.New(errors.CodeConflict, "email already registered")
	} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "checking existing email")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Address:      input.Address,
		City:         input.City,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "uq_users_email") {
			return nil, "", errors.New(errors.CodeConflict, "email already registered")
		}
		return nil, "", errors.Wrap(errors.CodeInternal, err, "creating user")
	}

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logg.Info(s.logg.WithUserID(ctx, fmt.Sprint(user.ID)), "user registered")
	dto := newUserDTO(*user)
	return &dto, token, nil
}

// Login authenticates credentials and opens a session. Every failure mode
// collapses into the same unauthorized error so the response never reveals
// whether the email exists.
func (s *Service) Login(ctx context.Context, input LoginInput) (*UserDTO, string, error) {
	invalid := errors.New(errors.CodeUnauthorized, "invalid email or password")

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", invalid
		}
		return nil, "", errors.Wrap(errors.CodeInternal, err, "loading user")
	}
	if !user.IsActive || user.PasswordHash == "" {
		return nil, "", invalid
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", invalid
	}

	loginAt := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "updating last login")
	}
	user.LastLoginAt = &loginAt

	token, err := s.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logg.Info(s.logg.WithUserID(ctx, fmt.Sprint(user.ID)), "user logged in")
	dto := newUserDTO(*user)
	return &dto, token, nil
}

// Logout invalidates the session token. Unknown tokens are a no-op so the
// operation stays idempotent.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting session")
	}
	return nil
}

// CurrentUser resolves the session to a fresh user projection, or nil for
// anonymous callers and stale sessions.
func (s *Service) CurrentUser(ctx context.Context, sess *session.Session) (*UserDTO, error) {
	if sess == nil {
		return nil, nil
	}

	user, err := s.repo.FindByID(ctx, sess.UserID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading current user")
	}
	if !user.IsActive {
		return nil, nil
	}

	dto := newUserDTO(*user)
	return &dto, nil
}

func (s *Service) startSession(ctx context.Context, user *models.User) (string, error) {
	token, err := s.sessions.Create(ctx, session.Session{
		UserID:   user.ID,
		UserName: user.Name,
		IsAdmin:  user.IsAdmin,
	})
	if err != nil {
		return "", errors.Wrap(errors.CodeDependency, err, "creating session")
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
