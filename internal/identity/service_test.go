package identity

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/atelierhq/storefront-backend/pkg/config"
	"github.com/atelierhq/storefront-backend/pkg/db/models"
	"github.com/atelierhq/storefront-backend/pkg/errors"
	"github.com/atelierhq/storefront-backend/pkg/logger"
	"github.com/atelierhq/storefront-backend/pkg/security"
	"github.com/atelierhq/storefront-backend/pkg/session"
)

// fastArgon keeps password hashing cheap in tests.
var fastArgon = config.PasswordConfig{
	ArgonMemoryKB:    1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     8,
	ArgonKeyLen:      16,
}

type stubUsers struct {
	byEmail   map[string]*models.User
	byID      map[uint]*models.User
	createErr error
	nextID    uint
	lastLogin map[uint]time.Time
}

func newStubUsers() *stubUsers {
	return &stubUsers{
		byEmail:   map[string]*models.User{},
		byID:      map[uint]*models.User{},
		lastLogin: map[uint]time.Time{},
		nextID:    1,
	}
}

func (s *stubUsers) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = s.nextID
		s.nextID++
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user
}

func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.add(user)
	return nil
}

func (s *stubUsers) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

func newIdentityService(t *testing.T, users *stubUsers) (*Service, session.Store) {
	t.Helper()

	sessions := session.NewMemoryStore(session.Options{TTL: time.Hour})
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(users, sessions, fastArgon, logg)
	require.NoError(t, err)
	return svc, sessions
}

func hashFor(t *testing.T, password string) string {
	t.Helper()

	hash, err := security.HashPassword(password, fastArgon)
	require.NoError(t, err)
	return hash
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	users := newStubUsers()
	svc, sessions := newIdentityService(t, users)

	dto, token, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Amina",
		Email:    "  Amina@Example.COM ",
		Password: "s3cret-pass",
		Phone:    "0500000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "amina@example.com", dto.Email, "email is normalized")
	assert.False(t, dto.IsAdmin)
	require.NotEmpty(t, token)

	sess, err := sessions.Get(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, dto.ID, sess.UserID)
	assert.Equal(t, "Amina", sess.UserName)

	stored := users.byEmail["amina@example.com"]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := newStubUsers()
	users.add(&models.User{Email: "taken@example.com", IsActive: true})
	svc, _ := newIdentityService(t, users)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "taken@example.com",
		Password: "whatever1",
	})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeConflict, typed.Code())
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	users := newStubUsers()
	users.createErr = fmt.Errorf(`ERROR: duplicate key value violates unique constraint "uq_users_email"`)
	svc, _ := newIdentityService(t, users)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Racer",
		Email:    "race@example.com",
		Password: "whatever1",
	})
	typed := errors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, errors.CodeConflict, typed.Code(), "constraint violation maps to the same conflict")
}

func TestLoginSuccess(t *testing.T) {
	users := newStubUsers()
	user := users.add(&models.User{
		Name:         "Amina",
		Email:        "amina@example.com",
		PasswordHash: hashFor(t, "s3cret-pass"),
		IsActive:     true,
	})
	svc, sessions := newIdentityService(t, users)

	dto, token, err := svc.Login(context.Background(), LoginInput{
		Email:    "AMINA@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, dto.ID)
	require.NotEmpty(t, token)

	_, stamped := users.lastLogin[user.ID]
	assert.True(t, stamped, "successful login records last_login_at")

	sess, err := sessions.Get(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, user.ID, sess.UserID)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	users := newStubUsers()
	users.add(&models.User{
		Email:        "amina@example.com",
		PasswordHash: hashFor(t, "correct-pass"),
		IsActive:     true,
	})
	users.add(&models.User{
		Email:        "inactive@example.com",
		PasswordHash: hashFor(t, "correct-pass"),
		IsActive:     false,
	})
	svc, _ := newIdentityService(t, users)

	cases := []LoginInput{
		{Email: "missing@example.com", Password: "correct-pass"},
		{Email: "amina@example.com", Password: "wrong-pass"},
		{Email: "inactive@example.com", Password: "correct-pass"},
	}
	for _, input := range cases {
		_, _, err := svc.Login(context.Background(), input)
		typed := errors.As(err)
		require.NotNil(t, typed, "login with %q should fail", input.Email)
		assert.Equal(t, errors.CodeUnauthorized, typed.Code())
		assert.Equal(t, "invalid email or password", typed.Message())
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	users := newStubUsers()
	users.add(&models.User{
		Email:        "amina@example.com",
		PasswordHash: hashFor(t, "s3cret-pass"),
		IsActive:     true,
	})
	svc, sessions := newIdentityService(t, users)

	_, token, err := svc.Login(context.Background(), LoginInput{Email: "amina@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	sess, err := sessions.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, svc.Logout(context.Background(), token), "repeat logout succeeds")
	require.NoError(t, svc.Logout(context.Background(), ""), "anonymous logout succeeds")
}

func TestCurrentUser(t *testing.T) {
	users := newStubUsers()
	active := users.add(&models.User{Name: "Amina", Email: "amina@example.com", IsActive: true})
	inactive := users.add(&models.User{Name: "Gone", Email: "gone@example.com", IsActive: false})
	svc, _ := newIdentityService(t, users)

	dto, err := svc.CurrentUser(context.Background(), &session.Session{UserID: active.ID})
	require.NoError(t, err)
	require.NotNil(t, dto)
	assert.Equal(t, "Amina", dto.Name)

	dto, err = svc.CurrentUser(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, dto, "anonymous resolves to nil, not an error")

	dto, err = svc.CurrentUser(context.Background(), &session.Session{UserID: inactive.ID})
	require.NoError(t, err)
	assert.Nil(t, dto, "deactivated accounts resolve to nil")

	dto, err = svc.CurrentUser(context.Background(), &session.Session{UserID: 9999})
	require.NoError(t, err)
	assert.Nil(t, dto, "stale sessions resolve to nil")
}
