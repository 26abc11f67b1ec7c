package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/credtrailhq/credtrail/internal/domain"
	"github.com/credtrailhq/credtrail/internal/models"
)

// UserStore defines the data access methods UserService depends on. The
// create path takes the bcrypt hash rather than the raw password so the
// store never sees plaintext.
type UserStore interface {
	ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest, passwordHash string, actor models.Actor) (*models.User, error)
	UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor) (*models.User, error)
}

// Compile-time check: *UserService must satisfy domain.UserService.
var _ domain.UserService = (*UserService)(nil)

// UserService manages dashboard accounts. Passwords are hashed here;
// the last-active-admin guard lives in the store where it can hold a
// row lock.
type UserService struct {
	store UserStore
	log   *logrus.Logger
}

// NewUserService creates a UserService.
func NewUserService(store UserStore, log *logrus.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// ListUsers returns a filtered, paginated account list (pass-through).
func (s *UserService) ListUsers(ctx context.Context, opts models.UserQueryOpts) ([]models.User, bool, error) {
	return s.store.ListUsers(ctx, opts)
}

// GetUser returns a single account by ID (pass-through).
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUser(ctx, id)
}

// CreateUser hashes the password and creates the account.
func (s *UserService) CreateUser(
	ctx context.Context, req models.CreateUserRequest, actor models.Actor,
) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, req, string(hash), actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "user.create", u.ID, actor)

	return u, nil
}

// UpdateUser changes an account's name, role or active flag. Demoting or
// deactivating the last active admin fails with models.ErrLastAdmin.
func (s *UserService) UpdateUser(
	ctx context.Context, id string, req models.UpdateUserRequest, actor models.Actor,
) (*models.User, error) {
	u, err := s.store.UpdateUser(ctx, id, req, actor)
	if err != nil {
		return nil, err
	}

	auditLog(s.log, "user.update", u.ID, actor)

	return u, nil
}
