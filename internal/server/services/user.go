// Package services contains server-side business logic on top of the
// credential and scheduling stores. UserService covers registration, login
// and account administration; AppointmentService covers booking.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/cryptox"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
	"github.com/dmitrijs2005/apptbook/internal/server/repositories/repomanager"
)

// UserService provides account operations. Username check-then-write
// sequences are serialized per username.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      *cryptox.Hasher
	validate    *validator.Validate
	locks       *keyedMutex
}

// NewUserService constructs a UserService.
func NewUserService(m repomanager.RepositoryManager, h *cryptox.Hasher) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      h,
		validate:    newValidator(),
		locks:       newKeyedMutex(),
	}
}

// Register creates a user with a fresh salt. An empty role means USER.
// Returns ErrorValidation for malformed input and ErrorAlreadyExists for a
// taken username.
func (s *UserService) Register(ctx context.Context, userName, password string, role models.Role) (*models.User, error) {
	if err := s.validate.Struct(credentials{UserName: userName, Password: password}); err != nil {
		return nil, validationError(err)
	}
	if role == "" {
		role = models.RoleUser
	}

	unlock := s.locks.Lock(userName)
	defer unlock()

	repo := s.repomanager.Users()

	_, err := repo.GetByUsername(ctx, userName)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	salt := s.hasher.RandomSalt(common.SaltSize)
	user := &models.User{
		UserName: userName,
		Salt:     salt,
		Digest:   s.hasher.Hash(password, salt),
		Role:     role,
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the password and returns the user. An unknown user and a
// wrong password both yield ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*models.User, error) {
	user, err := s.repomanager.Users().GetByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the timing of a miss close to that of a hit
			s.hasher.Hash(password, s.hasher.RandomSalt(common.SaltSize))
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}
	if !s.hasher.Verify(password, user.Salt, user.Digest) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Info returns the user with the given id.
func (s *UserService) Info(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users().GetByID(ctx, id)
}

// ListEmployees returns all EMPLOYEE users ordered by id.
func (s *UserService) ListEmployees(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users().ListEmployees(ctx)
}

// ListUsers returns all users ordered by id.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users().List(ctx)
}

// UpdateUser rewrites username and role of user id. A non-empty password is
// re-hashed under a new salt; an empty or blank one keeps the stored credential.
func (s *UserService) UpdateUser(ctx context.Context, id int64, userName, password string, role models.Role) error {
	if err := s.validate.Struct(renameInput{UserName: userName, Password: password}); err != nil {
		return validationError(err)
	}

	unlock := s.locks.Lock(userName)
	defer unlock()

	repo := s.repomanager.Users()

	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.UserName != userName {
		other, err := repo.GetByUsername(ctx, userName)
		switch {
		case err == nil && other.ID != id:
			return common.ErrorAlreadyExists
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error looking up user: %w", err)
		}
	}

	user.UserName = userName
	user.Role = role
	if strings.TrimSpace(password) != "" {
		user.Salt = s.hasher.RandomSalt(common.SaltSize)
		user.Digest = s.hasher.Hash(password, user.Salt)
	}

	return repo.Update(ctx, user)
}

// DeleteUser removes user id together with their appointments.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	return s.repomanager.Users().Delete(ctx, id)
}

// EnsureUser registers userName unless it already exists. It reports whether
// a user was created.
func (s *UserService) EnsureUser(ctx context.Context, userName, password string, role models.Role) (bool, error) {
	_, err := s.Register(ctx, userName, password, role)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return false, nil
	default:
		return false, err
	}
}
