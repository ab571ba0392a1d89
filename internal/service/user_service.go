package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// UserService handles profile and account administration.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetProfile loads a user by id.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies partial profile edits. Changing email re-checks
// uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email, phone string) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != user.Email {
			if _, err := s.users.GetByEmail(ctx, email); err == nil {
				return nil, apperrors.NewConflict("Email already exists")
			} else if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			user.Email = email
		}
	}
	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpsertAddress adds or replaces an address. Marking one default clears
// the flag on the others.
func (s *UserService) UpsertAddress(ctx context.Context, userID string, address domain.Address) ([]domain.Address, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if address.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}

	replaced := false
	for i, existing := range user.Addresses {
		if existing.Street == address.Street && existing.City == address.City && existing.ZipCode == address.ZipCode {
			user.Addresses[i] = address
			replaced = true
			break
		}
	}
	if !replaced {
		user.Addresses = append(user.Addresses, address)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Addresses, nil
}

// ListUsers returns accounts for the admin view.
func (s *UserService) ListUsers(ctx context.Context, role *domain.Role, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, role, limit, offset)
}

// UpdateRole sets a user's role. Outstanding access tokens keep the old
// role embedded until they expire.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("Role must be either user or admin", nil)
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
