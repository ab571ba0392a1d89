package service

import (
	"context"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// AdminSeed is the initial administrator account, read from the
// environment by cmd/createadmin.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
}

// BootstrapAdmin creates the first administrator so a fresh deployment
// has a way into the admin surface. It refuses to run when an admin
// already exists; later promotions go through the role endpoint.
func BootstrapAdmin(ctx context.Context, users repository.UserRepository, cfg config.AuthConfig, seed AdminSeed) (*domain.User, error) {
	seed.Email = normalizeEmail(seed.Email)
	if seed.Name == "" || seed.Email == "" || seed.Password == "" {
		return nil, apperrors.NewValidationError("ADMIN_NAME, ADMIN_EMAIL and ADMIN_PASS are required", nil)
	}
	if err := auth.PolicyFromConfig(cfg).Validate(seed.Password); err != nil {
		return nil, apperrors.NewPolicyError(err.Error())
	}

	adminRole := domain.RoleAdmin
	existing, err := users.List(ctx, &adminRole, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.NewConflict("An admin account already exists")
	}

	hash, err := auth.NewPasswordHasher(cfg.BcryptCost).Hash(seed.Password)
	if err != nil {
		return nil, err
	}

	admin := &domain.User{
		Name:         seed.Name,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsVerified:   true,
	}
	if err := users.Create(ctx, admin); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("User already exists")
		}
		return nil, err
	}
	return admin, nil
}
