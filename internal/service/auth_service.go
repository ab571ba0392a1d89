package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/events"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/repository"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// AuthService coordinates registration, login, refresh and the
// password-reset and email-verification flows.
type AuthService struct {
	users       repository.UserRepository
	tokens      repository.ActionTokenRepository
	tokenMgr    *auth.TokenManager
	hasher      *auth.PasswordHasher
	policy      auth.PasswordPolicy
	mailer      Mailer
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	hashSem     *semaphore.Weighted
	resetTTL    time.Duration
	verifyTTL   time.Duration
	frontendURL string
}

// AuthDependencies encapsulates collaborator requirements for the auth service.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	ActionTokenRepo repository.ActionTokenRepository
	Mailer          Mailer
	Dispatcher      events.Dispatcher
	Metrics         *observability.Metrics
	Logger          *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth)
	if err != nil {
		return nil, err
	}

	workers := cfg.Auth.HashWorkers
	if workers <= 0 {
		workers = 4
	}

	return &AuthService{
		users:       deps.UserRepo,
		tokens:      deps.ActionTokenRepo,
		tokenMgr:    tokenMgr,
		hasher:      auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		policy:      auth.PolicyFromConfig(cfg.Auth),
		mailer:      deps.Mailer,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		hashSem:     semaphore.NewWeighted(int64(workers)),
		resetTTL:    cfg.Auth.ResetTokenTTL,
		verifyTTL:   cfg.Auth.VerifyTokenTTL,
		frontendURL: strings.TrimRight(cfg.App.FrontendURL, "/"),
	}, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account, issues a session pair and queues the
// verification email.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, auth.TokenPair, error) {
	email = normalizeEmail(email)

	if err := s.policy.Validate(password); err != nil {
		s.recordFlow("register", "weak_password")
		return nil, auth.TokenPair{}, apperrors.NewPolicyError(err.Error())
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		s.recordFlow("register", "duplicate_email")
		return nil, auth.TokenPair{}, apperrors.NewConflict("User already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, auth.TokenPair{}, err
	}

	hash, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check and
		// hit the unique email constraint instead.
		if isUniqueViolation(err) {
			s.recordFlow("register", "duplicate_email")
			return nil, auth.TokenPair{}, apperrors.NewConflict("User already exists")
		}
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.issuePair(user.ID, user.Role)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.publishRegistered(ctx, user)
	s.recordFlow("register", "ok")
	return user, pair, nil
}

// Login authenticates a user by email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFlow("login", "invalid_credentials")
			return nil, auth.TokenPair{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, auth.TokenPair{}, err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.recordFlow("login", "invalid_credentials")
			return nil, auth.TokenPair{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.issuePair(user.ID, user.Role)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	s.recordFlow("login", "ok")
	return user, pair, nil
}

// Refresh rotates the session: a valid refresh token yields a brand-new
// access+refresh pair. Nothing server-side tracks the old refresh
// token; concurrent refreshes race and the loser re-authenticates.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (auth.TokenPair, error) {
	if refreshToken == "" {
		s.recordFlow("refresh", "missing")
		return auth.TokenPair{}, apperrors.NewUnauthorized("No refresh token provided")
	}

	claims, err := s.tokenMgr.Parse(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			s.recordFlow("refresh", "expired")
			return auth.TokenPair{}, apperrors.NewUnauthorized("Refresh Token Expired")
		default:
			s.recordFlow("refresh", "invalid")
			return auth.TokenPair{}, apperrors.NewUnauthorized("Invalid Refresh Token")
		}
	}

	pair, err := s.issuePair(claims.UserID, claims.Role)
	if err != nil {
		return auth.TokenPair{}, err
	}
	s.recordFlow("refresh", "ok")
	return pair, nil
}

// ForgotPassword issues a reset token and mails the reset link. When
// delivery fails, the token is deleted again so no valid link the user
// never received stays redeemable.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFlow("forgot_password", "unknown_email")
			return apperrors.NewNotFound("User")
		}
		return err
	}

	token, err := s.tokens.Issue(ctx, user.ID, domain.ActionTokenPasswordReset, s.resetTTL)
	if err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token.Token)
	body := fmt.Sprintf(`
    <h1>Password Reset Request</h1>
    <p>You requested to reset your password. Click the link below:</p>
    <a href="%s">%s</a>
    <p>This link will expire in 1 hour.</p>`, resetURL, resetURL)

	if err := s.mailer.Send(ctx, user.Email, "Password Reset Request", body); err != nil {
		if delErr := s.tokens.DeleteByToken(ctx, token.Token); delErr != nil {
			s.logger.Error("failed to delete unreachable reset token", zap.Error(delErr))
		}
		s.recordFlow("forgot_password", "delivery_failed")
		return apperrors.NewDependencyError("Email could not be sent", err)
	}

	s.recordFlow("forgot_password", "ok")
	return nil
}

// ResetPassword redeems a reset token and stores the new password. The
// token is consumed exactly once; expired, wrong-kind and unknown
// tokens all produce the same response.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if err := s.policy.Validate(newPassword); err != nil {
		s.recordFlow("reset_password", "weak_password")
		return apperrors.NewPolicyError(err.Error())
	}

	userID, err := s.tokens.Redeem(ctx, tokenStr, domain.ActionTokenPasswordReset)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFlow("reset_password", "invalid_token")
			return apperrors.NewValidationError("Invalid or expired token", nil)
		}
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return err
	}

	hash, err := s.hashPassword(ctx, newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.recordFlow("reset_password", "ok")
	return nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if err := s.policy.Validate(newPassword); err != nil {
		s.recordFlow("update_password", "weak_password")
		return apperrors.NewPolicyError(err.Error())
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.recordFlow("update_password", "wrong_current")
			return apperrors.NewUnauthorized("Current password is incorrect")
		}
		return err
	}

	hash, err := s.hashPassword(ctx, newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.recordFlow("update_password", "ok")
	return nil
}

// VerifyEmail redeems a verification token and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, tokenStr string) error {
	userID, err := s.tokens.Redeem(ctx, tokenStr, domain.ActionTokenEmailVerification)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFlow("verify_email", "invalid_token")
			return apperrors.NewValidationError("Invalid or expired token", nil)
		}
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("User")
		}
		return err
	}

	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.recordFlow("verify_email", "ok")
	return nil
}

func (s *AuthService) issuePair(userID string, role domain.Role) (auth.TokenPair, error) {
	access, accessExp, err := s.tokenMgr.Issue(userID, role, domain.TokenKindAccess)
	if err != nil {
		return auth.TokenPair{}, err
	}
	refresh, refreshExp, err := s.tokenMgr.Issue(userID, role, domain.TokenKindRefresh)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return auth.TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// hashPassword funnels bcrypt work through a bounded semaphore so
// hashing bursts cannot starve request dispatch.
func (s *AuthService) hashPassword(ctx context.Context, plain string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)
	return s.hasher.Hash(plain)
}

// publishRegistered issues the verification token and hands delivery to
// the notification side. Failures are logged, not surfaced: the account
// exists either way and verification can be re-requested.
func (s *AuthService) publishRegistered(ctx context.Context, user *domain.User) {
	if s.dispatcher == nil {
		return
	}

	payload := events.UserRegisteredPayload{Name: user.Name, Email: user.Email}
	token, err := s.tokens.Issue(ctx, user.ID, domain.ActionTokenEmailVerification, s.verifyTTL)
	if err != nil {
		s.logger.Warn("failed to issue verification token", zap.Error(err))
	} else {
		payload.VerifyURL = fmt.Sprintf("%s/verify-email/%s", s.frontendURL, token.Token)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserRegistered,
		UserID:    user.ID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func (s *AuthService) recordFlow(flow, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordAuthFlow(flow, outcome)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Postgres unique_violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
