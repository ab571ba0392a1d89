package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shop-service/internal/domain"
)

// ActionToken is a persisted single-use token for out-of-band flows
// (password reset, email verification). It is redeemed (deleted) at
// most once; issuing another token of the same kind replaces it.
type ActionToken struct {
	ID        string
	UserID    string
	Token     string
	Kind      domain.ActionTokenKind
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ActionTokenRepository manages single-use token persistence.
//
// Redeem is the only consumption path and is implemented as a
// conditional delete, so two concurrent redemptions of the same value
// resolve to exactly one winner.
type ActionTokenRepository interface {
	Issue(ctx context.Context, userID string, kind domain.ActionTokenKind, ttl time.Duration) (*ActionToken, error)
	Redeem(ctx context.Context, token string, kind domain.ActionTokenKind) (userID string, err error)
	DeleteByToken(ctx context.Context, token string) error
}

type actionTokenRepository struct {
	pool *pgxpool.Pool
}

// NewActionTokenRepository constructs repository.
func NewActionTokenRepository(pool *pgxpool.Pool) ActionTokenRepository {
	return &actionTokenRepository{pool: pool}
}

// Issue generates a 256-bit random opaque value and persists it.
// The upsert rides the unique (user_id, kind) index, so a new token
// atomically replaces the prior one and concurrent issuances cannot
// leave two live tokens for the same flow.
func (r *actionTokenRepository) Issue(ctx context.Context, userID string, kind domain.ActionTokenKind, ttl time.Duration) (*ActionToken, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}

	token := &ActionToken{
		UserID:    userID,
		Token:     hex.EncodeToString(raw),
		Kind:      kind,
		ExpiresAt: time.Now().Add(ttl),
	}

	const insertQuery = `
        INSERT INTO action_tokens (user_id, token, kind, expires_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id, kind) DO UPDATE
            SET token=EXCLUDED.token, expires_at=EXCLUDED.expires_at, created_at=NOW()
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, insertQuery,
		token.UserID,
		token.Token,
		token.Kind,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt); err != nil {
		return nil, err
	}
	return token, nil
}

// Redeem deletes the token and returns its owner in one statement.
// Absent, expired and wrong-kind values are indistinguishable: all
// surface as pgx.ErrNoRows.
func (r *actionTokenRepository) Redeem(ctx context.Context, tokenStr string, kind domain.ActionTokenKind) (string, error) {
	const query = `
        DELETE FROM action_tokens
        WHERE token=$1 AND kind=$2 AND expires_at > NOW()
        RETURNING user_id`

	var userID string
	if err := r.pool.QueryRow(ctx, query, tokenStr, kind).Scan(&userID); err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteByToken removes a token regardless of expiry. Used as the
// compensation step when the email carrying the token never went out.
func (r *actionTokenRepository) DeleteByToken(ctx context.Context, tokenStr string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM action_tokens WHERE token=$1`, tokenStr)
	return err
}
