package auth

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/shop-service/internal/config"
)

var (
	// ErrEmptyPassword is returned when hashing is attempted on empty input.
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")
	// ErrCorruptDigest is returned when a stored hash cannot be parsed.
	ErrCorruptDigest = errors.New("corrupt password digest")
)

// PasswordHasher wraps bcrypt with a configured cost. The bcrypt output
// encodes cost and salt, so verification is self-describing.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher, clamping cost into bcrypt's valid range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a salted one-way digest of the plaintext.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifies a plaintext against a stored digest. Mismatch and
// malformed digests are distinct error values; only the latter points
// at data corruption.
func (h *PasswordHasher) Compare(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("%w: %v", ErrCorruptDigest, err)
	}
}

// PasswordPolicy enforces minimum strength on every password-setting path.
type PasswordPolicy struct {
	MinLength   int
	NeedsUpper  bool
	NeedsLower  bool
	NeedsDigit  bool
	NeedsSymbol bool
}

// PolicyFromConfig maps auth configuration onto a policy.
func PolicyFromConfig(cfg config.AuthConfig) PasswordPolicy {
	minLen := cfg.PasswordMinLength
	if minLen <= 0 {
		minLen = 8
	}
	return PasswordPolicy{
		MinLength:   minLen,
		NeedsUpper:  cfg.PasswordNeedsUpper,
		NeedsLower:  cfg.PasswordNeedsLower,
		NeedsDigit:  cfg.PasswordNeedsDigit,
		NeedsSymbol: cfg.PasswordNeedsSymbol,
	}
}

// Validate returns a user-facing error naming the first unmet requirement.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters long", p.MinLength)
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if p.NeedsUpper && !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if p.NeedsLower && !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if p.NeedsDigit && !hasDigit {
		return errors.New("password must contain a digit")
	}
	if p.NeedsSymbol && !hasSymbol {
		return errors.New("password must contain a symbol")
	}
	return nil
}
