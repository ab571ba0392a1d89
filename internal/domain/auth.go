package domain

// TokenKind distinguishes signed session token types. Access and
// refresh tokens are signed with distinct secrets and are never
// interchangeable at verification time.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ActionTokenKind enumerates single-use persisted token purposes.
type ActionTokenKind string

const (
	ActionTokenPasswordReset     ActionTokenKind = "password-reset"
	ActionTokenEmailVerification ActionTokenKind = "email-verification"
)
