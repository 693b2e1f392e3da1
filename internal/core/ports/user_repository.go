package ports

import (
	"context"
	"time"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// UserRepository is the credential store. Every read except FindByID
// filters on the active flag.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// Returns domain.ErrDuplicateEmail on an email collision.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindActiveByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListActive(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) error
	Deactivate(ctx context.Context, id string) error
	TouchLastAccess(ctx context.Context, id string, at time.Time) error
}

// HistoryRepository is the append-only audit log.
type HistoryRepository interface {
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}

// PasswordHasher produces and checks one-way salted password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs identity claims into a bearer token.
type TokenIssuer interface {
	Issue(userID, email string, role domain.Role) (string, error)
}

// TokenValidator checks a bearer token and returns its claims.
// Errors are domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenValidator interface {
	Validate(token string) (*domain.Claims, error)
}

// TokenService is the full token lifecycle used by the login flow.
type TokenService interface {
	TokenIssuer
	TokenValidator
}
