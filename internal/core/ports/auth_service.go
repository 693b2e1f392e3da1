package ports

import (
	"context"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	User  domain.UserSummary
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Verify(ctx context.Context, token string) (*domain.Claims, error)
}

// CreateUserInput carries the data for a new account.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries a profile change. Password is optional.
type UpdateUserInput struct {
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// UserService manages accounts. Every mutation is attributed to actorID
// in the audit log.
type UserService interface {
	Create(ctx context.Context, actorID string, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actorID, id string, in UpdateUserInput) error
	Deactivate(ctx context.Context, actorID, id string) error
}

// HistoryService exposes the audit trail.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error)
}
