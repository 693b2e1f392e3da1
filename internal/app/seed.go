package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
	"github.com/NatanCav/FlowFit/internal/pkg/config"
)

// seedAdmin creates the default administrator when no active account owns
// the configured email. It reports whether an account was created.
func seedAdmin(ctx context.Context, users ports.UserRepository, hasher ports.PasswordHasher, admin config.AdminConfig, log zerolog.Logger) (bool, error) {
	if admin.Email == "" || admin.Password == "" {
		return false, nil
	}

	_, err := users.FindActiveByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	_, err = users.Create(ctx, &domain.User{
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		// A deactivated account still owns the email.
		log.Warn().Str("email", admin.Email).Msg("default admin exists but is inactive")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("email", admin.Email).Msg("default admin created")
	return true, nil
}
