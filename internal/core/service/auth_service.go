package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/api/metrics"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// AuthService implements the login flow and token verification.
type AuthService struct {
	users   ports.UserRepository
	history ports.HistoryRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenService
	logger  zerolog.Logger

	uniformErrors bool
	now           func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithUniformLoginErrors reports unknown emails as ErrInvalidCredentials so
// callers cannot tell which half of the pair was wrong.
func WithUniformLoginErrors(enabled bool) AuthOption {
	return func(s *AuthService) { s.uniformErrors = enabled }
}

// WithAuthClock overrides the clock used to stamp last access.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	history ports.HistoryRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	logger zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:   users,
		history: history,
		hasher:  hasher,
		tokens:  tokens,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials of an active user. On success it stamps the
// user's last access, appends a LOGIN audit entry and issues a token. A
// failed attempt has no side effects.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindActiveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues(metrics.ResultUserNotFound).Inc()
			s.logger.Info().Str("email", email).Msg("login rejected: unknown or inactive user")
			if s.uniformErrors {
				return nil, domain.ErrInvalidCredentials
			}
			return nil, domain.ErrUserNotFound
		}
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash unusable")
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalidCredentials).Inc()
		s.logger.Info().Str("user_id", user.ID).Msg("login rejected: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.TouchLastAccess(ctx, user.ID, s.now()); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("record last access: %w", err)
	}
	entry := &domain.HistoryEntry{
		UserID:      user.ID,
		Action:      domain.ActionLogin,
		Description: fmt.Sprintf("Usuário %s fez login", user.Name),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("record login: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultError).Inc()
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{Token: token, User: user.Summary()}, nil
}

// Verify validates a bearer token and returns its claims.
func (s *AuthService) Verify(_ context.Context, token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.tokens.Validate(token)
}
