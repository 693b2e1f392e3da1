package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// UserService manages back-office accounts.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	audit  auditor
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, history ports.HistoryRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		audit:  auditor{repo: history, logger: logger},
		logger: logger,
	}
}

func (s *UserService) Create(ctx context.Context, actorID string, in ports.CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nome, email e senha são obrigatórios", domain.ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, actorID, domain.ActionCreateUser, fmt.Sprintf("Usuário %s criado", created.Name))
	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListActive(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update changes the profile of a user. The password is only rehashed when
// a new one is supplied.
func (s *UserService) Update(ctx context.Context, actorID, id string, in ports.UpdateUserInput) error {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" {
		return fmt.Errorf("%w: nome e email são obrigatórios", domain.ErrInvalidInput)
	}
	if !in.Role.Valid() {
		return domain.ErrInvalidRole
	}

	update := domain.UserUpdate{Name: name, Email: email, Role: in.Role}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, id, update); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, domain.ActionUpdateUser, fmt.Sprintf("Usuário %s atualizado", name))
	return nil
}

// Deactivate soft-deletes a user. The account keeps its data but can no
// longer log in.
func (s *UserService) Deactivate(ctx context.Context, actorID, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, domain.ActionDeleteUser, fmt.Sprintf("Usuário %s desativado", user.Name))
	s.logger.Info().Str("user_id", id).Msg("user deactivated")
	return nil
}
