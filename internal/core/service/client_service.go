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

// ClientService manages the customers whose payments are tracked.
type ClientService struct {
	clients  ports.ClientRepository
	payments ports.PaymentRepository
	cache    ports.StatsCache
	audit    auditor
	logger   zerolog.Logger
}

// NewClientService wires the client use cases. cache may be nil.
func NewClientService(
	clients ports.ClientRepository,
	payments ports.PaymentRepository,
	history ports.HistoryRepository,
	cache ports.StatsCache,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{
		clients:  clients,
		payments: payments,
		cache:    cache,
		audit:    auditor{repo: history, logger: logger},
		logger:   logger,
	}
}

func (s *ClientService) Create(ctx context.Context, actorID string, fields domain.ClientFields) (*domain.Client, error) {
	fields = normalizeClientFields(fields)
	if fields.Name == "" {
		return nil, fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidInput)
	}

	created, err := s.clients.Create(ctx, &domain.Client{
		Name:      fields.Name,
		Email:     fields.Email,
		Phone:     fields.Phone,
		CPF:       fields.CPF,
		Address:   fields.Address,
		Notes:     fields.Notes,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	invalidateStats(ctx, s.cache, s.logger)
	s.audit.record(ctx, actorID, domain.ActionCreateClient, fmt.Sprintf("Cliente %s cadastrado", created.Name))
	s.logger.Info().Str("client_id", created.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) List(ctx context.Context, search string) ([]*domain.Client, error) {
	return s.clients.List(ctx, strings.TrimSpace(search))
}

// Get returns the client together with its payment statistics.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.payments.Stats(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	client.Stats = stats
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, actorID, id string, fields domain.ClientFields) error {
	fields = normalizeClientFields(fields)
	if fields.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", domain.ErrInvalidInput)
	}
	if err := s.clients.Update(ctx, id, fields); err != nil {
		return err
	}

	s.audit.record(ctx, actorID, domain.ActionUpdateClient, fmt.Sprintf("Cliente %s atualizado", fields.Name))
	return nil
}

// Deactivate soft-deletes a client. Its payments are kept.
func (s *ClientService) Deactivate(ctx context.Context, actorID, id string) error {
	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clients.Deactivate(ctx, id); err != nil {
		return err
	}

	invalidateStats(ctx, s.cache, s.logger)
	s.audit.record(ctx, actorID, domain.ActionDeleteClient, fmt.Sprintf("Cliente %s desativado", client.Name))
	s.logger.Info().Str("client_id", id).Msg("client deactivated")
	return nil
}

func normalizeClientFields(f domain.ClientFields) domain.ClientFields {
	return domain.ClientFields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		CPF:     strings.TrimSpace(f.CPF),
		Address: strings.TrimSpace(f.Address),
		Notes:   strings.TrimSpace(f.Notes),
	}
}
