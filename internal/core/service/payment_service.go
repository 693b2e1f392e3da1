package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NatanCav/FlowFit/internal/api/metrics"
	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// PaymentService manages payments and keeps the dashboard cache coherent
// with every write.
type PaymentService struct {
	payments ports.PaymentRepository
	clients  ports.ClientRepository
	cache    ports.StatsCache
	audit    auditor
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPaymentService(
	payments ports.PaymentRepository,
	clients ports.ClientRepository,
	history ports.HistoryRepository,
	cache ports.StatsCache,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		payments: payments,
		clients:  clients,
		cache:    cache,
		audit:    auditor{repo: history, logger: logger},
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create records a new pending payment for an active client.
func (s *PaymentService) Create(ctx context.Context, actorID string, in ports.CreatePaymentInput) (*domain.Payment, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: valor deve ser positivo", domain.ErrInvalidInput)
	}
	if in.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: vencimento é obrigatório", domain.ErrInvalidInput)
	}

	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if !client.Active {
		return nil, domain.ErrClientNotFound
	}

	created, err := s.payments.Create(ctx, &domain.Payment{
		ClientID:    client.ID,
		Amount:      in.Amount,
		DueDate:     in.DueDate,
		Status:      domain.PaymentPending,
		Description: strings.TrimSpace(in.Description),
		RecordedBy:  actorID,
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", client.ID).Msg("failed to create payment")
		return nil, err
	}

	s.invalidate(ctx)
	s.audit.record(ctx, actorID, domain.ActionCreatePayment,
		fmt.Sprintf("Pagamento de R$ %.2f criado para %s", created.Amount, client.Name))
	s.logger.Info().Str("payment_id", created.ID).Str("client_id", client.ID).Msg("payment created")
	return created, nil
}

func (s *PaymentService) List(ctx context.Context, in ports.ListPaymentsInput) ([]*domain.Payment, error) {
	filter := ports.ListPaymentsFilter{ClientID: in.ClientID, Month: in.Month}
	if in.Status != "" {
		status := domain.PaymentStatus(in.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status %q inválido", domain.ErrInvalidInput, in.Status)
		}
		filter.Status = status
	}
	if in.Month != "" {
		if _, _, err := domain.MonthRange(in.Month); err != nil {
			return nil, err
		}
	}
	return s.payments.List(ctx, filter)
}

func (s *PaymentService) ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.payments.ClientHistory(ctx, clientID)
}

// Pay settles an open payment today. An empty method is stored as
// domain.DefaultPaymentMethod.
func (s *PaymentService) Pay(ctx context.Context, actorID, id, method string) error {
	payment, err := s.transition(ctx, id, domain.PaymentPaid)
	if err != nil {
		return err
	}

	method = strings.TrimSpace(method)
	if method == "" {
		method = domain.DefaultPaymentMethod
	}
	if err := s.payments.MarkPaid(ctx, id, method, domain.NewDate(s.now())); err != nil {
		return err
	}

	metrics.PaymentsRegisteredTotal.WithLabelValues(metrics.PaymentMethod(method)).Inc()
	s.invalidate(ctx)
	s.audit.record(ctx, actorID, domain.ActionRegisterPayment,
		fmt.Sprintf("Pagamento de R$ %.2f registrado via %s", payment.Amount, method))
	return nil
}

func (s *PaymentService) Cancel(ctx context.Context, actorID, id string) error {
	payment, err := s.transition(ctx, id, domain.PaymentCancelled)
	if err != nil {
		return err
	}
	if err := s.payments.SetStatus(ctx, id, domain.PaymentCancelled); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.record(ctx, actorID, domain.ActionCancelPayment,
		fmt.Sprintf("Pagamento de R$ %.2f cancelado", payment.Amount))
	return nil
}

// Delete permanently removes a payment.
func (s *PaymentService) Delete(ctx context.Context, actorID, id string) error {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.audit.record(ctx, actorID, domain.ActionDeletePayment,
		fmt.Sprintf("Pagamento de R$ %.2f excluído", payment.Amount))
	return nil
}

// transition loads the payment and checks that it may move to next. The
// repository repeats the check atomically when writing, so a change that
// lands in between still fails with ErrInvalidTransition.
func (s *PaymentService) transition(ctx context.Context, id string, next domain.PaymentStatus) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(next) {
		s.logger.Warn().Str("payment_id", id).Str("from", string(payment.Status)).Str("to", string(next)).Msg("invalid status transition")
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, payment.Status, next)
	}
	return payment, nil
}

func (s *PaymentService) invalidate(ctx context.Context) {
	invalidateStats(ctx, s.cache, s.logger)
}
