package ports

import (
	"context"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// ClientService defines use-case operations for clients.
type ClientService interface {
	Create(ctx context.Context, actorID string, fields domain.ClientFields) (*domain.Client, error)
	List(ctx context.Context, search string) ([]*domain.Client, error)
	// Get returns the client with its payment statistics.
	Get(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, actorID, id string, fields domain.ClientFields) error
	Deactivate(ctx context.Context, actorID, id string) error
}

// CreatePaymentInput carries all data needed to create a new payment.
type CreatePaymentInput struct {
	ClientID    string
	Amount      float64
	DueDate     domain.Date
	Description string
}

// ListPaymentsInput carries the query parameters of the payment listing.
type ListPaymentsInput struct {
	ClientID string
	Status   string
	Month    string
}

// PaymentService defines use-case operations for payments.
type PaymentService interface {
	Create(ctx context.Context, actorID string, in CreatePaymentInput) (*domain.Payment, error)
	List(ctx context.Context, in ListPaymentsInput) ([]*domain.Payment, error)
	ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error)
	Pay(ctx context.Context, actorID, id, method string) error
	Cancel(ctx context.Context, actorID, id string) error
	Delete(ctx context.Context, actorID, id string) error
}

// ReportService defines the reporting use cases.
type ReportService interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	Overdue(ctx context.Context) ([]*domain.OverdueClient, error)
	PaidThisMonth(ctx context.Context) ([]*domain.PaidClient, error)
}
