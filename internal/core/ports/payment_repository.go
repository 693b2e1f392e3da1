package ports

import (
	"context"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// Create returns domain.ErrDuplicateCPF on a CPF collision.
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	// List returns active clients, optionally filtered by a partial match on name or CPF.
	List(ctx context.Context, search string) ([]*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	Update(ctx context.Context, id string, fields domain.ClientFields) error
	Deactivate(ctx context.Context, id string) error
}

// ListPaymentsFilter carries the optional filters of the payment listing.
type ListPaymentsFilter struct {
	ClientID string               // empty = all clients
	Status   domain.PaymentStatus // empty = any status
	Month    string               // "YYYY-MM" on due date; empty = any month
}

// PaymentRepository defines persistence operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	// List returns payments joined with client data, latest due date first.
	List(ctx context.Context, filter ListPaymentsFilter) ([]*domain.Payment, error)
	// ClientHistory returns every payment of a client joined with the recording user's name.
	ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error)
	Stats(ctx context.Context, clientID string) (*domain.ClientStats, error)
	MarkPaid(ctx context.Context, id, method string, paidAt domain.Date) error
	SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error
	Delete(ctx context.Context, id string) error
}

// ReportRepository runs the aggregation queries behind the dashboard.
type ReportRepository interface {
	Dashboard(ctx context.Context, today domain.Date) (*domain.DashboardStats, error)
	Overdue(ctx context.Context, today domain.Date) ([]*domain.OverdueClient, error)
	PaidInMonth(ctx context.Context, month string) ([]*domain.PaidClient, error)
}

// StatsCache is a short-lived cache in front of the dashboard query.
type StatsCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*domain.DashboardStats, error)
	Set(ctx context.Context, key string, stats *domain.DashboardStats) error
	Invalidate(ctx context.Context) error
}
