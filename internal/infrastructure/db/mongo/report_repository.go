package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// ReportRepository implements ports.ReportRepository with aggregation
// pipelines over the clients and payments collections.
type ReportRepository struct {
	clients  *mongo.Collection
	payments *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		clients:  db.Collection(collectionClients),
		payments: db.Collection(collectionPayments),
	}
}

// openStatuses are the states that still represent money to be received.
var openStatuses = []domain.PaymentStatus{domain.PaymentPending, domain.PaymentOverdue}

// Dashboard splits open payments into in-time (due >= today) and overdue
// (due < today), and sums what was received in today's month.
func (r *ReportRepository) Dashboard(ctx context.Context, today domain.Date) (*domain.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	totalClients, err := r.clients.CountDocuments(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("count clients: %w", err)
	}

	monthStart, monthEnd, err := domain.MonthRange(today.Format(domain.MonthLayout))
	if err != nil {
		return nil, err
	}

	inTime := and(statusIs(openStatuses...), bson.D{{Key: "$gte", Value: bson.A{"$due_date", today.Time}}})
	overdue := and(statusIs(openStatuses...), bson.D{{Key: "$lt", Value: bson.A{"$due_date", today.Time}}})
	paidInMonth := and(
		statusIs(domain.PaymentPaid),
		bson.D{{Key: "$gte", Value: bson.A{"$paid_at", monthStart.Time}}},
		bson.D{{Key: "$lt", Value: bson.A{"$paid_at", monthEnd.Time}}},
	)

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "pending", Value: sumIf(inTime, 1)},
			{Key: "overdue", Value: sumIf(overdue, 1)},
			{Key: "pending_amount", Value: sumIf(inTime, "$amount")},
			{Key: "overdue_amount", Value: sumIf(overdue, "$amount")},
			{Key: "received", Value: sumIf(paidInMonth, "$amount")},
		}}},
	}

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}

	var rows []struct {
		Pending       int64   `bson:"pending"`
		Overdue       int64   `bson:"overdue"`
		PendingAmount float64 `bson:"pending_amount"`
		OverdueAmount float64 `bson:"overdue_amount"`
		Received      float64 `bson:"received"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode dashboard totals: %w", err)
	}

	paidClients, err := r.payments.Distinct(ctx, "client_id", bson.M{
		"status":  string(domain.PaymentPaid),
		"paid_at": bson.M{"$gte": monthStart.Time, "$lt": monthEnd.Time},
	})
	if err != nil {
		return nil, fmt.Errorf("distinct paying clients: %w", err)
	}

	stats := &domain.DashboardStats{
		TotalClients:       totalClients,
		ClientsPaidInMonth: int64(len(paidClients)),
	}
	if len(rows) > 0 {
		row := rows[0]
		stats.PendingPayments = row.Pending
		stats.OverduePayments = row.Overdue
		stats.PendingAmount = row.PendingAmount
		stats.OverdueAmount = row.OverdueAmount
		stats.ReceivedThisMonth = row.Received
	}
	stats.OpenAmount = stats.PendingAmount + stats.OverdueAmount
	return stats, nil
}

type clientTotalsRow struct {
	ClientID primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Phone    string             `bson:"phone"`
	Email    string             `bson:"email"`
	Count    int64              `bson:"count"`
	Total    float64            `bson:"total"`
	Date     time.Time          `bson:"date"`
}

// Overdue lists clients holding open payments past due, oldest debt first.
func (r *ReportRepository) Overdue(ctx context.Context, today domain.Date) ([]*domain.OverdueClient, error) {
	match := bson.D{
		{Key: "status", Value: bson.D{{Key: "$in", Value: statusValues(openStatuses)}}},
		{Key: "due_date", Value: bson.D{{Key: "$lt", Value: today.Time}}},
	}
	rows, err := r.clientTotals(ctx, match, "$min", "$due_date", bson.D{{Key: "date", Value: 1}})
	if err != nil {
		return nil, fmt.Errorf("overdue clients: %w", err)
	}

	out := make([]*domain.OverdueClient, len(rows))
	for i, row := range rows {
		out[i] = &domain.OverdueClient{
			ClientID:      row.ClientID.Hex(),
			Name:          row.Name,
			Phone:         row.Phone,
			Email:         row.Email,
			OpenCount:     row.Count,
			TotalAmount:   row.Total,
			OldestDueDate: domain.NewDate(row.Date.UTC()),
		}
	}
	return out, nil
}

// PaidInMonth lists clients that settled payments in month ("YYYY-MM"), by name.
func (r *ReportRepository) PaidInMonth(ctx context.Context, month string) ([]*domain.PaidClient, error) {
	start, end, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}

	match := bson.D{
		{Key: "status", Value: string(domain.PaymentPaid)},
		{Key: "paid_at", Value: bson.D{{Key: "$gte", Value: start.Time}, {Key: "$lt", Value: end.Time}}},
	}
	rows, err := r.clientTotals(ctx, match, "$max", "$paid_at", bson.D{{Key: "name", Value: 1}})
	if err != nil {
		return nil, fmt.Errorf("paying clients: %w", err)
	}

	out := make([]*domain.PaidClient, len(rows))
	for i, row := range rows {
		out[i] = &domain.PaidClient{
			ClientID:    row.ClientID.Hex(),
			Name:        row.Name,
			Phone:       row.Phone,
			PaidCount:   row.Count,
			TotalAmount: row.Total,
			LastPaidAt:  domain.NewDate(row.Date.UTC()),
		}
	}
	return out, nil
}

// clientTotals groups matching payments per client, reducing dateField with
// dateOp, then joins the client document.
func (r *ReportRepository) clientTotals(ctx context.Context, match bson.D, dateOp, dateField string, sort bson.D) ([]clientTotalsRow, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$client_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "date", Value: bson.D{{Key: dateOp, Value: dateField}}},
		}}},
		lookupOne(collectionClients, "_id", "client"),
		{{Key: "$unwind", Value: "$client"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "name", Value: "$client.name"},
			{Key: "phone", Value: "$client.phone"},
			{Key: "email", Value: "$client.email"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "client", Value: 0}}}},
		{{Key: "$sort", Value: sort}},
	}

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []clientTotalsRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func statusValues(statuses []domain.PaymentStatus) bson.A {
	values := make(bson.A, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return values
}
