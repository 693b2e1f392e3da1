package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/NatanCav/FlowFit/internal/core/domain"
	"github.com/NatanCav/FlowFit/internal/core/ports"
)

// PaymentRepository implements ports.PaymentRepository using MongoDB.
type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(collectionPayments)}
}

type paymentDocument struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"`
	ClientID    primitive.ObjectID  `bson:"client_id"`
	Amount      float64             `bson:"amount"`
	DueDate     time.Time           `bson:"due_date"`
	PaidAt      *time.Time          `bson:"paid_at,omitempty"`
	Status      string              `bson:"status"`
	Description string              `bson:"description,omitempty"`
	Method      string              `bson:"method,omitempty"`
	Notes       string              `bson:"notes,omitempty"`
	RecordedBy  *primitive.ObjectID `bson:"recorded_by,omitempty"`
	CreatedAt   time.Time           `bson:"created_at"`

	// Projected by the listing pipelines.
	ClientName     string `bson:"client_name,omitempty"`
	ClientCPF      string `bson:"client_cpf,omitempty"`
	ClientPhone    string `bson:"client_phone,omitempty"`
	RecordedByName string `bson:"recorded_by_name,omitempty"`
}

func (d *paymentDocument) toDomain() *domain.Payment {
	p := &domain.Payment{
		ID:             d.ID.Hex(),
		ClientID:       d.ClientID.Hex(),
		Amount:         d.Amount,
		DueDate:        domain.NewDate(d.DueDate.UTC()),
		Status:         domain.PaymentStatus(d.Status),
		Description:    d.Description,
		Method:         d.Method,
		Notes:          d.Notes,
		RecordedBy:     hexOrEmpty(d.RecordedBy),
		CreatedAt:      d.CreatedAt.UTC(),
		ClientName:     d.ClientName,
		ClientCPF:      d.ClientCPF,
		ClientPhone:    d.ClientPhone,
		RecordedByName: d.RecordedByName,
	}
	if d.PaidAt != nil {
		paid := domain.NewDate(d.PaidAt.UTC())
		p.PaidAt = &paid
	}
	return p
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	clientID, ok := objectID(p.ClientID)
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	doc := paymentDocument{
		ClientID:    clientID,
		Amount:      p.Amount,
		DueDate:     p.DueDate.Time,
		Status:      string(p.Status),
		Description: p.Description,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.UTC(),
	}
	if recordedBy, ok := objectID(p.RecordedBy); ok {
		doc.RecordedBy = &recordedBy
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain(), nil
}

// List joins each payment with its client's name, CPF and phone.
func (r *PaymentRepository) List(ctx context.Context, f ports.ListPaymentsFilter) ([]*domain.Payment, error) {
	match := bson.D{}
	if f.ClientID != "" {
		oid, ok := objectID(f.ClientID)
		if !ok {
			return []*domain.Payment{}, nil
		}
		match = append(match, bson.E{Key: "client_id", Value: oid})
	}
	if f.Status != "" {
		match = append(match, bson.E{Key: "status", Value: string(f.Status)})
	}
	if f.Month != "" {
		start, end, err := domain.MonthRange(f.Month)
		if err != nil {
			return nil, err
		}
		match = append(match, bson.E{Key: "due_date", Value: bson.D{
			{Key: "$gte", Value: start.Time},
			{Key: "$lt", Value: end.Time},
		}})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		lookupOne(collectionClients, "client_id", "client"),
		{{Key: "$unwind", Value: "$client"}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "client_name", Value: "$client.name"},
			{Key: "client_cpf", Value: "$client.cpf"},
			{Key: "client_phone", Value: "$client.phone"},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "client", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "due_date", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	return r.aggregate(ctx, pipeline)
}

// ClientHistory returns every payment of a client with the name of the
// user who recorded it, when known.
func (r *PaymentRepository) ClientHistory(ctx context.Context, clientID string) ([]*domain.Payment, error) {
	oid, ok := objectID(clientID)
	if !ok {
		return []*domain.Payment{}, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "client_id", Value: oid}}}},
		lookupOne(collectionUsers, "recorded_by", "user"),
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: "recorded_by_name", Value: "$user.name"}}}},
		{{Key: "$project", Value: bson.D{{Key: "user", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "due_date", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	return r.aggregate(ctx, pipeline)
}

func (r *PaymentRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate payments: %w", err)
	}

	var docs []paymentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	payments := make([]*domain.Payment, len(docs))
	for i := range docs {
		payments[i] = docs[i].toDomain()
	}
	return payments, nil
}

// Stats aggregates the payment counters shown on a client's page.
func (r *PaymentRepository) Stats(ctx context.Context, clientID string) (*domain.ClientStats, error) {
	oid, ok := objectID(clientID)
	if !ok {
		return nil, domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "client_id", Value: oid}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "paid", Value: sumIf(statusIs(domain.PaymentPaid), 1)},
			{Key: "pending", Value: sumIf(statusIs(domain.PaymentPending), 1)},
			{Key: "pending_amount", Value: sumIf(statusIs(domain.PaymentPending), "$amount")},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("client stats: %w", err)
	}

	var rows []struct {
		Total         int64   `bson:"total"`
		Paid          int64   `bson:"paid"`
		Pending       int64   `bson:"pending"`
		PendingAmount float64 `bson:"pending_amount"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode client stats: %w", err)
	}

	stats := &domain.ClientStats{}
	if len(rows) > 0 {
		stats.TotalPayments = rows[0].Total
		stats.PaidPayments = rows[0].Paid
		stats.PendingPayments = rows[0].Pending
		stats.PendingAmount = rows[0].PendingAmount
	}
	return stats, nil
}

// MarkPaid settles a payment. Like SetStatus it only matches while the stored
// status may still move to pago.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id, method string, paidAt domain.Date) error {
	return r.transition(ctx, id, domain.PaymentPaid, bson.M{
		"paid_at": paidAt.Time,
		"method":  method,
	})
}

func (r *PaymentRepository) SetStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	return r.transition(ctx, id, status, bson.M{})
}

// Delete permanently removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// transition applies set together with the new status, conditioned on the
// current status being one the state machine allows to move to next. A
// document that exists but no longer matches lost a concurrent change.
func (r *PaymentRepository) transition(ctx context.Context, id string, next domain.PaymentStatus, set bson.M) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrPaymentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set["status"] = string(next)
	filter := bson.M{
		"_id":    oid,
		"status": bson.M{"$in": statusValues(next.TransitionSources())},
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("count payment: %w", err)
	}
	if n == 0 {
		return domain.ErrPaymentNotFound
	}
	return fmt.Errorf("%w: payment %s can no longer move to %s", domain.ErrInvalidTransition, id, next)
}

func (r *PaymentRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("payment indexes: %w", err)
	}
	return nil
}

// --- pipeline helpers ---

func lookupOne(from, localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func statusIs(statuses ...domain.PaymentStatus) bson.D {
	return bson.D{{Key: "$in", Value: bson.A{"$status", statusValues(statuses)}}}
}

func sumIf(cond bson.D, value any) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{cond, value, 0}}}}}
}

func and(conds ...bson.D) bson.D {
	values := make(bson.A, len(conds))
	for i, c := range conds {
		values[i] = c
	}
	return bson.D{{Key: "$and", Value: values}}
}
