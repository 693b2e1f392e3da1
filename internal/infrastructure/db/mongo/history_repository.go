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

// HistoryRepository implements ports.HistoryRepository using MongoDB.
// Entries are only ever inserted.
type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(collectionHistory)}
}

type historyDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	UserName    string             `bson:"user_name,omitempty"`
	Action      string             `bson:"action"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
}

// Append persists an audit entry. CreatedAt defaults to now.
func (r *HistoryRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	uid, ok := objectID(entry.UserID)
	if !ok {
		return fmt.Errorf("append history: %w: user id %q", domain.ErrInvalidInput, entry.UserID)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := historyDocument{
		UserID:      uid,
		Action:      string(entry.Action),
		Description: entry.Description,
		CreatedAt:   createdAt.UTC(),
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	entry.ID = res.InsertedID.(primitive.ObjectID).Hex()
	entry.CreatedAt = doc.CreatedAt
	return nil
}

// Recent returns the newest entries joined with the acting user's name.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]*domain.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: "user_name", Value: "$user.name"}}}},
		{{Key: "$project", Value: bson.D{{Key: "user", Value: 0}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}

	var docs []historyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	entries := make([]*domain.HistoryEntry, len(docs))
	for i, d := range docs {
		entries[i] = &domain.HistoryEntry{
			ID:          d.ID.Hex(),
			UserID:      d.UserID.Hex(),
			UserName:    d.UserName,
			Action:      domain.Action(d.Action),
			Description: d.Description,
			CreatedAt:   d.CreatedAt.UTC(),
		}
	}
	return entries, nil
}

func (r *HistoryRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("history indexes: %w", err)
	}
	return nil
}
