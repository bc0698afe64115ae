package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ai-autopilot/gateway/internal/core/domain"
)

const historyCollection = "history"

type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(historyCollection)}
}

type mongoHistory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Command   string             `bson:"command"`
	Response  string             `bson:"response"`
	CreatedAt int64              `bson:"created_at"`
}

// EnsureIndexes backs the per-user newest-first query.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create history index: %w", err)
	}
	return nil
}

func (r *HistoryRepository) Insert(ctx context.Context, record *domain.HistoryRecord) error {
	doc := mongoHistory{
		UserID:    record.UserID,
		Command:   record.Command,
		Response:  record.Response,
		CreatedAt: record.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

func (r *HistoryRepository) FindByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find history: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]domain.HistoryRecord, 0, limit)
	for cursor.Next(ctx) {
		var mh mongoHistory
		if err := cursor.Decode(&mh); err != nil {
			return nil, fmt.Errorf("decode history record: %w", err)
		}
		records = append(records, domain.HistoryRecord{
			ID:        mh.ID.Hex(),
			UserID:    mh.UserID,
			Command:   mh.Command,
			Response:  mh.Response,
			CreatedAt: unixToTime(mh.CreatedAt),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
