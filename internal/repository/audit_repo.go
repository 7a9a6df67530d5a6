package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedbackpro/internal/model"
)

// AuditRepo handles MongoDB operations for the audit trail
type AuditRepo interface {
	Insert(ctx context.Context, entry *model.AuditEntry) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]*model.AuditEntry, error)
}

type auditRepo struct {
	collection *mongo.Collection
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db *mongo.Database) AuditRepo {
	return &auditRepo{
		collection: db.Collection("auditLogs"),
	}
}

func (r *auditRepo) Insert(ctx context.Context, entry *model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Severity == "" {
		entry.Severity = "low"
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *auditRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]*model.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.AuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
