package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"feedbackpro/internal/model"
)

// FeedbackQuery narrows a feedback listing. UserID is required; FormID is
// optional ("" or "all" means every form the user owns).
type FeedbackQuery struct {
	UserID string
	FormID string
	Limit  int64
}

// FeedbackRepo handles MongoDB operations for feedback records
type FeedbackRepo interface {
	Create(ctx context.Context, record *model.FeedbackRecord) error
	GetByID(ctx context.Context, id string) (*model.FeedbackRecord, error)
	List(ctx context.Context, q FeedbackQuery) ([]*model.FeedbackRecord, error)
	ListRecent(ctx context.Context, q FeedbackQuery) ([]*model.FeedbackRecord, error)
	SetSentiment(ctx context.Context, id string, verdict *model.SentimentVerdict) error
	CountByForm(ctx context.Context, formID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type feedbackRepo struct {
	collection *mongo.Collection
}

// NewFeedbackRepo creates a new feedback repository
func NewFeedbackRepo(db *mongo.Database) FeedbackRepo {
	return &feedbackRepo{
		collection: db.Collection("feedback"),
	}
}

func (r *feedbackRepo) Create(ctx context.Context, record *model.FeedbackRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = record.CreatedAt
	}
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

func (r *feedbackRepo) GetByID(ctx context.Context, id string) (*model.FeedbackRecord, error) {
	var record model.FeedbackRecord
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *feedbackRepo) filter(q FeedbackQuery) bson.M {
	filter := bson.M{"userId": q.UserID}
	if q.FormID != "" && q.FormID != "all" {
		filter["formId"] = q.FormID
	}
	return filter
}

// List returns matching records ordered oldest first, which keeps trend
// bucketing and "last N records" logic deterministic.
func (r *feedbackRepo) List(ctx context.Context, q FeedbackQuery) ([]*model.FeedbackRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, r.filter(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.FeedbackRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListRecent returns matching records newest first.
func (r *feedbackRepo) ListRecent(ctx context.Context, q FeedbackQuery) ([]*model.FeedbackRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := r.collection.Find(ctx, r.filter(q), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*model.FeedbackRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SetSentiment attaches a verdict to a record that does not have one yet.
// The filter guards the write so a concurrent classification of the same
// record cannot overwrite an existing verdict.
func (r *feedbackRepo) SetSentiment(ctx context.Context, id string, verdict *model.SentimentVerdict) error {
	filter := bson.M{"id": id, "sentiment": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"sentiment": verdict}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

func (r *feedbackRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"formId": formID})
}

func (r *feedbackRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	return err
}
