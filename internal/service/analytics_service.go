package service

import (
	"context"
	"errors"
	"time"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

var (
	ErrUserIDRequired = errors.New("user id is required")
	ErrFormNotFound   = errors.New("form not found")
	ErrNotFormOwner   = errors.New("form not owned by user")
)

// AnalyticsService composes the analytics snapshot for one owner. Each call
// re-reads persisted feedback, enriches whatever is still unclassified, and
// recomputes everything from the source records; nothing is cached.
type AnalyticsService struct {
	feedbackRepo repository.FeedbackRepo
	formRepo     repository.FormRepo
	enricher     *FeedbackEnricher
	audit        *AuditService
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(feedbackRepo repository.FeedbackRepo, formRepo repository.FormRepo, enricher *FeedbackEnricher, audit *AuditService) *AnalyticsService {
	return &AnalyticsService{
		feedbackRepo: feedbackRepo,
		formRepo:     formRepo,
		enricher:     enricher,
		audit:        audit,
	}
}

// scopedForms resolves the forms covered by a query. formID "" or "all"
// means every form the user owns; a concrete formID must exist and belong
// to the user.
func (s *AnalyticsService) scopedForms(ctx context.Context, userID, formID string) ([]*model.Form, error) {
	if formID == "" || formID == "all" {
		return s.formRepo.GetByUserID(ctx, userID)
	}

	form, err := s.formRepo.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if form.UserID != userID {
		return nil, ErrNotFormOwner
	}
	return []*model.Form{form}, nil
}

// GetAnalytics handles GET /v1/analytics: enrich-then-aggregate in one
// synchronous pass, so the snapshot always reflects post-enrichment state.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, userID, formID string) (*model.AnalyticsSnapshot, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	forms, err := s.scopedForms(ctx, userID, formID)
	if err != nil {
		return nil, err
	}

	records, err := s.feedbackRepo.List(ctx, repository.FeedbackQuery{UserID: userID, FormID: formID})
	if err != nil {
		return nil, err
	}

	records = s.enricher.Enrich(ctx, records)

	snapshot := s.compose(records, forms)

	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "Analytics Viewed",
		UserID:       userID,
		ResourceType: "analytics",
		ResourceID:   resourceID(formID),
		Details:      map[string]interface{}{"formId": formID, "feedbackCount": len(records)},
	})

	return snapshot, nil
}

// GetInsights serves the standalone GET /v1/ai/insights endpoint: the
// aiInsights block plus the sentiment distribution over the 100 most recent
// records.
func (s *AnalyticsService) GetInsights(ctx context.Context, userID, formID string) (model.AIInsights, model.SentimentDistribution, error) {
	if userID == "" {
		return model.AIInsights{}, nil, ErrUserIDRequired
	}

	if _, err := s.scopedForms(ctx, userID, formID); err != nil {
		return model.AIInsights{}, nil, err
	}

	recent, err := s.feedbackRepo.ListRecent(ctx, repository.FeedbackQuery{UserID: userID, FormID: formID, Limit: 100})
	if err != nil {
		return model.AIInsights{}, nil, err
	}

	// Synthesis expects oldest-first ordering.
	records := make([]*model.FeedbackRecord, len(recent))
	for i, r := range recent {
		records[len(recent)-1-i] = r
	}

	records = s.enricher.Enrich(ctx, records)

	distribution := distributionOf(records)
	insights := SynthesizeInsights(records, distribution, len(records), time.Now().UTC())

	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "AI Insights Generated",
		UserID:       userID,
		ResourceType: "analytics",
		ResourceID:   resourceID(formID),
		Details:      map[string]interface{}{"formId": formID, "feedbackCount": len(records)},
	})

	return insights, distribution, nil
}

func (s *AnalyticsService) compose(records []*model.FeedbackRecord, forms []*model.Form) *model.AnalyticsSnapshot {
	distribution := distributionOf(records)

	activeForms := 0
	for _, f := range forms {
		if f.IsActive {
			activeForms++
		}
	}

	return &model.AnalyticsSnapshot{
		Overview: model.Overview{
			TotalFeedback:         len(records),
			AverageSentimentScore: averageSentimentScore(records),
			FormsCreated:          len(forms),
			ActiveForms:           activeForms,
		},
		FeedbackTrends:        AggregateFeedbackTrends(records),
		SentimentTrends:       AggregateSentimentTrends(records),
		SentimentHeatmap:      AggregateHourlySentiment(records),
		FormPerformance:       RankFormPerformance(records, forms),
		SentimentDistribution: distribution,
		AIInsights:            SynthesizeInsights(records, distribution, len(records), time.Now().UTC()),
	}
}

func distributionOf(records []*model.FeedbackRecord) model.SentimentDistribution {
	distribution := model.NewSentimentDistribution()
	for _, r := range records {
		if r.IsClassified() {
			distribution[r.Sentiment.Label]++
		}
	}
	return distribution
}

func resourceID(formID string) string {
	if formID == "" {
		return "all"
	}
	return formID
}
