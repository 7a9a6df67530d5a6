package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

var (
	ErrInvalidSubmission = errors.New("formId and responses are required")
	ErrFormInactive      = errors.New("form is not accepting responses")
)

// FeedbackService handles feedback intake and owner-scoped listing.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepo
	formRepo     repository.FormRepo
	audit        *AuditService
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(feedbackRepo repository.FeedbackRepo, formRepo repository.FormRepo, audit *AuditService) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		formRepo:     formRepo,
		audit:        audit,
	}
}

// SubmitFeedbackRequest is the public submission payload.
type SubmitFeedbackRequest struct {
	FormID         string                 `json:"formId"`
	Responses      map[string]interface{} `json:"responses"`
	SubmitterEmail string                 `json:"submitterEmail,omitempty"`
	IsAnonymous    bool                   `json:"isAnonymous,omitempty"`
	SubmittedAt    time.Time              `json:"submittedAt,omitempty"`
}

// Submit stores one feedback record against an active form. The record is
// owned by the form's creator; sentiment stays empty until enrichment runs.
func (s *FeedbackService) Submit(ctx context.Context, req SubmitFeedbackRequest, meta *model.FeedbackMetadata) (*model.FeedbackRecord, error) {
	if req.FormID == "" || len(req.Responses) == 0 {
		return nil, ErrInvalidSubmission
	}

	form, err := s.formRepo.GetByID(ctx, req.FormID)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrFormNotFound
	}
	if !form.IsActive {
		return nil, ErrFormInactive
	}

	record := &model.FeedbackRecord{
		ID:             "feedback_" + uuid.New().String(),
		FormID:         form.ID,
		UserID:         form.UserID,
		Responses:      sanitizeResponses(req.Responses),
		SubmitterEmail: strings.TrimSpace(req.SubmitterEmail),
		IsAnonymous:    req.IsAnonymous,
		SubmittedAt:    req.SubmittedAt,
		Metadata:       meta,
	}

	if err := s.feedbackRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	s.audit.Log(ctx, &model.AuditEntry{
		Action:       "Feedback Submitted",
		UserID:       form.UserID,
		ResourceType: "feedback",
		ResourceID:   record.ID,
		Details:      map[string]interface{}{"formId": form.ID},
	})

	return record, nil
}

// List returns the newest feedback for a user, optionally scoped to a form.
func (s *FeedbackService) List(ctx context.Context, userID, formID string) ([]*model.FeedbackRecord, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.feedbackRepo.ListRecent(ctx, repository.FeedbackQuery{UserID: userID, FormID: formID, Limit: 100})
}

// sanitizeResponses HTML-escapes every string value, recursively, so stored
// responses are safe to echo into dashboards.
func sanitizeResponses(responses map[string]interface{}) map[string]interface{} {
	clean := make(map[string]interface{}, len(responses))
	for k, v := range responses {
		clean[k] = sanitizeValue(v)
	}
	return clean
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return sanitizeString(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	case map[string]interface{}:
		return sanitizeResponses(val)
	default:
		return v
	}
}

var htmlEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

func sanitizeString(s string) string {
	return strings.TrimSpace(htmlEscaper.Replace(s))
}
