package service

import (
	"context"
	"errors"
	"sort"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// In-memory repository fakes so services can be exercised without MongoDB.

type fakeFeedbackRepo struct {
	records []*model.FeedbackRecord

	setSentimentCalls int
	failSentimentFor  map[string]bool
}

func newFakeFeedbackRepo(records ...*model.FeedbackRecord) *fakeFeedbackRepo {
	return &fakeFeedbackRepo{
		records:          records,
		failSentimentFor: map[string]bool{},
	}
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, record *model.FeedbackRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeFeedbackRepo) GetByID(ctx context.Context, id string) (*model.FeedbackRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeFeedbackRepo) matching(q repository.FeedbackQuery) []*model.FeedbackRecord {
	var out []*model.FeedbackRecord
	for _, r := range f.records {
		if r.UserID != q.UserID {
			continue
		}
		if q.FormID != "" && q.FormID != "all" && r.FormID != q.FormID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (f *fakeFeedbackRepo) List(ctx context.Context, q repository.FeedbackQuery) ([]*model.FeedbackRecord, error) {
	out := f.matching(q)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeFeedbackRepo) ListRecent(ctx context.Context, q repository.FeedbackQuery) ([]*model.FeedbackRecord, error) {
	out := f.matching(q)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeFeedbackRepo) SetSentiment(ctx context.Context, id string, verdict *model.SentimentVerdict) error {
	f.setSentimentCalls++
	if f.failSentimentFor[id] {
		return errors.New("write failed")
	}
	for _, r := range f.records {
		if r.ID == id && r.Sentiment == nil {
			r.Sentiment = verdict
		}
	}
	return nil
}

func (f *fakeFeedbackRepo) CountByForm(ctx context.Context, formID string) (int64, error) {
	var n int64
	for _, r := range f.records {
		if r.FormID == formID {
			n++
		}
	}
	return n, nil
}

func (f *fakeFeedbackRepo) Delete(ctx context.Context, id string) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeFormRepo struct {
	forms []*model.Form
}

func newFakeFormRepo(forms ...*model.Form) *fakeFormRepo {
	return &fakeFormRepo{forms: forms}
}

func (f *fakeFormRepo) Create(ctx context.Context, form *model.Form) error {
	f.forms = append(f.forms, form)
	return nil
}

func (f *fakeFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	for _, fm := range f.forms {
		if fm.ID == id {
			return fm, nil
		}
	}
	return nil, nil
}

func (f *fakeFormRepo) GetByUserID(ctx context.Context, userID string) ([]*model.Form, error) {
	var out []*model.Form
	for _, fm := range f.forms {
		if fm.UserID == userID {
			out = append(out, fm)
		}
	}
	return out, nil
}

func (f *fakeFormRepo) Update(ctx context.Context, form *model.Form) error {
	for i, fm := range f.forms {
		if fm.ID == form.ID {
			f.forms[i] = form
		}
	}
	return nil
}

func (f *fakeFormRepo) SetActive(ctx context.Context, id string, active bool) error {
	for _, fm := range f.forms {
		if fm.ID == id {
			fm.IsActive = active
		}
	}
	return nil
}

func (f *fakeFormRepo) Delete(ctx context.Context, id string) error {
	for i, fm := range f.forms {
		if fm.ID == id {
			f.forms = append(f.forms[:i], f.forms[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeAuditRepo struct {
	entries []*model.AuditEntry
}

func (f *fakeAuditRepo) Insert(ctx context.Context, entry *model.AuditEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]*model.AuditEntry, error) {
	var out []*model.AuditEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

// offlineClassifier returns a classifier with no API key configured, so
// every path exercises the deterministic fallbacks.
func offlineClassifier() *SentimentClassifier {
	return NewSentimentClassifierWithConfig(offlineAIConfig())
}
