package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/model"
)

func feedbackRecord(id string, responses map[string]interface{}) *model.FeedbackRecord {
	return &model.FeedbackRecord{
		ID:        id,
		FormID:    "form_1",
		UserID:    "user_admin",
		Responses: responses,
		CreatedAt: time.Now().UTC(),
	}
}

func TestEnrichClassifiesAndPersists(t *testing.T) {
	repo := newFakeFeedbackRepo()
	record := feedbackRecord("fb_1", map[string]interface{}{
		"comments": "terrible and awful experience",
	})
	repo.records = append(repo.records, record)

	enricher := NewFeedbackEnricher(repo, offlineClassifier())
	out := enricher.Enrich(context.Background(), []*model.FeedbackRecord{record})

	require.Len(t, out, 1)
	require.NotNil(t, out[0].Sentiment)
	assert.Equal(t, model.SentimentNegative, out[0].Sentiment.Label)
	assert.Equal(t, 1, repo.setSentimentCalls)
}

func TestEnrichIsIdempotent(t *testing.T) {
	repo := newFakeFeedbackRepo()
	record := feedbackRecord("fb_1", map[string]interface{}{"comments": "great"})
	repo.records = append(repo.records, record)

	enricher := NewFeedbackEnricher(repo, offlineClassifier())
	enricher.Enrich(context.Background(), []*model.FeedbackRecord{record})

	first := record.Sentiment
	require.NotNil(t, first)

	// Second pass must not reclassify or rewrite.
	enricher.Enrich(context.Background(), []*model.FeedbackRecord{record})
	assert.Same(t, first, record.Sentiment)
	assert.Equal(t, 1, repo.setSentimentCalls)
}

func TestEnrichContinuesPastPersistFailure(t *testing.T) {
	repo := newFakeFeedbackRepo()
	failing := feedbackRecord("fb_fail", map[string]interface{}{"comments": "bad"})
	ok := feedbackRecord("fb_ok", map[string]interface{}{"comments": "good"})
	repo.records = append(repo.records, failing, ok)
	repo.failSentimentFor["fb_fail"] = true

	enricher := NewFeedbackEnricher(repo, offlineClassifier())
	out := enricher.Enrich(context.Background(), []*model.FeedbackRecord{failing, ok})

	// The in-memory verdict survives the failed write so this request's
	// aggregation still sees it.
	require.NotNil(t, out[0].Sentiment)
	require.NotNil(t, out[1].Sentiment)
	assert.Equal(t, 2, repo.setSentimentCalls)
}

func TestExtractTextContent(t *testing.T) {
	text := ExtractTextContent(map[string]interface{}{
		"b_comments": "  second part  ",
		"a_title":    "first part",
		"rating":     5,
		"empty":      "   ",
	})

	// String values only, trimmed, joined in key order.
	assert.Equal(t, "first part second part", text)
}

func TestExtractRatingFromNamedField(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]interface{}
		want      int
	}{
		{"rating key with number", map[string]interface{}{"rating": float64(4)}, 4},
		{"star key with string", map[string]interface{}{"star_count": "5"}, 5},
		{"score key", map[string]interface{}{"nps-score": int64(2)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rating := ExtractRating(tt.responses)
			require.NotNil(t, rating)
			assert.Equal(t, tt.want, *rating)
		})
	}
}

func TestExtractRatingFromNumericValue(t *testing.T) {
	rating := ExtractRating(map[string]interface{}{
		"comments": "all good",
		"quality":  float64(3),
	})

	require.NotNil(t, rating)
	assert.Equal(t, 3, *rating)
}

func TestExtractRatingIgnoresFreeTextNumbers(t *testing.T) {
	// "4" in an unnamed text field is text, not a rating.
	assert.Nil(t, ExtractRating(map[string]interface{}{"comments": "4"}))
}

func TestExtractRatingRejectsOutOfRange(t *testing.T) {
	assert.Nil(t, ExtractRating(map[string]interface{}{"rating": float64(9)}))
	assert.Nil(t, ExtractRating(map[string]interface{}{"rating": 0}))
	assert.Nil(t, ExtractRating(map[string]interface{}{"rating": 3.5}))
}

func TestExtractRatingPrefersNamedField(t *testing.T) {
	// The named-field matcher runs before the bare-number matcher even when
	// another key sorts first.
	rating := ExtractRating(map[string]interface{}{
		"age":    float64(2),
		"rating": float64(5),
	})

	require.NotNil(t, rating)
	assert.Equal(t, 5, *rating)
}
