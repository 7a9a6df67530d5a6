package service

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// FeedbackEnricher attaches sentiment verdicts to stored feedback records
// that do not have one yet. Enrichment is idempotent: a record is classified
// at most once, and records that already carry a verdict pass through
// untouched.
type FeedbackEnricher struct {
	feedbackRepo repository.FeedbackRepo
	classifier   *SentimentClassifier
}

// NewFeedbackEnricher creates a new enricher
func NewFeedbackEnricher(feedbackRepo repository.FeedbackRepo, classifier *SentimentClassifier) *FeedbackEnricher {
	return &FeedbackEnricher{
		feedbackRepo: feedbackRepo,
		classifier:   classifier,
	}
}

// Enrich classifies every unclassified record in the batch and persists each
// verdict. A failed persistence is logged and skipped; the batch continues.
// The returned slice is the same records, now fully classified in memory.
func (e *FeedbackEnricher) Enrich(ctx context.Context, records []*model.FeedbackRecord) []*model.FeedbackRecord {
	for _, record := range records {
		if record.IsClassified() {
			continue
		}

		text := ExtractTextContent(record.Responses)
		rating := ExtractRating(record.Responses)
		verdict := e.classifier.Classify(ctx, text, rating)

		// Aggregation in this request uses the in-memory verdict even if
		// the write fails; an unpersisted record is retried next request.
		record.Sentiment = verdict

		if err := e.feedbackRepo.SetSentiment(ctx, record.ID, verdict); err != nil {
			log.Printf("enrich: failed to persist sentiment for feedback %s: %v", record.ID, err)
		}
	}
	return records
}

// responseKeys returns the response field keys in deterministic order.
// Response maps come from user-defined form schemas; sorting stands in for
// the submission field order, which Go maps do not preserve.
func responseKeys(responses map[string]interface{}) []string {
	keys := make([]string, 0, len(responses))
	for k := range responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtractTextContent concatenates all string-valued response entries,
// trimmed and space-joined, in response-key order.
func ExtractTextContent(responses map[string]interface{}) string {
	var parts []string
	for _, key := range responseKeys(responses) {
		if s, ok := responses[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	return strings.Join(parts, " ")
}

// ratingMatcher is one strategy for locating a rating in the free-form
// response map. Matchers are tried in order; the first hit wins.
type ratingMatcher func(key string, value interface{}) (int, bool)

var ratingMatchers = []ratingMatcher{
	// Field key names a rating: "rating", "star_count", "nps-score", ...
	func(key string, value interface{}) (int, bool) {
		lower := strings.ToLower(key)
		if !strings.Contains(lower, "rating") && !strings.Contains(lower, "star") && !strings.Contains(lower, "score") {
			return 0, false
		}
		return ratingValue(value)
	},
	// Any field whose value is itself a 1-5 number. Strings do not count
	// here; "4" in a free-text field is text, not a rating.
	func(key string, value interface{}) (int, bool) {
		if _, isString := value.(string); isString {
			return 0, false
		}
		return ratingValue(value)
	},
}

// ExtractRating scans the responses for a 1-5 rating. Returns nil when no
// field matches any strategy.
func ExtractRating(responses map[string]interface{}) *int {
	keys := responseKeys(responses)
	for _, match := range ratingMatchers {
		for _, key := range keys {
			if r, ok := match(key, responses[key]); ok {
				return &r
			}
		}
	}
	return nil
}

// ratingValue interprets a response value as an integer rating in [1,5].
// JSON decoding yields float64 for numbers; BSON can yield int32/int64;
// rating widgets sometimes submit strings.
func ratingValue(value interface{}) (int, bool) {
	var r int
	switch v := value.(type) {
	case int:
		r = v
	case int32:
		r = int(v)
	case int64:
		r = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		r = int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		r = n
	default:
		return 0, false
	}
	if r < 1 || r > 5 {
		return 0, false
	}
	return r, true
}
