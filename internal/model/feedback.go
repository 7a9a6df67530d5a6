package model

import "time"

// Sentiment labels form a closed set; they are used as map keys in the
// analytics distribution, so the exact casing matters.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// SentimentVerdict is the classifier output attached to a feedback record.
type SentimentVerdict struct {
	Label      string   `json:"label" bson:"label"`           // Positive, Neutral, Negative
	Score      float64  `json:"score" bson:"score"`           // 0 = most negative, 1 = most positive
	Emoji      string   `json:"emoji" bson:"emoji"`           // display only, never used in logic
	Keywords   []string `json:"keywords" bson:"keywords"`     // up to 5, most salient first
	Emotions   []string `json:"emotions" bson:"emotions"`     // up to 3
	Confidence float64  `json:"confidence" bson:"confidence"` // 0-1 trust in the verdict
	Summary    string   `json:"summary,omitempty" bson:"summary,omitempty"`
}

// FeedbackRecord is one submitted response to a form. Responses are keyed by
// form-defined field IDs and carry whatever the form collected (strings,
// numbers, file references).
type FeedbackRecord struct {
	ID        string                 `json:"id" bson:"id"`
	FormID    string                 `json:"formId" bson:"formId"`
	UserID    string                 `json:"userId" bson:"userId"` // form owner, not the respondent
	Responses map[string]interface{} `json:"responses" bson:"responses"`

	// Sentiment is nil until enrichment has run once; after that it is
	// permanent and enrichment never touches the record again.
	Sentiment *SentimentVerdict `json:"sentiment,omitempty" bson:"sentiment,omitempty"`

	SubmitterEmail string    `json:"submitterEmail,omitempty" bson:"submitterEmail,omitempty"`
	IsAnonymous    bool      `json:"isAnonymous,omitempty" bson:"isAnonymous,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt" bson:"submittedAt"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`

	Metadata *FeedbackMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// FeedbackMetadata captures request context at submission time.
type FeedbackMetadata struct {
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"`
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	Referrer  string `json:"referrer,omitempty" bson:"referrer,omitempty"`
}

// IsClassified reports whether enrichment has already attached a verdict.
func (f *FeedbackRecord) IsClassified() bool {
	return f.Sentiment != nil
}
