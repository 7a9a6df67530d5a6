package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/config"
	"feedbackpro/internal/model"
)

func offlineAIConfig() *config.AIConfig {
	return &config.AIConfig{
		Model:     "gemini-2.0-flash",
		TimeoutMS: 500,
	}
}

func intPtr(v int) *int { return &v }

func TestClassifyRatingOnly(t *testing.T) {
	classifier := offlineClassifier()

	tests := []struct {
		rating     int
		label      string
		score      float64
		confidence float64
		emotions   []string
	}{
		{1, model.SentimentNegative, 0.1, 0.9, []string{"angry", "frustrated"}},
		{2, model.SentimentNegative, 0.3, 0.9, []string{"disappointed", "unsatisfied"}},
		{3, model.SentimentNeutral, 0.5, 0.8, []string{"neutral", "okay"}},
		{4, model.SentimentPositive, 0.7, 0.9, []string{"satisfied", "happy"}},
		{5, model.SentimentPositive, 0.9, 0.9, []string{"delighted", "excited"}},
	}

	for _, tt := range tests {
		verdict := classifier.Classify(context.Background(), "", intPtr(tt.rating))
		require.NotNil(t, verdict, "rating %d", tt.rating)
		assert.Equal(t, tt.label, verdict.Label, "rating %d", tt.rating)
		assert.Equal(t, tt.score, verdict.Score, "rating %d", tt.rating)
		assert.Equal(t, tt.confidence, verdict.Confidence, "rating %d", tt.rating)
		assert.Equal(t, tt.emotions, verdict.Emotions, "rating %d", tt.rating)
		assert.Equal(t, emojiForLabel(tt.label), verdict.Emoji, "rating %d", tt.rating)
	}
}

func TestClassifyRatingOverridesText(t *testing.T) {
	classifier := offlineClassifier()

	// Glowing text must not move a 1-star verdict.
	verdict := classifier.Classify(context.Background(), "Amazing product, absolutely love it!", intPtr(1))

	require.NotNil(t, verdict)
	assert.Equal(t, model.SentimentNegative, verdict.Label)
	assert.Equal(t, 0.1, verdict.Score)
	// AI is offline, so keywords come from local extraction and confidence
	// drops to 0.8.
	assert.Equal(t, 0.8, verdict.Confidence)
	assert.Contains(t, verdict.Keywords, "amazing")
}

func TestClassifyTextLexicalFallback(t *testing.T) {
	classifier := offlineClassifier()

	verdict := classifier.Classify(context.Background(), "This is terrible and awful", nil)

	require.NotNil(t, verdict)
	assert.Equal(t, model.SentimentNegative, verdict.Label)
	assert.InDelta(t, 0.3, verdict.Score, 1e-9)
	assert.Equal(t, 0.6, verdict.Confidence)
	assert.Equal(t, []string{"frustrated", "disappointed"}, verdict.Emotions)
	assert.Equal(t, "😢", verdict.Emoji)
}

func TestClassifyTextPositive(t *testing.T) {
	classifier := offlineClassifier()

	verdict := classifier.Classify(context.Background(), "Great support, fast and reliable", nil)

	require.NotNil(t, verdict)
	assert.Equal(t, model.SentimentPositive, verdict.Label)
	assert.InDelta(t, 0.8, verdict.Score, 1e-9)
	assert.Equal(t, []string{"satisfied", "happy"}, verdict.Emotions)
}

func TestClassifyLexicalScoreClamped(t *testing.T) {
	classifier := offlineClassifier()

	verdict := classifier.Classify(context.Background(),
		"terrible awful horrible broken slow buggy useless annoying", nil)

	assert.Equal(t, model.SentimentNegative, verdict.Label)
	assert.InDelta(t, 0.1, verdict.Score, 1e-9)
}

func TestClassifyEmptyInput(t *testing.T) {
	classifier := offlineClassifier()

	verdict := classifier.Classify(context.Background(), "   ", nil)

	require.NotNil(t, verdict)
	assert.Equal(t, model.SentimentNeutral, verdict.Label)
	assert.Equal(t, 0.5, verdict.Score)
	assert.Equal(t, 0.3, verdict.Confidence)
	assert.Equal(t, []string{"neutral"}, verdict.Emotions)
	assert.NotNil(t, verdict.Keywords)
	assert.Empty(t, verdict.Keywords)
}

func TestClassifyOutOfRangeRatingIgnored(t *testing.T) {
	classifier := offlineClassifier()

	// Rating 7 has no mapping; the text path takes over.
	verdict := classifier.Classify(context.Background(), "great experience", intPtr(7))
	assert.Equal(t, model.SentimentPositive, verdict.Label)

	// With no text either, the neutral default applies.
	verdict = classifier.Classify(context.Background(), "", intPtr(7))
	assert.Equal(t, model.SentimentNeutral, verdict.Label)
	assert.Equal(t, 0.3, verdict.Confidence)
}

func TestLabelForScore(t *testing.T) {
	assert.Equal(t, model.SentimentNegative, labelForScore(0.39))
	assert.Equal(t, model.SentimentNeutral, labelForScore(0.4))
	assert.Equal(t, model.SentimentNeutral, labelForScore(0.6))
	assert.Equal(t, model.SentimentPositive, labelForScore(0.61))
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"label":"Positive"}`, `{"label":"Positive"}`},
		{"```json\n{\"label\":\"Positive\"}\n```", `{"label":"Positive"}`},
		{"```\n{}\n```", `{}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripJSONFence(tt.in))
	}
}

func TestExtractKeywords(t *testing.T) {
	// "checkout" appears twice, everything else once; ties keep first-seen
	// order.
	keywords := extractKeywords("checkout flow broke during checkout payment step", 5)

	assert.Equal(t, []string{"checkout", "flow", "broke", "during", "payment"}, keywords)
}

func TestExtractKeywordsSkipsStopwordsAndShortTokens(t *testing.T) {
	keywords := extractKeywords("it is so good, we like it a lot!", 5)

	assert.NotContains(t, keywords, "it")
	assert.NotContains(t, keywords, "so")
	assert.Contains(t, keywords, "good")
	assert.Contains(t, keywords, "lot")
}
