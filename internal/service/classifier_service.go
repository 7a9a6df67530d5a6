package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"feedbackpro/internal/config"
	"feedbackpro/internal/model"
)

// SentimentClassifier derives a sentiment verdict from feedback text and/or
// an explicit 1-5 rating. It wraps the Gemini API with deterministic local
// fallbacks; Classify never returns an error, it only degrades.
//
// Precedence: rating (if present) wins over text, text analysis wins over
// the lexical fallback, and the neutral default covers empty input.
type SentimentClassifier struct {
	config *config.AIConfig
	client *http.Client
}

// NewSentimentClassifier creates a classifier from environment defaults.
func NewSentimentClassifier() *SentimentClassifier {
	return NewSentimentClassifierWithConfig(config.DefaultAIConfig())
}

// NewSentimentClassifierWithConfig creates a classifier with explicit config.
func NewSentimentClassifierWithConfig(cfg *config.AIConfig) *SentimentClassifier {
	return &SentimentClassifier{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// ratingVerdicts maps an explicit 1-5 rating to a fixed verdict. Callers
// depend on rating taking precedence over whatever the text says.
var ratingVerdicts = map[int]model.SentimentVerdict{
	1: {Label: model.SentimentNegative, Score: 0.1, Confidence: 0.9, Emotions: []string{"angry", "frustrated"}},
	2: {Label: model.SentimentNegative, Score: 0.3, Confidence: 0.9, Emotions: []string{"disappointed", "unsatisfied"}},
	3: {Label: model.SentimentNeutral, Score: 0.5, Confidence: 0.8, Emotions: []string{"neutral", "okay"}},
	4: {Label: model.SentimentPositive, Score: 0.7, Confidence: 0.9, Emotions: []string{"satisfied", "happy"}},
	5: {Label: model.SentimentPositive, Score: 0.9, Confidence: 0.9, Emotions: []string{"delighted", "excited"}},
}

// Classify produces a sentiment verdict for the given text and optional
// rating. rating is nil when the response carried no usable rating field.
func (s *SentimentClassifier) Classify(ctx context.Context, text string, rating *int) *model.SentimentVerdict {
	text = strings.TrimSpace(text)

	if rating != nil {
		if base, ok := ratingVerdicts[*rating]; ok {
			return s.classifyFromRating(ctx, base, text)
		}
	}

	if text != "" {
		return s.classifyFromText(ctx, text)
	}

	return defaultVerdict()
}

// classifyFromRating returns the fixed rating verdict, enriched with
// keywords/emotions/summary from the text when available. The AI may only
// touch those fields, never label or score.
func (s *SentimentClassifier) classifyFromRating(ctx context.Context, base model.SentimentVerdict, text string) *model.SentimentVerdict {
	verdict := base
	verdict.Emoji = emojiForLabel(verdict.Label)
	verdict.Emotions = append([]string(nil), base.Emotions...)

	if text == "" {
		return &verdict
	}

	if ai, err := s.analyzeWithGemini(ctx, text); err == nil {
		if len(ai.Keywords) > 0 {
			verdict.Keywords = ai.Keywords
		}
		if len(ai.Emotions) > 0 {
			verdict.Emotions = ai.Emotions
		}
		verdict.Summary = ai.Summary
		return &verdict
	}

	// AI unavailable: extract keywords locally and trust the verdict a
	// little less.
	verdict.Keywords = extractKeywords(text, 5)
	verdict.Confidence = 0.8
	return &verdict
}

// classifyFromText asks Gemini for a full verdict and falls back to the
// lexical heuristic on any failure.
func (s *SentimentClassifier) classifyFromText(ctx context.Context, text string) *model.SentimentVerdict {
	ai, err := s.analyzeWithGemini(ctx, text)
	if err != nil {
		return lexicalVerdict(text)
	}
	return ai
}

func defaultVerdict() *model.SentimentVerdict {
	return &model.SentimentVerdict{
		Label:      model.SentimentNeutral,
		Score:      0.5,
		Emoji:      emojiForLabel(model.SentimentNeutral),
		Keywords:   []string{},
		Emotions:   []string{"neutral"},
		Confidence: 0.3,
	}
}

func emojiForLabel(label string) string {
	switch label {
	case model.SentimentPositive:
		return "😊"
	case model.SentimentNegative:
		return "😢"
	default:
		return "😐"
	}
}

// geminiVerdict is the JSON shape we ask Gemini to return.
type geminiVerdict struct {
	Label      string   `json:"label"`
	Score      *float64 `json:"score"`
	Emoji      string   `json:"emoji"`
	Keywords   []string `json:"keywords"`
	Emotions   []string `json:"emotions"`
	Confidence *float64 `json:"confidence"`
	Summary    string   `json:"summary"`
}

// analyzeWithGemini calls the Gemini API and normalizes the response into a
// verdict. Every failure mode (disabled key, transport error, malformed
// JSON) surfaces as an error so the caller can degrade.
func (s *SentimentClassifier) analyzeWithGemini(ctx context.Context, text string) (*model.SentimentVerdict, error) {
	if !s.config.IsEnabled() {
		return nil, fmt.Errorf("gemini api key not configured")
	}

	response, err := s.callGemini(ctx, buildSentimentPrompt(text))
	if err != nil {
		return nil, err
	}

	var raw geminiVerdict
	if err := json.Unmarshal([]byte(stripJSONFence(response)), &raw); err != nil {
		return nil, fmt.Errorf("malformed sentiment response: %w", err)
	}

	score := 0.5
	if raw.Score != nil {
		score = clamp(*raw.Score, 0, 1)
	}

	label := raw.Label
	switch label {
	case model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative:
	default:
		label = labelForScore(score)
	}

	confidence := 0.7
	if raw.Confidence != nil {
		confidence = clamp(*raw.Confidence, 0, 1)
	}

	keywords := raw.Keywords
	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	if keywords == nil {
		keywords = []string{}
	}
	emotions := raw.Emotions
	if len(emotions) > 3 {
		emotions = emotions[:3]
	}
	if emotions == nil {
		emotions = []string{}
	}

	emoji := raw.Emoji
	if emoji == "" {
		emoji = emojiForLabel(label)
	}

	return &model.SentimentVerdict{
		Label:      label,
		Score:      score,
		Emoji:      emoji,
		Keywords:   keywords,
		Emotions:   emotions,
		Confidence: confidence,
		Summary:    raw.Summary,
	}, nil
}

// labelForScore maps a text-path score to a label using the 0.4/0.6 bands.
// The rating path uses its own fixed mapping; the two are intentionally
// different.
func labelForScore(score float64) string {
	switch {
	case score < 0.4:
		return model.SentimentNegative
	case score > 0.6:
		return model.SentimentPositive
	default:
		return model.SentimentNeutral
	}
}

// callGemini makes a request to the Gemini API
func (s *SentimentClassifier) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.Endpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from Gemini")
}

func buildSentimentPrompt(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of the following feedback text. Return ONLY valid JSON matching this schema:
{
  "label": "Positive" or "Neutral" or "Negative",
  "score": 0.0 to 1.0 (0 = very negative, 0.5 = neutral, 1 = very positive),
  "emoji": "😊" or "😐" or "😢",
  "keywords": ["up to 5 salient keywords, most important first"],
  "emotions": ["up to 3 emotions like joy, sadness, anger, surprise, frustrated"],
  "confidence": 0.0 to 1.0,
  "summary": "one sentence summary"
}

Text: "%s"`, text)
}

// stripJSONFence unwraps a markdown code fence if the model returned one.
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
