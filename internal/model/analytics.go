package model

// Overview holds the headline numbers for the analytics view.
type Overview struct {
	TotalFeedback         int     `json:"totalFeedback"`
	AverageSentimentScore float64 `json:"averageSentimentScore"`
	FormsCreated          int     `json:"formsCreated"`
	ActiveForms           int     `json:"activeForms"`
}

// TrendPoint is a daily feedback count.
type TrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD (UTC)
	Count int    `json:"count"`
}

// SentimentPoint is a daily average sentiment score. Days with no classified
// feedback are omitted, not zero-filled.
type SentimentPoint struct {
	Date         string  `json:"date"`
	AverageScore float64 `json:"averageScore"`
}

// HeatmapRow is one day of hourly average sentiment, keyed by UTC hour 0-23.
type HeatmapRow struct {
	Date            string          `json:"date"`
	HourlySentiment map[int]float64 `json:"hourlySentiment"`
}

// FormPerformanceEntry summarizes one form. Entries follow the input form
// order; callers wanting a ranked view sort client-side.
type FormPerformanceEntry struct {
	ID                    string  `json:"id"`
	Title                 string  `json:"title"`
	TotalFeedback         int     `json:"totalFeedback"`
	AverageSentimentScore float64 `json:"averageSentimentScore"`
}

// SentimentDistribution maps each label to its count. All three keys are
// always present, even at zero.
type SentimentDistribution map[string]int

// NewSentimentDistribution returns a distribution with all labels zeroed.
func NewSentimentDistribution() SentimentDistribution {
	return SentimentDistribution{
		SentimentPositive: 0,
		SentimentNeutral:  0,
		SentimentNegative: 0,
	}
}

// Total returns the number of classified records counted in the distribution.
func (d SentimentDistribution) Total() int {
	return d[SentimentPositive] + d[SentimentNeutral] + d[SentimentNegative]
}

// AIInsights is the synthesized, human-readable portion of the analytics.
type AIInsights struct {
	Recommendations    []string           `json:"recommendations"`
	TopKeywords        []string           `json:"topKeywords"`
	EmergingTrends     []string           `json:"emergingTrends"`
	EmotionAnalysis    map[string]float64 `json:"emotionAnalysis"`
	ActionableInsights []string           `json:"actionableInsights"`
	AverageConfidence  float64            `json:"averageConfidence"`
	TotalAnalyzed      int                `json:"totalAnalyzed"`
}

// AnalyticsSnapshot is the composed analytics response. It is a pure read
// derivative recomputed on every query, never persisted.
type AnalyticsSnapshot struct {
	Overview              Overview               `json:"overview"`
	FeedbackTrends        []TrendPoint           `json:"feedbackTrends"`
	SentimentTrends       []SentimentPoint       `json:"sentimentTrends"`
	SentimentHeatmap      []HeatmapRow           `json:"sentimentHeatmap,omitempty"`
	FormPerformance       []FormPerformanceEntry `json:"formPerformance"`
	SentimentDistribution SentimentDistribution  `json:"sentimentDistribution"`
	AIInsights            AIInsights             `json:"aiInsights"`
}
