package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"feedbackpro/internal/model"
)

// Insight synthesis turns the classified record set into ranked keywords,
// emotion percentages, and rule-based recommendations. The thresholds here
// are deliberate, simple cut-points; they are part of the observable
// behavior, not tuning knobs.

const (
	topKeywordLimit  = 10
	quotedKeywords   = 3
	topEmotionLimit  = 8
	recentWindowDays = 7
	recentRecordSpan = 10
)

// SynthesizeInsights builds the aiInsights block from the (post-enrichment)
// record set. now anchors the "recent" window so callers and tests agree on
// what the last 7 days means.
func SynthesizeInsights(records []*model.FeedbackRecord, distribution model.SentimentDistribution, totalFeedback int, now time.Time) model.AIInsights {
	insights := model.AIInsights{
		Recommendations:    []string{},
		TopKeywords:        []string{},
		EmergingTrends:     []string{},
		EmotionAnalysis:    map[string]float64{},
		ActionableInsights: []string{},
	}

	var confidenceSum float64
	classified := 0
	for _, r := range records {
		if r.IsClassified() {
			confidenceSum += r.Sentiment.Confidence
			classified++
		}
	}
	insights.TotalAnalyzed = classified
	if classified > 0 {
		insights.AverageConfidence = confidenceSum / float64(classified)
	}

	averageScore := averageSentimentScore(records)

	insights.TopKeywords = rankKeywords(records, topKeywordLimit)
	insights.EmotionAnalysis = emotionPercentages(records, totalFeedback)
	insights.Recommendations = buildRecommendations(distribution, averageScore, totalFeedback)
	if totalFeedback > 0 {
		insights.EmergingTrends = detectEmergingTrends(records, insights.TopKeywords, now)
		insights.ActionableInsights = buildActionableInsights(distribution, insights.TopKeywords, averageScore)
	}

	return insights
}

func averageSentimentScore(records []*model.FeedbackRecord) float64 {
	var sum float64
	count := 0
	for _, r := range records {
		if r.IsClassified() {
			sum += r.Sentiment.Score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// rankKeywords flattens every verdict's keywords and ranks them by
// frequency, descending. Equal counts keep first-seen order.
func rankKeywords(records []*model.FeedbackRecord, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if !r.IsClassified() {
			continue
		}
		for _, kw := range r.Sentiment.Keywords {
			if counts[kw] == 0 {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	top := make([]string, len(order))
	copy(top, order)
	return top
}

// emotionPercentages reports the top emotions as a percentage of all
// feedback, boosted by a rank-decay multiplier of 1 + 0.1 per position from
// the bottom of the top-8 list, capped at 100. The boost rewards emotions
// that are both frequent and highly ranked.
func emotionPercentages(records []*model.FeedbackRecord, totalFeedback int) map[string]float64 {
	result := map[string]float64{}
	if totalFeedback == 0 {
		return result
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if !r.IsClassified() {
			continue
		}
		for _, emotion := range r.Sentiment.Emotions {
			if counts[emotion] == 0 {
				order = append(order, emotion)
			}
			counts[emotion]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > topEmotionLimit {
		order = order[:topEmotionLimit]
	}

	for i, emotion := range order {
		percentage := float64(counts[emotion]) / float64(totalFeedback) * 100
		multiplier := 1 + float64(len(order)-i)*0.1
		result[emotion] = math.Min(100, percentage*multiplier)
	}
	return result
}

// buildRecommendations is the fixed threshold cascade. Emission order
// follows the threshold order; zero feedback short-circuits everything.
func buildRecommendations(distribution model.SentimentDistribution, averageScore float64, totalFeedback int) []string {
	if totalFeedback == 0 {
		return []string{"Start collecting feedback to get AI-powered insights and recommendations."}
	}

	total := float64(totalFeedback)
	negativePct := float64(distribution[model.SentimentNegative]) / total * 100
	positivePct := float64(distribution[model.SentimentPositive]) / total * 100
	neutralPct := float64(distribution[model.SentimentNeutral]) / total * 100

	var recs []string

	if negativePct > 40 {
		recs = append(recs, "Urgent: over 40% of feedback is negative. Prioritize reviewing recent submissions for critical issues.")
	} else if negativePct > 20 {
		recs = append(recs, "Negative feedback is above 20%. Review common complaints and address recurring pain points.")
	}

	if positivePct > 70 {
		recs = append(recs, "Over 70% of feedback is positive. Gather testimonials and leverage them in your marketing.")
	} else if positivePct > 50 {
		recs = append(recs, "More than half of your feedback is positive. Keep reinforcing what users love.")
	}

	if neutralPct > 50 {
		recs = append(recs, "Most feedback is neutral. Ask more specific questions to better engage your customers.")
	}

	if averageScore < 0.3 {
		recs = append(recs, "Critical: average sentiment is very low. Take immediate action on product or service quality.")
	} else if averageScore < 0.5 {
		recs = append(recs, "Average sentiment is below the neutral midpoint. Look for quick wins to improve satisfaction.")
	} else if averageScore > 0.8 {
		recs = append(recs, "Outstanding average sentiment! Identify what is working and double down on it.")
	}

	if totalFeedback < 10 {
		recs = append(recs, "Collect more feedback to make these insights statistically meaningful.")
	}

	return recs
}

// detectEmergingTrends flags sentiment direction over the last 7 days and
// keywords spiking in the 10 most recent records.
func detectEmergingTrends(records []*model.FeedbackRecord, topKeywords []string, now time.Time) []string {
	trends := []string{}

	cutoff := now.AddDate(0, 0, -recentWindowDays)
	var recentPositive, recentClassified int
	for _, r := range records {
		if r.CreatedAt.Before(cutoff) || !r.IsClassified() {
			continue
		}
		recentClassified++
		if r.Sentiment.Label == model.SentimentPositive {
			recentPositive++
		}
	}
	if recentClassified > 0 {
		positiveRate := float64(recentPositive) / float64(recentClassified)
		if positiveRate > 0.7 {
			trends = append(trends, "Positive sentiment is improving over the last 7 days.")
		} else if positiveRate < 0.3 {
			trends = append(trends, "Sentiment is declining over the last 7 days.")
		}
	}

	topSet := make(map[string]bool, len(topKeywords))
	for _, kw := range topKeywords {
		topSet[strings.ToLower(kw)] = true
	}

	// Records arrive oldest first; the tail is the most recent.
	recent := records
	if len(recent) > recentRecordSpan {
		recent = recent[len(recent)-recentRecordSpan:]
	}
	counts := make(map[string]int)
	var order []string
	for _, r := range recent {
		if !r.IsClassified() {
			continue
		}
		for _, kw := range r.Sentiment.Keywords {
			lower := strings.ToLower(kw)
			if counts[lower] == 0 {
				order = append(order, lower)
			}
			counts[lower]++
		}
	}
	for _, kw := range order {
		if counts[kw] > 2 && !topSet[kw] {
			trends = append(trends, fmt.Sprintf("Increased mentions of %q in recent feedback.", kw))
		}
	}

	return trends
}

func buildActionableInsights(distribution model.SentimentDistribution, topKeywords []string, averageScore float64) []string {
	insights := []string{}

	if negative := distribution[model.SentimentNegative]; negative > 0 {
		insights = append(insights, fmt.Sprintf("Address %d negative feedback items to improve overall satisfaction.", negative))
	}
	if len(topKeywords) > 0 {
		quoted := topKeywords
		if len(quoted) > quotedKeywords {
			quoted = quoted[:quotedKeywords]
		}
		insights = append(insights, fmt.Sprintf("Focus on recurring themes: %s.", strings.Join(quoted, ", ")))
	}
	if averageScore > 0.7 {
		insights = append(insights, "Use your positive feedback in marketing materials and testimonials.")
	}
	if distribution[model.SentimentNeutral] > distribution[model.SentimentPositive] {
		insights = append(insights, "Engage neutral respondents to convert them into promoters.")
	}

	return insights
}
