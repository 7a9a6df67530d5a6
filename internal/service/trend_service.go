package service

import (
	"sort"
	"time"

	"feedbackpro/internal/model"
)

// Trend aggregation buckets feedback by UTC calendar day. These are pure
// functions over record slices so each one can be tested in isolation.

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// AggregateFeedbackTrends counts records per day, ascending by date.
// Lexicographic order on YYYY-MM-DD keys is chronological.
func AggregateFeedbackTrends(records []*model.FeedbackRecord) []model.TrendPoint {
	counts := make(map[string]int)
	for _, r := range records {
		counts[dayKey(r.CreatedAt)]++
	}

	trends := make([]model.TrendPoint, 0, len(counts))
	for date, count := range counts {
		trends = append(trends, model.TrendPoint{Date: date, Count: count})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}

// AggregateSentimentTrends averages sentiment scores per day over classified
// records only. Days with zero classified records are omitted.
func AggregateSentimentTrends(records []*model.FeedbackRecord) []model.SentimentPoint {
	type bucket struct {
		sum   float64
		count int
	}
	byDate := make(map[string]*bucket)
	for _, r := range records {
		if !r.IsClassified() {
			continue
		}
		key := dayKey(r.CreatedAt)
		b := byDate[key]
		if b == nil {
			b = &bucket{}
			byDate[key] = b
		}
		b.sum += r.Sentiment.Score
		b.count++
	}

	trends := make([]model.SentimentPoint, 0, len(byDate))
	for date, b := range byDate {
		trends = append(trends, model.SentimentPoint{Date: date, AverageScore: b.sum / float64(b.count)})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}

// AggregateHourlySentiment buckets classified records by day and UTC hour
// for heatmap consumers, same mean rule as the daily trend.
func AggregateHourlySentiment(records []*model.FeedbackRecord) []model.HeatmapRow {
	type bucket struct {
		sum   float64
		count int
	}
	byDate := make(map[string]map[int]*bucket)
	for _, r := range records {
		if !r.IsClassified() {
			continue
		}
		date := dayKey(r.CreatedAt)
		hour := r.CreatedAt.UTC().Hour()
		if byDate[date] == nil {
			byDate[date] = make(map[int]*bucket)
		}
		b := byDate[date][hour]
		if b == nil {
			b = &bucket{}
			byDate[date][hour] = b
		}
		b.sum += r.Sentiment.Score
		b.count++
	}

	rows := make([]model.HeatmapRow, 0, len(byDate))
	for date, hours := range byDate {
		row := model.HeatmapRow{Date: date, HourlySentiment: make(map[int]float64, len(hours))}
		for hour, b := range hours {
			row.HourlySentiment[hour] = b.sum / float64(b.count)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date < rows[j].Date })
	return rows
}
