package service

import (
	"feedbackpro/internal/model"
)

// RankFormPerformance emits one entry per form in scope, in the same order
// as the input forms. Forms with zero feedback still appear with zero
// counts; the average covers only classified records and is 0 when none
// exist.
func RankFormPerformance(records []*model.FeedbackRecord, forms []*model.Form) []model.FormPerformanceEntry {
	type stats struct {
		total        int
		sentimentSum float64
		classified   int
	}
	byForm := make(map[string]*stats)
	for _, r := range records {
		s := byForm[r.FormID]
		if s == nil {
			s = &stats{}
			byForm[r.FormID] = s
		}
		s.total++
		if r.IsClassified() {
			s.sentimentSum += r.Sentiment.Score
			s.classified++
		}
	}

	entries := make([]model.FormPerformanceEntry, 0, len(forms))
	for _, form := range forms {
		entry := model.FormPerformanceEntry{
			ID:    form.ID,
			Title: form.Title,
		}
		if s := byForm[form.ID]; s != nil {
			entry.TotalFeedback = s.total
			if s.classified > 0 {
				entry.AverageSentimentScore = s.sentimentSum / float64(s.classified)
			}
		}
		entries = append(entries, entry)
	}
	return entries
}
