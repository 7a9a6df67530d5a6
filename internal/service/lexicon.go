package service

import (
	"strings"

	"feedbackpro/internal/model"
)

// Fixed word lists for the lexical fallback. These are intentionally small;
// the heuristic only needs to be a reasonable tiebreaker when the AI path
// is unavailable.
var positiveWords = map[string]bool{
	"good": true, "great": true, "excellent": true, "amazing": true,
	"awesome": true, "love": true, "loved": true, "like": true,
	"fantastic": true, "wonderful": true, "best": true, "perfect": true,
	"happy": true, "satisfied": true, "helpful": true, "easy": true,
	"fast": true, "friendly": true, "recommend": true, "nice": true,
	"smooth": true, "clean": true, "intuitive": true, "reliable": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "hated": true, "worst": true, "poor": true,
	"slow": true, "broken": true, "bug": true, "buggy": true,
	"confusing": true, "frustrating": true, "frustrated": true,
	"disappointed": true, "disappointing": true, "useless": true,
	"difficult": true, "annoying": true, "crash": true, "crashes": true,
	"expensive": true, "unresponsive": true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "my": true, "of": true, "on": true, "or": true, "so": true,
	"that": true, "the": true, "this": true, "to": true, "very": true,
	"was": true, "were": true, "with": true, "you": true, "your": true,
	"we": true, "they": true, "not": true, "me": true, "our": true,
}

// tokenize lowercases the text and splits it into punctuation-free words.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, ".,!?;:'\"()[]{}<>-")
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// lexicalVerdict scores text by counting positive versus negative words.
// score = 0.5 + 0.1 per count of delta, clamped to [0.1, 0.9].
func lexicalVerdict(text string) *model.SentimentVerdict {
	var positive, negative int
	for _, w := range tokenize(text) {
		if stopwords[w] {
			continue
		}
		if positiveWords[w] {
			positive++
		} else if negativeWords[w] {
			negative++
		}
	}

	label := model.SentimentNeutral
	emotions := []string{"neutral"}
	switch {
	case positive > negative:
		label = model.SentimentPositive
		emotions = []string{"satisfied", "happy"}
	case negative > positive:
		label = model.SentimentNegative
		emotions = []string{"frustrated", "disappointed"}
	}

	score := clamp(0.5+0.1*float64(positive-negative), 0.1, 0.9)

	return &model.SentimentVerdict{
		Label:      label,
		Score:      score,
		Emoji:      emojiForLabel(label),
		Keywords:   extractKeywords(text, 5),
		Emotions:   emotions,
		Confidence: 0.6,
	}
}

// extractKeywords returns the most frequent non-stopword tokens, most
// frequent first, ties kept in first-seen order.
func extractKeywords(text string, max int) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range tokenize(text) {
		if stopwords[w] || len(w) < 3 {
			continue
		}
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable sort by count keeps first-seen order on ties.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && counts[order[j]] > counts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	if len(order) > max {
		order = order[:max]
	}
	keywords := make([]string, len(order))
	copy(keywords, order)
	return keywords
}
