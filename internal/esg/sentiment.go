package esg

import "strings"

// Sentiment returns a tone score in [-1, 1]. Each lexicon word counts once no
// matter how often it appears; text with no lexicon words scores exactly 0.
func (e *Engine) Sentiment(text string) float64 {
	if text == "" {
		return 0
	}

	lower := strings.ToLower(text)
	positive := countPresent(lower, e.positive)
	negative := countPresent(lower, e.negative)

	if positive+negative == 0 {
		return 0
	}

	return float64(positive-negative) / float64(positive+negative)
}

func countPresent(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
