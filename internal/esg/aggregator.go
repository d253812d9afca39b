package esg

import "math"

// RiskScore is the aggregate risk of one batch of articles.
type RiskScore struct {
	Overall       float64 `json:"overall_score"`
	Environmental float64 `json:"environmental_score"`
	Social        float64 `json:"social_score"`
	Governance    float64 `json:"governance_score"`
}

// ByCategory returns the sub-score for a category.
func (r RiskScore) ByCategory(c Category) float64 {
	switch c {
	case Environmental:
		return r.Environmental
	case Social:
		return r.Social
	case Governance:
		return r.Governance
	}
	return 0
}

// Aggregate combines per-article sentiment and all detected events. An empty
// sentiment batch means no articles and yields the zero score.
//
// Sentiment is remapped from [-1, 1] to risk in [0, 1] and weighted 40/60
// against mean event severity. Category scores take the most severe event of
// that category.
func Aggregate(sentiments []float64, events []Event) RiskScore {
	if len(sentiments) == 0 {
		return RiskScore{}
	}

	var sum float64
	for _, s := range sentiments {
		sum += s
	}
	avg := sum / float64(len(sentiments))
	sentimentRisk := (1 - avg) / 2

	var eventRisk float64
	if len(events) > 0 {
		var total float64
		for _, ev := range events {
			total += ev.Severity
		}
		eventRisk = total / float64(len(events))
	}

	var score RiskScore
	for _, ev := range events {
		switch ev.Category() {
		case Environmental:
			score.Environmental = max(score.Environmental, ev.Severity)
		case Social:
			score.Social = max(score.Social, ev.Severity)
		case Governance:
			score.Governance = max(score.Governance, ev.Severity)
		}
	}

	score.Overall = clamp01(sentimentRisk*sentimentWeight + eventRisk*eventWeight)
	score.Environmental = clamp01(score.Environmental)
	score.Social = clamp01(score.Social)
	score.Governance = clamp01(score.Governance)

	return score
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
