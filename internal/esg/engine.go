// Package esg scores free-text news for environmental, social and governance risk.
//
// The engine is a set of pure functions over immutable keyword tables: sentiment
// scoring, event detection and risk aggregation. It does no I/O and is safe for
// concurrent use.
package esg

import (
	"fmt"
	"math"
)

const (
	// DefaultContextWidth is the number of characters kept on each side of a
	// matched keyword in an event description.
	DefaultContextWidth = 100

	baseSeverity   = 0.5
	highSeverity   = 0.8
	mediumSeverity = 0.6
	lowSeverity    = 0.3

	sentimentWeight = 0.4
	eventWeight     = 0.6
)

// Engine runs sentiment scoring, event detection and aggregation against one taxonomy.
type Engine struct {
	categories   []categoryKeywords
	high         []string
	medium       []string
	low          []string
	positive     []string
	negative     []string
	contextWidth int
}

type categoryKeywords struct {
	category Category
	keywords []string
}

// NewEngine copies the tables into lower case; later changes to tax or lex do not affect the engine.
// Blank phrases are ignored.
func NewEngine(tax Taxonomy, lex Lexicon) *Engine {
	e := &Engine{
		high:         lowered(tax.Modifiers[TierHigh]),
		medium:       lowered(tax.Modifiers[TierMedium]),
		low:          lowered(tax.Modifiers[TierLow]),
		positive:     lowered(lex.Positive),
		negative:     lowered(lex.Negative),
		contextWidth: DefaultContextWidth,
	}

	for _, cat := range Categories() {
		words, ok := tax.Keywords[cat]
		if !ok {
			continue
		}
		e.categories = append(e.categories, categoryKeywords{category: cat, keywords: lowered(words)})
	}

	return e
}

// Default builds an engine from the built-in taxonomy and lexicon.
func Default() *Engine {
	return NewEngine(DefaultTaxonomy(), DefaultLexicon())
}

// Document is one article handed to the engine.
type Document struct {
	Content string
	// Sentiment, when set, is used instead of scoring Content.
	Sentiment *float64
}

// Assessment is the engine output for a single document.
type Assessment struct {
	Sentiment float64 `json:"sentiment_score"`
	Events    []Event `json:"events"`
}

// Assess scores one document. It fails only when a precomputed sentiment is
// outside [-1, 1].
func (e *Engine) Assess(doc Document) (Assessment, error) {
	var sentiment float64
	if doc.Sentiment != nil {
		v := *doc.Sentiment
		if math.IsNaN(v) || v < -1 || v > 1 {
			return Assessment{}, fmt.Errorf("%w: sentiment %v outside [-1, 1]", ErrInvalidInput, v)
		}
		sentiment = v
	} else {
		sentiment = e.Sentiment(doc.Content)
	}

	return Assessment{
		Sentiment: sentiment,
		Events:    e.Detect(doc.Content),
	}, nil
}

// Evaluate aggregates a batch of assessments into one risk score.
func (e *Engine) Evaluate(batch []Assessment) RiskScore {
	if len(batch) == 0 {
		return RiskScore{}
	}

	sentiments := make([]float64, 0, len(batch))
	var events []Event
	for _, a := range batch {
		sentiments = append(sentiments, a.Sentiment)
		events = append(events, a.Events...)
	}

	return Aggregate(sentiments, events)
}
