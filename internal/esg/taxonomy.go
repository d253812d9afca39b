package esg

import (
	"fmt"
	"strings"
)

// Category is one of the three fixed ESG risk categories.
type Category string

const (
	Environmental Category = "environmental"
	Social        Category = "social"
	Governance    Category = "governance"
)

// Categories lists the categories in scan order.
func Categories() []Category {
	return []Category{Environmental, Social, Governance}
}

// Tier is a severity modifier tier.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Taxonomy maps categories to trigger keywords and tiers to modifier keywords.
type Taxonomy struct {
	Keywords  map[Category][]string `yaml:"categories"`
	Modifiers map[Tier][]string     `yaml:"severity"`
}

// Lexicon holds the sentiment word lists.
type Lexicon struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// DefaultTaxonomy returns a fresh copy of the built-in keyword tables.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Keywords: map[Category][]string{
			Environmental: {
				"emissions", "carbon footprint", "climate change", "pollution", "oil spill",
				"deforestation", "waste management", "renewable energy", "sustainability",
				"greenhouse gas", "environmental impact", "ecological", "biodiversity",
			},
			Social: {
				"labor strike", "layoffs", "workplace safety", "human rights", "diversity",
				"employee treatment", "community impact", "child labor", "working conditions",
				"discrimination", "harassment", "union", "wage", "benefits",
			},
			Governance: {
				"regulatory fine", "lawsuit", "corruption", "bribery", "fraud", "scandal",
				"compliance", "ethics", "transparency", "board", "executive compensation",
				"audit", "whistleblower", "regulatory violation", "legal action",
			},
		},
		Modifiers: map[Tier][]string{
			TierHigh:   {"lawsuit", "fine", "strike", "spill", "scandal", "fraud", "corruption"},
			TierMedium: {"violation", "concern", "issue", "problem", "controversy"},
			TierLow:    {"improvement", "initiative", "program", "effort", "commitment"},
		},
	}
}

// DefaultLexicon returns a fresh copy of the built-in sentiment words.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{"good", "great", "excellent", "positive", "improvement", "success", "growth", "profit"},
		Negative: []string{"bad", "terrible", "negative", "problem", "issue", "concern", "violation", "fine", "strike"},
	}
}

// Validate rejects unknown categories, unknown tiers and blank phrases.
func (t Taxonomy) Validate() error {
	if len(t.Keywords) == 0 {
		return fmt.Errorf("%w: taxonomy has no categories", ErrInvalidInput)
	}

	for cat, words := range t.Keywords {
		if !cat.valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, cat)
		}
		if err := validatePhrases(words); err != nil {
			return fmt.Errorf("category %s: %w", cat, err)
		}
	}

	for tier, words := range t.Modifiers {
		switch tier {
		case TierHigh, TierMedium, TierLow:
		default:
			return fmt.Errorf("%w: unknown severity tier %q", ErrInvalidInput, tier)
		}
		if err := validatePhrases(words); err != nil {
			return fmt.Errorf("tier %s: %w", tier, err)
		}
	}

	return nil
}

// Validate rejects blank sentiment words.
func (l Lexicon) Validate() error {
	if err := validatePhrases(l.Positive); err != nil {
		return fmt.Errorf("positive lexicon: %w", err)
	}
	if err := validatePhrases(l.Negative); err != nil {
		return fmt.Errorf("negative lexicon: %w", err)
	}
	return nil
}

func (c Category) valid() bool {
	switch c {
	case Environmental, Social, Governance:
		return true
	}
	return false
}

func validatePhrases(words []string) error {
	for i, w := range words {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("%w: blank phrase at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// lowered copies a phrase list into lower case so matching never re-lowers per
// call. Blank phrases are dropped since they would match every text.
func lowered(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	return out
}
