package esg

import (
	"strings"
	"unicode/utf8"
)

// Event is a single ESG signal found in one article.
type Event struct {
	Type        string  `json:"event_type"`
	Description string  `json:"description"`
	Severity    float64 `json:"severity"`
}

// Category returns the category encoded in the event type prefix, or "" when
// the prefix is not a known category.
func (ev Event) Category() Category {
	prefix, _, _ := strings.Cut(ev.Type, "_")
	c := Category(prefix)
	if !c.valid() {
		return ""
	}
	return c
}

// EventType builds the category-qualified type for a keyword.
func EventType(cat Category, keyword string) string {
	return string(cat) + "_" + strings.ReplaceAll(keyword, " ", "_")
}

// Detect scans text for taxonomy keywords. Events come back in taxonomy order
// with at most one event per type.
func (e *Engine) Detect(text string) []Event {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)

	var (
		events   []Event
		runes    []rune
		severity float64
		scored   bool
	)

	for _, group := range e.categories {
		for _, kw := range group.keywords {
			idx := strings.Index(lower, kw)
			if idx < 0 {
				continue
			}

			if runes == nil {
				runes = []rune(text)
			}
			if !scored {
				severity = severityOf(lower, e.high, e.medium, e.low)
				scored = true
			}

			start := utf8.RuneCountInString(lower[:idx])
			events = append(events, Event{
				Type:        EventType(group.category, kw),
				Description: window(runes, start, utf8.RuneCountInString(kw), e.contextWidth),
				Severity:    severity,
			})
		}
	}

	return dedupe(events)
}

// Severity rates the whole text from its modifier words. Tiers are applied
// high, medium, low in that order, so a low-tier word caps the result at 0.3
// even when a high-tier word is also present.
func (e *Engine) Severity(text string) float64 {
	return severityOf(strings.ToLower(text), e.high, e.medium, e.low)
}

func severityOf(lower string, high, medium, low []string) float64 {
	severity := baseSeverity
	if containsAny(lower, high) {
		severity = max(severity, highSeverity)
	}
	if containsAny(lower, medium) {
		severity = max(severity, mediumSeverity)
	}
	if containsAny(lower, low) {
		severity = min(severity, lowSeverity)
	}
	return severity
}

func window(runes []rune, start, length, width int) string {
	from := max(0, start-width)
	to := min(len(runes), start+length+width)
	return strings.TrimSpace(string(runes[from:to]))
}

func dedupe(events []Event) []Event {
	if len(events) < 2 {
		return events
	}

	seen := make(map[string]struct{}, len(events))
	unique := events[:0]
	for _, ev := range events {
		if _, ok := seen[ev.Type]; ok {
			continue
		}
		seen[ev.Type] = struct{}{}
		unique = append(unique, ev)
	}
	return unique
}
