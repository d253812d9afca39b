package domain

import (
	"errors"
	"time"

	"ESGRiskScanner/internal/esg"
)

// ErrCompanyNotFound is returned when no stored analysis exists for a company.
var ErrCompanyNotFound = errors.New("company not found")

// ArticleAnalysis captures the engine output for one article.
type ArticleAnalysis struct {
	Article   Article
	Sentiment float64
	Events    []esg.Event
}

// CompanyAnalysis is the result of scoring one batch of articles for a company.
type CompanyAnalysis struct {
	Company       string
	Risk          esg.RiskScore
	Events        []esg.Event
	Articles      []ArticleAnalysis
	TotalArticles int
	// Skipped counts articles that could not be assessed.
	Skipped    int
	AnalyzedAt time.Time
}

// Score is the headline (overall) risk score.
func (c CompanyAnalysis) Score() float64 {
	return c.Risk.Overall
}

// CompanySummary is the latest stored risk snapshot of a company.
type CompanySummary struct {
	ID            int64
	Name          string
	Risk          esg.RiskScore
	LastAnalyzed  time.Time
	TotalArticles int
}
