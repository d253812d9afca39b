package ports

import (
	"context"
	"time"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/esg"
)

// ArticleSource supplies recent news articles about a company.
type ArticleSource interface {
	FetchCompanyNews(ctx context.Context, company string, limit int) ([]domain.Article, error)
}

// AnalysisRepository persists analyses and reads back the latest scores.
type AnalysisRepository interface {
	SaveAnalysis(ctx context.Context, analysis domain.CompanyAnalysis) error
	// LatestScores returns the newest risk score per company; an empty filter means all companies.
	LatestScores(ctx context.Context, companies []string) ([]domain.CompanySummary, error)
	// CompanyDetails returns the latest stored score with every stored article and its events.
	// It fails with domain.ErrCompanyNotFound when the company has no score yet.
	CompanyDetails(ctx context.Context, company string) (domain.CompanyAnalysis, error)
}

// ContentNormalizer turns raw article bodies (HTML or text) into plain text.
type ContentNormalizer interface {
	Normalize(content string) (string, error)
}

// Notifier streams risk digests to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// MetricsRecorder observes analysis outcomes.
type MetricsRecorder interface {
	ArticleScored(company string, events []esg.Event)
	ArticleFailed(company, reason string)
	CompanyAnalyzed(company string, score esg.RiskScore, took time.Duration)
}

// Scheduler controls when analyses execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
