package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/esg"
	"ESGRiskScanner/internal/logging"
	"ESGRiskScanner/internal/ports"
	"ESGRiskScanner/internal/report"
)

const (
	defaultArticleLimit = 10
	digestTitle         = "ESG risk digest"
)

// AnalyzerDeps wires the scoring engine and all driven adapters into the use case.
type AnalyzerDeps struct {
	Engine       *esg.Engine
	Source       ports.ArticleSource
	Normalizer   ports.ContentNormalizer
	Repository   ports.AnalysisRepository
	Notifier     ports.Notifier
	Metrics      ports.MetricsRecorder
	Logger       *slog.Logger
	ArticleLimit int
	Now          func() time.Time
}

// Analyzer implements the company ESG analysis workflow.
type Analyzer struct {
	engine     *esg.Engine
	source     ports.ArticleSource
	normalizer ports.ContentNormalizer
	repository ports.AnalysisRepository
	notifier   ports.Notifier
	metrics    ports.MetricsRecorder
	logger     *slog.Logger
	limit      int
	now        func() time.Time
}

// NewAnalyzer constructs the orchestration component. Engine, logger, limit
// and clock fall back to defaults; the other dependencies are optional.
func NewAnalyzer(deps AnalyzerDeps) *Analyzer {
	a := &Analyzer{
		engine:     deps.Engine,
		source:     deps.Source,
		normalizer: deps.Normalizer,
		repository: deps.Repository,
		notifier:   deps.Notifier,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		limit:      deps.ArticleLimit,
		now:        deps.Now,
	}
	if a.engine == nil {
		a.engine = esg.Default()
	}
	if a.logger == nil {
		a.logger = logging.Discard()
	}
	if a.limit <= 0 {
		a.limit = defaultArticleLimit
	}
	if a.now == nil {
		a.now = time.Now
	}
	return a
}

// AnalyzeCompany fetches news for company, scores every article and aggregates
// the batch. Articles that cannot be assessed are logged and skipped.
func (a *Analyzer) AnalyzeCompany(ctx context.Context, company string) (domain.CompanyAnalysis, error) {
	if a.source == nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("article source is not configured")
	}

	started := a.now()
	articles, err := a.source.FetchCompanyNews(ctx, company, a.limit)
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("fetch news for %s: %w", company, err)
	}

	analysis := domain.CompanyAnalysis{
		Company:    company,
		AnalyzedAt: started.UTC(),
	}
	batch := make([]esg.Assessment, 0, len(articles))

	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return domain.CompanyAnalysis{}, err
		}

		item, reason, err := a.assessArticle(article)
		if err != nil {
			analysis.Skipped++
			a.logger.Warn("skip article", "company", company, "article", article.ID, "reason", reason, "error", err)
			if a.metrics != nil {
				a.metrics.ArticleFailed(company, reason)
			}
			continue
		}

		batch = append(batch, esg.Assessment{Sentiment: item.Sentiment, Events: item.Events})
		analysis.Articles = append(analysis.Articles, item)
		analysis.Events = append(analysis.Events, item.Events...)
		if a.metrics != nil {
			a.metrics.ArticleScored(company, item.Events)
		}
	}

	analysis.Risk = a.engine.Evaluate(batch)
	analysis.TotalArticles = len(analysis.Articles)

	if a.metrics != nil {
		a.metrics.CompanyAnalyzed(company, analysis.Risk, a.now().Sub(started))
	}

	a.logger.Info("company analyzed",
		"company", company,
		"articles", analysis.TotalArticles,
		"skipped", analysis.Skipped,
		"events", len(analysis.Events),
		"overall", analysis.Risk.Overall,
	)

	if a.repository != nil {
		if err := a.repository.SaveAnalysis(ctx, analysis); err != nil {
			return analysis, fmt.Errorf("persist analysis for %s: %w", company, err)
		}
	}

	return analysis, nil
}

func (a *Analyzer) assessArticle(article domain.Article) (domain.ArticleAnalysis, string, error) {
	content := article.Content
	if a.normalizer != nil {
		normalized, err := a.normalizer.Normalize(content)
		if err != nil {
			return domain.ArticleAnalysis{}, "normalize", err
		}
		content = normalized
	}

	assessment, err := a.engine.Assess(esg.Document{Content: content, Sentiment: article.Sentiment})
	if err != nil {
		return domain.ArticleAnalysis{}, "assess", err
	}

	article.Content = content
	return domain.ArticleAnalysis{
		Article:   article,
		Sentiment: assessment.Sentiment,
		Events:    assessment.Events,
	}, "", nil
}

// AnalyzeAll analyses every company, then publishes one digest. A failing
// company does not stop the others; all failures are returned joined.
func (a *Analyzer) AnalyzeAll(ctx context.Context, companies []string) error {
	var (
		errs    []error
		results []domain.CompanyAnalysis
	)

	for _, company := range companies {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		analysis, err := a.AnalyzeCompany(ctx, company)
		if err != nil {
			a.logger.Error("company analysis failed", "company", company, "error", err)
			errs = append(errs, err)
			continue
		}
		results = append(results, analysis)
	}

	if a.notifier != nil && len(results) > 0 {
		digest := report.Digest(digestTitle, a.summaries(ctx, companies, results))
		if err := a.notifier.PublishDigest(ctx, digest); err != nil {
			errs = append(errs, fmt.Errorf("publish digest: %w", err))
		}
	}

	return errors.Join(errs...)
}

// CompanyDetails reads back the latest stored analysis of company, including
// its articles and events.
func (a *Analyzer) CompanyDetails(ctx context.Context, company string) (domain.CompanyAnalysis, error) {
	if a.repository == nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("analysis repository is not configured")
	}
	company = strings.TrimSpace(company)
	if company == "" {
		return domain.CompanyAnalysis{}, fmt.Errorf("company name is empty")
	}

	details, err := a.repository.CompanyDetails(ctx, company)
	if err != nil {
		return domain.CompanyAnalysis{}, fmt.Errorf("load details for %s: %w", company, err)
	}
	return details, nil
}

// summaries prefers stored history and falls back to this run's results.
func (a *Analyzer) summaries(ctx context.Context, companies []string, results []domain.CompanyAnalysis) []domain.CompanySummary {
	if a.repository != nil {
		stored, err := a.repository.LatestScores(ctx, companies)
		if err == nil && len(stored) > 0 {
			return stored
		}
		if err != nil {
			a.logger.Warn("load latest scores", "error", err)
		}
	}

	out := make([]domain.CompanySummary, 0, len(results))
	for _, r := range results {
		out = append(out, domain.CompanySummary{
			Name:          r.Company,
			Risk:          r.Risk,
			LastAnalyzed:  r.AnalyzedAt,
			TotalArticles: r.TotalArticles,
		})
	}
	return out
}
