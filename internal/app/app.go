package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"ESGRiskScanner/internal/config"
	"ESGRiskScanner/internal/esg"
	"ESGRiskScanner/internal/infrastructure/fixtures"
	"ESGRiskScanner/internal/infrastructure/parser"
	"ESGRiskScanner/internal/infrastructure/scheduler"
	"ESGRiskScanner/internal/infrastructure/storage"
	"ESGRiskScanner/internal/infrastructure/telegram"
	"ESGRiskScanner/internal/logging"
	"ESGRiskScanner/internal/metrics"
	"ESGRiskScanner/internal/ports"
	"ESGRiskScanner/internal/source"
	"ESGRiskScanner/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	analyzer  *usecase.Analyzer
	scheduler *usecase.Scheduler
	recorder  *metrics.Recorder
	db        *sql.DB
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	tax, lex, err := config.LoadTaxonomy(cfg.Engine.TaxonomyFile)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}
	engine := esg.NewEngine(tax, lex)

	fixtureSet := fixtures.DefaultSet()
	if cfg.Sources.FixturesFile != "" {
		fixtureSet, err = fixtures.LoadFile(cfg.Sources.FixturesFile)
		if err != nil {
			return nil, fmt.Errorf("load fixtures: %w", err)
		}
	}

	registry := source.NewRegistry()
	registry.Register(fixtures.NewProvider(fixtureSet, nil))
	registry.Register(fixtures.NewTemplateProvider(nil))

	articleSource := source.NewStrategySource(registry, cfg.Companies, cfg.Sources.Default, cfg.Sources.Fallback,
		baseLogger.With("component", "source"))

	application := &Application{
		cfg:      cfg,
		logger:   baseLogger,
		recorder: metrics.NewRecorder(),
	}

	var repository ports.AnalysisRepository
	if cfg.Database.Enabled {
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		application.db = db
		repository = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	application.analyzer = usecase.NewAnalyzer(usecase.AnalyzerDeps{
		Engine:       engine,
		Source:       articleSource,
		Normalizer:   parser.NewHTMLNormalizer(),
		Repository:   repository,
		Notifier:     notifier,
		Metrics:      application.recorder,
		Logger:       baseLogger.With("component", "analyzer"),
		ArticleLimit: cfg.Sources.ArticleLimit,
	})

	if cfg.Scheduler.Enabled {
		driver := scheduler.NewIntervalScheduler(cfg.Scheduler.Interval)
		application.scheduler = usecase.NewScheduler(driver, application.analyzer, cfg.CompanyNames())
	}

	return application, nil
}

// Run performs one analysis pass, or keeps analysing on schedule until ctx is done.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	if a.cfg.Metrics.Address != "" {
		stop := a.serveMetrics()
		defer stop()
	}

	if a.scheduler == nil {
		a.logger.Info("analysis started", "companies", len(a.cfg.Companies),
			"at", time.Now().In(a.cfg.Scheduler.Location()).Format(time.RFC3339))
		return a.analyzer.AnalyzeAll(ctx, a.cfg.CompanyNames())
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "interval", a.cfg.Scheduler.Interval.String())

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.scheduler.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}

func (a *Application) serveMetrics() func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.recorder.Handler())
	server := &http.Server{
		Addr:              a.cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("metrics server listening", "address", a.cfg.Metrics.Address)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}

func (a *Application) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}
