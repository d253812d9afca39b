package usecase

import (
	"context"
	"time"

	"ESGRiskScanner/internal/ports"
)

// Scheduler wires the interval driver with the analyzer use case.
type Scheduler struct {
	driver    ports.Scheduler
	analyzer  *Analyzer
	companies []string
}

// NewScheduler returns a helper to start/stop recurring analyses.
func NewScheduler(driver ports.Scheduler, analyzer *Analyzer, companies []string) *Scheduler {
	return &Scheduler{driver: driver, analyzer: analyzer, companies: companies}
}

// Start registers the analysis run with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.analyzer == nil {
		return nil
	}

	job := func(trigger time.Time) {
		s.analyzer.logger.Info("scheduled analysis", "trigger", trigger.Format(time.RFC3339), "companies", len(s.companies))
		if err := s.analyzer.AnalyzeAll(ctx, s.companies); err != nil {
			s.analyzer.logger.Error("scheduled analysis finished with errors", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
