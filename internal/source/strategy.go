package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ESGRiskScanner/internal/config"
	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/ports"
)

// StrategySource implements ports.ArticleSource via registered providers.
type StrategySource struct {
	registry *Registry
	// companies is keyed by lower-cased company name.
	companies       map[string]config.CompanyConfig
	defaultProvider string
	fallback        string
	logger          *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the provider registry with config-defined companies.
// Companies without an explicit provider use defaultProvider; fallback serves
// companies the chosen provider does not know (empty disables the fallback).
func NewStrategySource(reg *Registry, companies []config.CompanyConfig, defaultProvider, fallback string, log *slog.Logger) *StrategySource {
	byName := make(map[string]config.CompanyConfig, len(companies))
	for _, c := range companies {
		byName[strings.ToLower(strings.TrimSpace(c.Name))] = c
	}
	return &StrategySource{
		registry:        reg,
		companies:       byName,
		defaultProvider: defaultProvider,
		fallback:        fallback,
		logger:          log,
	}
}

// FetchCompanyNews resolves the company's provider and returns up to limit articles.
func (s *StrategySource) FetchCompanyNews(ctx context.Context, company string, limit int) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("provider registry is not configured")
	}

	company = strings.TrimSpace(company)
	if company == "" {
		return nil, fmt.Errorf("company name is empty")
	}

	providerName := s.defaultProvider
	var options map[string]string
	if cfg, ok := s.companies[strings.ToLower(company)]; ok {
		if cfg.Source != "" {
			providerName = cfg.Source
		}
		options = cfg.Options
	}

	req := Request{Company: company, Limit: limit, Options: options}

	s.debug("fetch company news", "company", company, "provider", providerName, "limit", limit)
	articles, err := s.fetch(ctx, providerName, req)
	if errors.Is(err, ErrUnknownCompany) && s.fallback != "" && s.fallback != providerName {
		s.debug("provider has no news, using fallback", "company", company, "provider", providerName, "fallback", s.fallback)
		articles, err = s.fetch(ctx, s.fallback, req)
	}
	if err != nil {
		return nil, fmt.Errorf("company %s: %w", company, err)
	}

	for i := range articles {
		if articles[i].Source == "" {
			articles[i].Source = providerName
		}
	}
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	s.debug("provider produced articles", "company", company, "count", len(articles))
	return articles, nil
}

func (s *StrategySource) fetch(ctx context.Context, providerName string, req Request) ([]domain.Article, error) {
	provider, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}
	articles, err := provider.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", providerName, err)
	}
	return articles, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
