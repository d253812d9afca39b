package source

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ESGRiskScanner/internal/config"
	"ESGRiskScanner/internal/domain"
)

type stubProvider struct {
	name     string
	known    map[string]int
	requests []Request
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(_ context.Context, req Request) ([]domain.Article, error) {
	s.requests = append(s.requests, req)
	n, ok := s.known[req.Company]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompany, req.Company)
	}
	articles := make([]domain.Article, n)
	for i := range articles {
		articles[i] = domain.Article{ID: fmt.Sprintf("%s-%s-%d", s.name, req.Company, i)}
	}
	return articles, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&stubProvider{name: "fixtures"})

	if _, err := reg.Resolve("fixtures"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if _, err := reg.Resolve("rss"); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}

func TestStrategySourceRoutesByCompany(t *testing.T) {
	t.Parallel()

	fixtures := &stubProvider{name: "fixtures", known: map[string]int{"Tesla": 3}}
	templates := &stubProvider{name: "templates", known: map[string]int{"Acme": 3, "Globex": 3}}

	reg := NewRegistry()
	reg.Register(fixtures)
	reg.Register(templates)

	companies := []config.CompanyConfig{
		{Name: "acme", Source: "templates", Options: map[string]string{"region": "eu"}},
	}
	src := NewStrategySource(reg, companies, "fixtures", "templates", nil)

	got, err := src.FetchCompanyNews(context.Background(), "Tesla", 2)
	if err != nil {
		t.Fatalf("FetchCompanyNews returned error: %v", err)
	}
	if len(got) != 2 || got[0].Source != "fixtures" {
		t.Fatalf("unexpected articles: %+v", got)
	}

	if _, err := src.FetchCompanyNews(context.Background(), "Acme", 10); err != nil {
		t.Fatalf("FetchCompanyNews returned error: %v", err)
	}
	if len(templates.requests) != 1 || templates.requests[0].Options["region"] != "eu" {
		t.Fatalf("company options not forwarded: %+v", templates.requests)
	}
}

func TestStrategySourceFallback(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&stubProvider{name: "fixtures", known: map[string]int{}})
	reg.Register(&stubProvider{name: "templates", known: map[string]int{"Globex": 3}})

	src := NewStrategySource(reg, nil, "fixtures", "templates", nil)
	got, err := src.FetchCompanyNews(context.Background(), "Globex", 10)
	if err != nil {
		t.Fatalf("FetchCompanyNews returned error: %v", err)
	}
	if len(got) != 3 || got[0].ID != "templates-Globex-0" {
		t.Fatalf("expected fallback articles, got %+v", got)
	}

	noFallback := NewStrategySource(reg, nil, "fixtures", "", nil)
	if _, err := noFallback.FetchCompanyNews(context.Background(), "Globex", 10); !errors.Is(err, ErrUnknownCompany) {
		t.Fatalf("expected ErrUnknownCompany, got %v", err)
	}
}

func TestStrategySourceErrors(t *testing.T) {
	t.Parallel()

	if _, err := (&StrategySource{}).FetchCompanyNews(context.Background(), "Tesla", 1); err == nil {
		t.Fatalf("expected error without registry")
	}

	src := NewStrategySource(NewRegistry(), nil, "fixtures", "", nil)
	if _, err := src.FetchCompanyNews(context.Background(), "  ", 1); err == nil {
		t.Fatalf("expected error for blank company")
	}
	if _, err := src.FetchCompanyNews(context.Background(), "Tesla", 1); err == nil {
		t.Fatalf("expected error for unregistered provider")
	}
}
