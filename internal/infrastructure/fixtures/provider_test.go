package fixtures

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ESGRiskScanner/internal/esg"
	"ESGRiskScanner/internal/source"
)

func clock() time.Time {
	return time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
}

func TestCompanyKey(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Tesla":          "tesla",
		"Tesla, Inc.":    "tesla",
		"Exxon Corp":     "exxon",
		"Google Inc":     "google",
		"Amazon":         "amazon",
		"Inc":            "inc",
		"Acme Corp Inc.": "acme",
	}
	for in, want := range tests {
		if got := CompanyKey(in); got != want {
			t.Fatalf("CompanyKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProviderDefaultSet(t *testing.T) {
	t.Parallel()

	p := NewProvider(DefaultSet(), clock)
	articles, err := p.Fetch(context.Background(), source.Request{Company: "ExxonMobil Corp", Limit: 10})
	if !errors.Is(err, source.ErrUnknownCompany) {
		t.Fatalf("expected ErrUnknownCompany for unknown key, got %v (%d articles)", err, len(articles))
	}

	articles, err = p.Fetch(context.Background(), source.Request{Company: "Exxon Corp", Limit: 2})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(articles))
	}
	if articles[0].ID != "https://example.com/exxon-fine" || articles[0].Source != ProviderName {
		t.Fatalf("unexpected article: %+v", articles[0])
	}
	if want := clock().AddDate(0, 0, -1); !articles[0].PublishedAt.Equal(want) {
		t.Fatalf("unexpected published date: %v", articles[0].PublishedAt)
	}
}

func TestDefaultFixturesProduceSignals(t *testing.T) {
	t.Parallel()

	p := NewProvider(DefaultSet(), clock)
	engine := esg.Default()

	articles, err := p.Fetch(context.Background(), source.Request{Company: "exxon"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	var batch []esg.Assessment
	for _, a := range articles {
		assessment, err := engine.Assess(esg.Document{Content: a.Content})
		if err != nil {
			t.Fatalf("Assess returned error: %v", err)
		}
		batch = append(batch, assessment)
	}

	score := engine.Evaluate(batch)
	if score.Environmental == 0 || score.Social == 0 {
		t.Fatalf("expected environmental and social signals, got %+v", score)
	}
	if score.Overall <= 0 || score.Overall > 1 {
		t.Fatalf("overall out of range: %+v", score)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixtures.yaml")
	content := `
companies:
  "Globex Corp":
    - title: Globex bribery probe
      content: Prosecutors opened a bribery investigation into Globex.
      url: https://example.com/globex-bribery
      daysAgo: 3
      sentiment: -0.8
    - title: Globex quarterly update
      content: Revenue grew.
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixtures: %v", err)
	}

	set, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}

	articles, err := NewProvider(set, clock).Fetch(context.Background(), source.Request{Company: "globex"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Sentiment == nil || *articles[0].Sentiment != -0.8 {
		t.Fatalf("sentiment not loaded: %+v", articles[0])
	}
	if articles[1].ID != "globex-2" || articles[1].Sentiment != nil {
		t.Fatalf("unexpected second article: %+v", articles[1])
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestProviderMergesAliasesInNameOrder(t *testing.T) {
	t.Parallel()

	set := Set{Companies: map[string][]Fixture{
		"Acme Inc":  {{Title: "second", URL: "https://example.com/acme-2"}},
		"Acme":      {{Title: "first", URL: "https://example.com/acme-1"}},
		"ACME Corp": {{Title: "zeroth", URL: "https://example.com/acme-0"}},
	}}

	for i := 0; i < 20; i++ {
		articles, err := NewProvider(set, clock).Fetch(context.Background(), source.Request{Company: "acme"})
		if err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
		if len(articles) != 3 {
			t.Fatalf("expected merged aliases, got %d articles", len(articles))
		}
		got := []string{articles[0].Title, articles[1].Title, articles[2].Title}
		if got[0] != "zeroth" || got[1] != "first" || got[2] != "second" {
			t.Fatalf("run %d: unexpected order %v", i, got)
		}
	}
}

func TestTemplateProvider(t *testing.T) {
	t.Parallel()

	p := NewTemplateProvider(clock)
	articles, err := p.Fetch(context.Background(), source.Request{Company: "Initech Systems", Limit: 2})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[1].URL != "https://example.com/initech-systems-sustainability" {
		t.Fatalf("unexpected url: %s", articles[1].URL)
	}
	if !strings.HasPrefix(articles[1].Content, "Initech Systems has announced") {
		t.Fatalf("company not rendered into content: %s", articles[1].Content)
	}

	all, err := p.Fetch(context.Background(), source.Request{Company: "Initech"})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected all templates without limit, got %d", len(all))
	}

	if _, err := p.Fetch(context.Background(), source.Request{Company: " "}); !errors.Is(err, source.ErrUnknownCompany) {
		t.Fatalf("expected ErrUnknownCompany, got %v", err)
	}
}

func TestProvidersThroughStrategySource(t *testing.T) {
	t.Parallel()

	reg := source.NewRegistry()
	reg.Register(NewProvider(DefaultSet(), clock))
	reg.Register(NewTemplateProvider(clock))

	src := source.NewStrategySource(reg, nil, ProviderName, TemplateProviderName, nil)

	tesla, err := src.FetchCompanyNews(context.Background(), "Tesla Inc", 10)
	if err != nil || len(tesla) != 3 || tesla[0].Source != ProviderName {
		t.Fatalf("unexpected tesla result: %v %+v", err, tesla)
	}

	unknown, err := src.FetchCompanyNews(context.Background(), "Hooli", 10)
	if err != nil || len(unknown) != 3 || unknown[0].Source != TemplateProviderName {
		t.Fatalf("unexpected fallback result: %v %+v", err, unknown)
	}
}
