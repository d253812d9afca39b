package fixtures

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/source"
)

// ProviderName identifies the fixture provider inside the registry.
const ProviderName = "fixtures"

// Fixture is one canned article as stored in a fixtures file.
type Fixture struct {
	Title     string   `yaml:"title"`
	Content   string   `yaml:"content"`
	URL       string   `yaml:"url"`
	DaysAgo   int      `yaml:"daysAgo"`
	Sentiment *float64 `yaml:"sentiment,omitempty"`
}

// Set maps normalised company keys to their fixtures.
type Set struct {
	Companies map[string][]Fixture `yaml:"companies"`
}

// Provider serves articles from a fixture set.
type Provider struct {
	companies map[string][]Fixture
	now       func() time.Time
}

var _ source.Provider = (*Provider)(nil)

// NewProvider indexes the set by normalised company key; now defaults to time.Now.
// Names sharing a key are merged in sorted name order.
func NewProvider(set Set, now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	names := make([]string, 0, len(set.Companies))
	for name := range set.Companies {
		names = append(names, name)
	}
	sort.Strings(names)

	companies := make(map[string][]Fixture, len(set.Companies))
	for _, name := range names {
		key := CompanyKey(name)
		companies[key] = append(companies[key], set.Companies[name]...)
	}
	return &Provider{companies: companies, now: now}
}

// Name identifies the strategy inside the registry.
func (p *Provider) Name() string {
	return ProviderName
}

// Fetch returns the company's fixtures or source.ErrUnknownCompany.
func (p *Provider) Fetch(ctx context.Context, req source.Request) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := CompanyKey(req.Company)
	items, ok := p.companies[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", source.ErrUnknownCompany, req.Company)
	}

	if req.Limit > 0 && len(items) > req.Limit {
		items = items[:req.Limit]
	}

	now := p.now().UTC()
	articles := make([]domain.Article, 0, len(items))
	for i, f := range items {
		id := f.URL
		if id == "" {
			id = fmt.Sprintf("%s-%d", key, i+1)
		}
		articles = append(articles, domain.Article{
			ID:          id,
			Title:       f.Title,
			Content:     f.Content,
			URL:         f.URL,
			Source:      ProviderName,
			PublishedAt: now.AddDate(0, 0, -f.DaysAgo),
			Sentiment:   f.Sentiment,
		})
	}
	return articles, nil
}

// CompanyKey lower-cases a company name, drops spaces and punctuation and
// strips trailing "inc"/"corp" suffixes.
func CompanyKey(name string) string {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '.', ',':
			return -1
		}
		return r
	}, strings.ToLower(name))

	for _, suffix := range []string{"inc", "corp"} {
		if trimmed := strings.TrimSuffix(key, suffix); trimmed != "" {
			key = trimmed
		}
	}
	return key
}

// LoadFile reads a YAML fixture set.
func LoadFile(path string) (Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read fixtures %s: %w", path, err)
	}

	var set Set
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return Set{}, fmt.Errorf("parse fixtures %s: %w", path, err)
	}
	return set, nil
}

// DefaultSet returns the built-in demonstration fixtures.
func DefaultSet() Set {
	return Set{Companies: map[string][]Fixture{
		"tesla": {
			{
				Title:   "Tesla Faces New Labor Disputes at German Gigafactory",
				Content: "Tesla is facing renewed labor disputes at its German Gigafactory as workers demand better working conditions and higher wages. The company has been criticized for its approach to labor relations and workplace safety standards.",
				URL:     "https://example.com/tesla-labor-disputes",
				DaysAgo: 2,
			},
			{
				Title:   "Tesla Reports Record Carbon Emissions Despite EV Focus",
				Content: "Despite being an electric vehicle manufacturer, Tesla has reported record carbon emissions from its manufacturing processes. Environmental groups are calling for greater transparency in the company's environmental impact reporting.",
				URL:     "https://example.com/tesla-emissions",
				DaysAgo: 5,
			},
			{
				Title:   "Tesla Autopilot Under Regulatory Scrutiny After Accidents",
				Content: "Tesla's Autopilot system is facing increased regulatory scrutiny following several accidents. The National Highway Traffic Safety Administration is investigating potential safety violations.",
				URL:     "https://example.com/tesla-autopilot",
				DaysAgo: 7,
			},
		},
		"exxon": {
			{
				Title:   "ExxonMobil Fined $2.5M for Environmental Violations",
				Content: "ExxonMobil has been fined $2.5 million for environmental violations at its Texas refinery. The company failed to properly report emissions and violated multiple environmental regulations.",
				URL:     "https://example.com/exxon-fine",
				DaysAgo: 1,
			},
			{
				Title:   "ExxonMobil Oil Spill Cleanup Costs Reach $50M",
				Content: "Cleanup costs for a recent oil spill at an ExxonMobil facility have reached $50 million. The spill has caused significant environmental damage and affected local communities.",
				URL:     "https://example.com/exxon-spill",
				DaysAgo: 3,
			},
			{
				Title:   "ExxonMobil Workers Strike Over Safety Concerns",
				Content: "Workers at ExxonMobil facilities are striking over safety concerns and inadequate protective equipment. The union claims the company has ignored multiple safety violations.",
				URL:     "https://example.com/exxon-strike",
				DaysAgo: 6,
			},
		},
		"google": {
			{
				Title:   "Google Faces Antitrust Lawsuit Over Search Dominance",
				Content: "Google is facing a major antitrust lawsuit over its dominance in search and advertising markets. The lawsuit alleges anti-competitive practices and market manipulation.",
				URL:     "https://example.com/google-antitrust",
				DaysAgo: 2,
			},
			{
				Title:   "Google Data Center Emissions Under Scrutiny",
				Content: "Google's data centers are under scrutiny for their massive energy consumption and carbon emissions. Despite renewable energy commitments, the company's carbon footprint continues to grow.",
				URL:     "https://example.com/google-emissions",
				DaysAgo: 4,
			},
			{
				Title:   "Google Employees Protest Military Contracts",
				Content: "Google employees are protesting the company's military contracts, citing ethical concerns about AI technology being used in warfare. The protests highlight ongoing governance issues.",
				URL:     "https://example.com/google-protests",
				DaysAgo: 8,
			},
		},
		"amazon": {
			{
				Title:   "Amazon Warehouse Workers File Safety Complaints",
				Content: "Amazon warehouse workers have filed numerous safety complaints about working conditions, including inadequate breaks and unsafe equipment. The company faces multiple workplace safety violations.",
				URL:     "https://example.com/amazon-safety",
				DaysAgo: 1,
			},
			{
				Title:   "Amazon Fined for Environmental Waste Management Violations",
				Content: "Amazon has been fined for improper waste management and environmental violations at its fulfillment centers. The company failed to properly dispose of hazardous materials.",
				URL:     "https://example.com/amazon-waste",
				DaysAgo: 5,
			},
			{
				Title:   "Amazon Unionization Efforts Gain Momentum",
				Content: "Unionization efforts at Amazon facilities are gaining momentum as workers demand better wages and working conditions. The company has been criticized for its anti-union practices.",
				URL:     "https://example.com/amazon-union",
				DaysAgo: 9,
			},
		},
	}}
}
