package fixtures

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/source"
)

// TemplateProviderName identifies the generic template provider.
const TemplateProviderName = "templates"

// TemplateProvider builds generic news for companies without fixtures.
type TemplateProvider struct {
	now func() time.Time
}

var _ source.Provider = (*TemplateProvider)(nil)

// NewTemplateProvider creates a provider; now defaults to time.Now.
func NewTemplateProvider(now func() time.Time) *TemplateProvider {
	if now == nil {
		now = time.Now
	}
	return &TemplateProvider{now: now}
}

// Name identifies the strategy inside the registry.
func (t *TemplateProvider) Name() string {
	return TemplateProviderName
}

// Fetch renders the templates for req.Company in a fixed order.
func (t *TemplateProvider) Fetch(ctx context.Context, req source.Request) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	company := strings.TrimSpace(req.Company)
	if company == "" {
		return nil, fmt.Errorf("%w: empty company name", source.ErrUnknownCompany)
	}
	slug := strings.ReplaceAll(strings.ToLower(company), " ", "-")
	now := t.now().UTC()

	templates := []struct {
		suffix  string
		title   string
		content string
		daysAgo int
	}{
		{
			suffix:  "earnings",
			title:   "%s Reports Strong Q4 Earnings",
			content: "%s has reported strong fourth-quarter earnings, beating analyst expectations. The company's performance has been driven by increased demand and operational efficiency improvements.",
			daysAgo: 2,
		},
		{
			suffix:  "sustainability",
			title:   "%s Announces New Sustainability Initiative",
			content: "%s has announced a new sustainability initiative aimed at reducing its environmental impact. The company plans to invest in renewable energy and improve its carbon footprint.",
			daysAgo: 4,
		},
		{
			suffix:  "regulatory",
			title:   "%s Faces Regulatory Scrutiny",
			content: "%s is facing increased regulatory scrutiny over its business practices. Regulators are investigating potential compliance issues and market conduct violations.",
			daysAgo: 6,
		},
	}

	limit := len(templates)
	if req.Limit > 0 && req.Limit < limit {
		limit = req.Limit
	}

	articles := make([]domain.Article, 0, limit)
	for _, tpl := range templates[:limit] {
		url := fmt.Sprintf("https://example.com/%s-%s", slug, tpl.suffix)
		articles = append(articles, domain.Article{
			ID:          url,
			Title:       fmt.Sprintf(tpl.title, company),
			Content:     fmt.Sprintf(tpl.content, company),
			URL:         url,
			Source:      TemplateProviderName,
			PublishedAt: now.AddDate(0, 0, -tpl.daysAgo),
		})
	}
	return articles, nil
}
