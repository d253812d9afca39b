package report

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"ESGRiskScanner/internal/domain"
	"ESGRiskScanner/internal/esg"
)

func TestTableAlignsWideNames(t *testing.T) {
	t.Parallel()

	rows := []domain.CompanySummary{
		{Name: "Exxon", Risk: esg.RiskScore{Overall: 0.712, Environmental: 0.8, Social: 0.8}, TotalArticles: 3},
		{Name: "トヨタ", Risk: esg.RiskScore{Overall: 0.4, Governance: 0.6}, TotalArticles: 12},
	}

	out := Table(rows)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %d lines:\n%s", len(lines), out)
	}

	width := runewidth.StringWidth(lines[0])
	for i, line := range lines {
		if w := runewidth.StringWidth(line); w != width {
			t.Fatalf("line %d has width %d, want %d:\n%s", i, w, width, out)
		}
	}

	if !strings.HasPrefix(lines[2], "Exxon ") || !strings.Contains(lines[2], "0.71") {
		t.Fatalf("unexpected row: %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "12") {
		t.Fatalf("article count should be right-aligned: %q", lines[3])
	}
}

func TestDigest(t *testing.T) {
	t.Parallel()

	if Digest("ESG risk", nil) != "" {
		t.Fatalf("empty digest expected for no rows")
	}

	out := Digest("ESG risk", []domain.CompanySummary{{Name: "Tesla", Risk: esg.RiskScore{Overall: 0.5}}})
	if !strings.HasPrefix(out, "*ESG risk*\n```\n") || !strings.HasSuffix(out, "```") {
		t.Fatalf("unexpected digest framing: %q", out)
	}
}
