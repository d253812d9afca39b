// Package report renders risk digests as fixed-width text.
package report

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"ESGRiskScanner/internal/domain"
)

var header = []string{"Company", "Overall", "Env", "Social", "Gov", "Articles"}

// Table renders one row per company. Columns are padded by display width so
// wide (CJK) or accented company names stay aligned.
func Table(rows []domain.CompanySummary) string {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, header)
	for _, r := range rows {
		cells = append(cells, []string{
			r.Name,
			formatScore(r.Risk.Overall),
			formatScore(r.Risk.Environmental),
			formatScore(r.Risk.Social),
			formatScore(r.Risk.Governance),
			fmt.Sprintf("%d", r.TotalArticles),
		})
	}

	widths := make([]int, len(header))
	for _, row := range cells {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for i, row := range cells {
		writeRow(&sb, row, widths)
		if i == 0 {
			sep := make([]string, len(widths))
			for j, w := range widths {
				sep[j] = strings.Repeat("-", w)
			}
			writeRow(&sb, sep, widths)
		}
	}
	return sb.String()
}

// Digest wraps the table for chat delivery.
func Digest(title string, rows []domain.CompanySummary) string {
	if len(rows) == 0 {
		return ""
	}
	return fmt.Sprintf("*%s*\n```\n%s```", title, Table(rows))
}

func writeRow(sb *strings.Builder, row []string, widths []int) {
	for i, cell := range row {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == 0 {
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		} else {
			sb.WriteString(runewidth.FillLeft(cell, widths[i]))
		}
	}
	sb.WriteString("\n")
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
