package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ESGRiskScanner/internal/config"
	"ESGRiskScanner/internal/logging"
)

func TestRunOnceWithDefaults(t *testing.T) {
	t.Setenv("ESG_SCANNER_CONFIG", "")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")
	t.Setenv("METRICS_ADDRESS", "")
	t.Setenv("ESG_COMPANIES", "Tesla,Hooli")

	cfg := config.Load()
	application, err := New(cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := application.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestNewRejectsBadTaxonomy(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	if err := os.WriteFile(path, []byte("categories:\n  economic: [inflation]\n"), 0o600); err != nil {
		t.Fatalf("write taxonomy: %v", err)
	}

	cfg := config.Config{Engine: config.EngineConfig{TaxonomyFile: path}}
	if _, err := New(cfg, logging.Discard()); err == nil {
		t.Fatalf("expected taxonomy error")
	}
}

func TestNewRejectsMissingFixtures(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Sources: config.SourcesConfig{FixturesFile: filepath.Join(t.TempDir(), "missing.yaml")}}
	if _, err := New(cfg, logging.Discard()); err == nil {
		t.Fatalf("expected fixtures error")
	}
}
