package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ESGRiskScanner/internal/esg"
	"ESGRiskScanner/internal/ports"
)

const namespace = "esg_scanner"

// Recorder implements ports.MetricsRecorder with Prometheus collectors.
type Recorder struct {
	gatherer prometheus.Gatherer

	articlesScored  *prometheus.CounterVec
	articleFailures *prometheus.CounterVec
	eventsDetected  *prometheus.CounterVec
	riskScore       *prometheus.GaugeVec
	analysisDur     prometheus.Histogram
}

var _ ports.MetricsRecorder = (*Recorder)(nil)

// NewRecorder registers collectors on a private registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{gatherer: reg}
	r.articlesScored = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_scored_total",
		Help:      "Articles assessed by the scoring engine.",
	}, []string{"company"})
	r.articleFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_failures_total",
		Help:      "Articles skipped because they could not be assessed.",
	}, []string{"company", "reason"})
	r.eventsDetected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_detected_total",
		Help:      "ESG events detected, by category.",
	}, []string{"category"})
	r.riskScore = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "risk_score",
		Help:      "Latest risk score per company and dimension.",
	}, []string{"company", "dimension"})
	r.analysisDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Time spent analysing one company.",
		Buckets:   prometheus.DefBuckets,
	})

	reg.MustRegister(r.articlesScored, r.articleFailures, r.eventsDetected, r.riskScore, r.analysisDur)
	return r
}

// ArticleScored counts one assessed article and its events.
func (r *Recorder) ArticleScored(company string, events []esg.Event) {
	r.articlesScored.WithLabelValues(company).Inc()
	for _, ev := range events {
		category := string(ev.Category())
		if category == "" {
			category = "unknown"
		}
		r.eventsDetected.WithLabelValues(category).Inc()
	}
}

// ArticleFailed counts an article skipped for reason.
func (r *Recorder) ArticleFailed(company, reason string) {
	r.articleFailures.WithLabelValues(company, reason).Inc()
}

// CompanyAnalyzed publishes the company's latest scores and the run duration.
func (r *Recorder) CompanyAnalyzed(company string, score esg.RiskScore, took time.Duration) {
	r.riskScore.WithLabelValues(company, "overall").Set(score.Overall)
	for _, c := range esg.Categories() {
		r.riskScore.WithLabelValues(company, string(c)).Set(score.ByCategory(c))
	}
	r.analysisDur.Observe(took.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
