package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "wikimigrate"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry         *prom.Registry
	documentsScanned prom.Counter
	documentsChanged prom.Counter
	decodeFallbacks  prom.Counter
	replacements     *prom.CounterVec
	stageDuration    *prom.HistogramVec
	transportRetries *prom.CounterVec
	outcomes         *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		documentsScanned: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_scanned_total",
			Help:      "Markdown documents visited by the link rewriter",
		}),
		documentsChanged: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_changed_total",
			Help:      "Markdown documents rewritten in place",
		}),
		decodeFallbacks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "decode_fallbacks_total",
			Help:      "Documents that were not valid UTF-8 and were decoded as latin-1",
		}),
		replacements: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_replacements_total",
			Help:      "Links rewritten by rule kind",
		}, []string{"kind"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of migration stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		transportRetries: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "transport_retries_total",
			Help:      "Retries of transient git transport failures",
		}, []string{"operation"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Migration runs by final status",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.documentsScanned, pr.documentsChanged, pr.decodeFallbacks, pr.replacements,
		pr.stageDuration, pr.transportRetries, pr.outcomes)
	return pr
}

func (p *PrometheusRecorder) IncDocumentsScanned() { p.documentsScanned.Inc() }
func (p *PrometheusRecorder) IncDocumentsChanged() { p.documentsChanged.Inc() }
func (p *PrometheusRecorder) IncDecodeFallback()   { p.decodeFallbacks.Inc() }

func (p *PrometheusRecorder) AddReplacements(kind string, n int) {
	if n <= 0 {
		return
	}
	p.replacements.WithLabelValues(kind).Add(float64(n))
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTransportRetry(op string) {
	p.transportRetries.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncOutcome(outcome OutcomeLabel) {
	p.outcomes.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes the current metric values in the text exposition format,
// suitable for the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
