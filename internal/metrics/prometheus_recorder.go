package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	stageDuration *prom.HistogramVec
	stageResults  *prom.CounterVec
	documents     *prom.CounterVec
	loadOutcome   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers the metrics on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docconf",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual configuration-load stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docconf",
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.documents = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docconf",
		Name:      "documents_staged_total",
		Help:      "Source files written to the staging directory",
	}, []string{"mode"})
	pr.loadOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docconf",
		Name:      "load_outcomes_total",
		Help:      "Configuration loads by final status",
	}, []string{"outcome"})
	reg.MustRegister(pr.stageDuration, pr.stageResults, pr.documents, pr.loadOutcome)
	return pr
}

// Registry returns the registry the metrics were registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) AddDocumentsStaged(substituted, copied int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues("substituted").Add(float64(substituted))
	p.documents.WithLabelValues("copied").Add(float64(copied))
}

func (p *PrometheusRecorder) IncLoadOutcome(outcome string) {
	if p == nil || p.loadOutcome == nil {
		return
	}
	p.loadOutcome.WithLabelValues(outcome).Inc()
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
