package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	stageResults    *prom.CounterVec
	rendererResults *prom.CounterVec
	graphSize       *prom.GaugeVec
	resolverLookups *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers metrics on the given
// registry (a fresh one when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "moddoc",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "moddoc",
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		rendererResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "renderer_results_total",
			Help:      "Renderer completion counts by outcome",
		}, []string{"renderer", "result"}),
		graphSize: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "moddoc",
			Name:      "graph_entities",
			Help:      "Entity counts in the last ingested graph",
		}, []string{"kind"}),
		resolverLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "moddoc",
			Name:      "resolver_lookups_total",
			Help:      "External reference resolutions by cache outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults,
		pr.rendererResults, pr.graphSize, pr.resolverLookups)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncRendererResult(renderer string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	p.rendererResults.WithLabelValues(renderer, outcome).Inc()
}

func (p *PrometheusRecorder) ObserveGraphSize(namespaces, types, members int) {
	p.graphSize.WithLabelValues("namespaces").Set(float64(namespaces))
	p.graphSize.WithLabelValues("types").Set(float64(types))
	p.graphSize.WithLabelValues("members").Set(float64(members))
}

func (p *PrometheusRecorder) IncResolverResolution(cached bool) {
	outcome := "created"
	if cached {
		outcome = "cached"
	}
	p.resolverLookups.WithLabelValues(outcome).Inc()
}
