// Package metrics defines the telemetry sink used by the orchestrator and the
// quota guard. The sink is an explicit, injectable interface so components
// record events directly instead of publishing to a hidden event bus.
package metrics

import (
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds reused
// across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300} //nolint: gochecknoglobals

// Sink records one named observation with optional tags. Implementations must
// be safe for concurrent use and must never fail the caller.
type Sink interface {
	Record(name string, tags map[string]string, value float64)
}

// NopSink discards every observation.
type NopSink struct{}

// Record implements Sink.
func (NopSink) Record(string, map[string]string, float64) {}

// PromSink is a Sink backed by Prometheus collectors. Metric names ending in
// "_seconds" become histograms with DefaultBuckets; everything else becomes a
// counter incremented by the recorded value. Collectors are created lazily on
// first use; the label set of a metric is fixed by its first observation.
type PromSink struct {
	registerer prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
}

// NewPromSink creates a PromSink registering collectors on the given
// registerer (usually prometheus.DefaultRegisterer).
func NewPromSink(registerer prometheus.Registerer) *PromSink {
	return &PromSink{
		registerer: registerer,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
}

func labelNames(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for k := range tags {
		names = append(names, k)
	}
	sort.Strings(names)

	return names
}

// Record implements Sink.
func (p *PromSink) Record(name string, tags map[string]string, value float64) {
	if strings.HasSuffix(name, "_seconds") {
		p.histogram(name, tags).With(tags).Observe(value)

		return
	}

	p.counter(name, tags).With(tags).Add(value)
}

func (p *PromSink) counter(name string, tags map[string]string) *prometheus.CounterVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.counters[name]; ok {
		return c
	}

	c := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name}, labelNames(tags))
	p.registerer.MustRegister(c)
	p.counters[name] = c

	return c
}

func (p *PromSink) histogram(name string, tags map[string]string) *prometheus.HistogramVec {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.histograms[name]; ok {
		return h
	}

	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Buckets: DefaultBuckets,
	}, labelNames(tags))
	p.registerer.MustRegister(h)
	p.histograms[name] = h

	return h
}
