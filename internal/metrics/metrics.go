/*
Copyright 2025 The simnorm Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics counts normalization work and diagnostics in a Prometheus registry.
package metrics

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matsim-io/simnorm/pkg/diagnostics"
)

const namespace = "simnorm"

// Entity kinds used as the kind label of the entities counter.
const (
	EntitySimulation    = "simulation"
	EntityModelSystem   = "model_system"
	EntityAtomicCell    = "atomic_cell"
	EntityAtomsState    = "atoms_state"
	EntityOrbitalsState = "orbitals_state"
)

// Metrics holds the collectors of one normalization run.
type Metrics struct {
	registry    *prometheus.Registry
	entities    *prometheus.CounterVec
	diagnostics *prometheus.CounterVec
	duration    prometheus.Histogram
	failures    prometheus.Counter
}

// New registers the simnorm collectors in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "normalized_entities_total",
			Help:      "Entities normalized, by kind.",
		}, []string{"kind"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Problems logged during normalization, by kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_normalization_seconds",
			Help:      "Time spent normalizing one simulation.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "document_failures_total",
			Help:      "Documents that could not be read or written.",
		}),
	}
	m.registry.MustRegister(m.entities, m.diagnostics, m.duration, m.failures)
	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Entities returns the counter of normalized entities, labelled by kind.
func (m *Metrics) Entities() *prometheus.CounterVec { return m.entities }

// Diagnostics returns the counter of logged problems, labelled by diagnostics kind.
func (m *Metrics) Diagnostics() *prometheus.CounterVec { return m.diagnostics }

// ObserveEntities adds n normalized entities of kind.
func (m *Metrics) ObserveEntities(kind string, n int) {
	if n > 0 {
		m.entities.WithLabelValues(kind).Add(float64(n))
	}
}

// ObserveDiagnostic counts err under its diagnostics kind.
func (m *Metrics) ObserveDiagnostic(err error) {
	if kind := diagnostics.KindOf(err); kind != "" {
		m.diagnostics.WithLabelValues(string(kind)).Inc()
	}
}

// ObserveDuration records the normalization time of one simulation.
func (m *Metrics) ObserveDuration(d time.Duration) {
	m.duration.Observe(d.Seconds())
}

// ObserveFailure counts a document that could not be processed.
func (m *Metrics) ObserveFailure() {
	m.failures.Inc()
}

// WriteTextfile writes the registry in the Prometheus textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// WrapLogger returns a logger that counts every error it logs before passing it on.
// Caller annotations of the wrapped logger keep pointing at the logging call site.
func (m *Metrics) WrapLogger(logger logr.Logger) logr.Logger {
	sink := logger.GetSink()
	if sink == nil {
		sink = nopSink{}
	}
	return logr.New(newCountingSink(sink, m))
}

// countingSink forwards to an already initialized sink. Its own Info and Error frames are
// skipped through the wrapped sink's call depth when it supports one.
type countingSink struct {
	logr.LogSink
	calls logr.LogSink
	m     *Metrics
}

func newCountingSink(sink logr.LogSink, m *Metrics) countingSink {
	calls := sink
	if cd, ok := sink.(logr.CallDepthLogSink); ok {
		calls = cd.WithCallDepth(1)
	}
	return countingSink{LogSink: sink, calls: calls, m: m}
}

func (countingSink) Init(logr.RuntimeInfo) {}

func (s countingSink) Info(level int, msg string, keysAndValues ...any) {
	s.calls.Info(level, msg, keysAndValues...)
}

func (s countingSink) Error(err error, msg string, keysAndValues ...any) {
	s.m.ObserveDiagnostic(err)
	s.calls.Error(err, msg, keysAndValues...)
}

func (s countingSink) WithValues(keysAndValues ...any) logr.LogSink {
	return newCountingSink(s.LogSink.WithValues(keysAndValues...), s.m)
}

func (s countingSink) WithName(name string) logr.LogSink {
	return newCountingSink(s.LogSink.WithName(name), s.m)
}

func (s countingSink) WithCallDepth(depth int) logr.LogSink {
	if cd, ok := s.LogSink.(logr.CallDepthLogSink); ok {
		return newCountingSink(cd.WithCallDepth(depth), s.m)
	}
	return s
}

type nopSink struct{}

func (nopSink) Init(logr.RuntimeInfo)            {}
func (nopSink) Enabled(int) bool                 { return false }
func (nopSink) Info(int, string, ...any)         {}
func (nopSink) Error(error, string, ...any)      {}
func (n nopSink) WithValues(...any) logr.LogSink { return n }
func (n nopSink) WithName(string) logr.LogSink   { return n }
