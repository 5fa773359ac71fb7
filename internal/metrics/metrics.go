// Package metrics records statement and connection outcomes as Prometheus
// metrics. A CLI run is short-lived, so metrics are pushed to a Pushgateway
// rather than scraped.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/leapstack-labs/chainsql/pkg/adapter"
	"github.com/leapstack-labs/chainsql/pkg/guard"
)

// Outcome label values.
const (
	OutcomeOK           = "ok"
	OutcomeRejected     = "rejected"
	OutcomeNotConnected = "not_connected"
	OutcomeError        = "error"
)

// Collector owns a private registry and the chainsql metrics in it.
type Collector struct {
	reg *prometheus.Registry

	statements *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rejections *prometheus.CounterVec
	connects   *prometheus.CounterVec
}

// New returns a Collector backed by a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		reg: reg,
		statements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsql_statements_total",
			Help: "Terminal builder calls by operation and outcome",
		}, []string{"op", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chainsql_statement_duration_seconds",
			Help:    "Time spent in terminal builder calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsql_rejected_tokens_total",
			Help: "Fragments rejected as reserved words, by reserved set",
		}, []string{"set"}),
		connects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsql_connect_attempts_total",
			Help: "Connection attempts by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveStatement records one terminal builder call.
func (c *Collector) ObserveStatement(op string, elapsed time.Duration, err error) {
	c.statements.WithLabelValues(op, Outcome(err)).Inc()
	c.duration.WithLabelValues(op).Observe(elapsed.Seconds())

	var ie *guard.InjectionError
	if errors.As(err, &ie) {
		c.rejections.WithLabelValues(ie.Set.String()).Inc()
	}
}

// ObserveConnect records one connection attempt.
func (c *Collector) ObserveConnect(err error) {
	c.connects.WithLabelValues(Outcome(err)).Inc()
}

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.reg
}

// Push sends every metric to the Pushgateway at url under job, replacing
// what was pushed for the job before.
func (c *Collector) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(c.reg).PushContext(ctx)
}

// Outcome classifies err for the outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, guard.ErrPotentialInjection):
		return OutcomeRejected
	case errors.Is(err, adapter.ErrNotConnected):
		return OutcomeNotConnected
	default:
		return OutcomeError
	}
}
