package usecase

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultMatched  = "matched"
	resultNoMatch  = "no_match"
	resultRejected = "rejected"
)

type metrics struct {
	requests *prometheus.CounterVec
	rules    *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datetime",
			Name:      "requests_total",
			Help:      "Resolver calls by operation and outcome.",
		}, []string{"operation", "result"}),
		rules: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "datetime",
			Name:      "rule_hits_total",
			Help:      "Winning grammar rule per operation.",
		}, []string{"operation", "rule"}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.rules, err = register(reg, m.rules); err != nil {
		return nil, err
	}
	return m, nil
}

// register reuses an identical collector already on reg, so several use cases can share one registry.
func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *metrics) observe(op, result, rule string) {
	m.requests.WithLabelValues(op, result).Inc()
	if rule != "" {
		m.rules.WithLabelValues(op, rule).Inc()
	}
}
