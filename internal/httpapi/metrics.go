package httpapi

import "github.com/prometheus/client_golang/prometheus"

// apiMetrics counts auth operation outcomes. Labels: operation
// (register|login|refresh|logout), result (success|failure).
type apiMetrics struct {
	authOps *prometheus.CounterVec
}

func newAPIMetrics(reg prometheus.Registerer) *apiMetrics {
	m := &apiMetrics{
		authOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inkwell",
			Subsystem: "auth",
			Name:      "operations_total",
			Help:      "Auth operation outcomes.",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(m.authOps)
	return m
}

func (m *apiMetrics) observe(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.authOps.WithLabelValues(operation, result).Inc()
}
