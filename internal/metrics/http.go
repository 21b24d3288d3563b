package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTP and authorization metrics. Defined in a standalone package to avoid
// import cycles between middlewares and services.

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "Duración de requests HTTP en milisegundos",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route", "status"})

	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Intentos de login por resultado",
	}, []string{"result"}) // success | invalid_credentials | tenant_required | disabled | tenant_inactive | error

	AuthzDenials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authz_denials_total",
		Help: "Rechazos de autorización por motivo",
	}, []string{"reason"}) // forbidden | no_tenant

	TokensIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "tokens_issued_total",
		Help: "Capability tokens emitidos",
	})
)

// Register registers all metrics on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		HTTPRequestDuration,
		LoginAttempts,
		AuthzDenials,
		TokensIssued,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
