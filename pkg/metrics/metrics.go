// Package metrics exposes the daemon's Prometheus instrumentation: active
// session gauges, rate-limiter throughput, ACME renewal outcomes, and
// autobanner activity, registered on a dedicated registry via promauto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every gauge/counter/histogram the daemon publishes. A nil
// *Metrics is valid and every method on it is a no-op, so callers can
// construct one unconditionally and only skip Handler() when disabled.
type Metrics struct {
	reg *prometheus.Registry

	ActiveSessions   prometheus.Gauge
	AuthAttempts     *prometheus.CounterVec
	BytesTransferred *prometheus.CounterVec
	TransferRate     prometheus.Histogram
	AutobanBans      prometheus.Counter
	ACMERenewals     *prometheus.CounterVec
}

// New creates a fresh registry and registers every metric under it. Pass
// the result's Handler to an HTTP server when cfg.Metrics.Enabled.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return &Metrics{
		reg: reg,
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "ftpserverd_active_sessions",
			Help: "Number of currently connected FTP control sessions.",
		}),
		AuthAttempts: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ftpserverd_auth_attempts_total",
			Help: "Authentication attempts by result.",
		}, []string{"result"}),
		BytesTransferred: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ftpserverd_bytes_transferred_total",
			Help: "Bytes transferred by direction.",
		}, []string{"direction"}),
		TransferRate: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ftpserverd_transfer_rate_bytes_per_second",
			Help:    "Observed per-transfer throughput after rate limiting.",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		AutobanBans: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "ftpserverd_autoban_bans_total",
			Help: "Number of IPs banned by the autobanner.",
		}),
		ACMERenewals: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ftpserverd_acme_renewals_total",
			Help: "ACME certificate renewal attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// Handler returns the HTTP handler serving the registered metrics in the
// Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// RecordAuth increments AuthAttempts for the given result label ("success",
// "invalid_credentials", "disabled", "banned", ...).
func (m *Metrics) RecordAuth(result string) {
	if m == nil {
		return
	}
	m.AuthAttempts.WithLabelValues(result).Inc()
}

// RecordTransfer records bytes moved in one direction ("upload" or
// "download") and the observed throughput.
func (m *Metrics) RecordTransfer(direction string, bytes int64, bytesPerSec float64) {
	if m == nil {
		return
	}
	m.BytesTransferred.WithLabelValues(direction).Add(float64(bytes))
	m.TransferRate.Observe(bytesPerSec)
}

// RecordBan increments AutobanBans.
func (m *Metrics) RecordBan() {
	if m == nil {
		return
	}
	m.AutobanBans.Inc()
}

// RecordACMERenewal increments ACMERenewals for the given outcome
// ("issued", "renewed", "failed").
func (m *Metrics) RecordACMERenewal(outcome string) {
	if m == nil {
		return
	}
	m.ACMERenewals.WithLabelValues(outcome).Inc()
}

// SessionOpened/SessionClosed adjust ActiveSessions.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
