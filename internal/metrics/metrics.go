// Package metrics exposes billing and HTTP counters for Prometheus.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kost"

// Payment kinds relative to the bill's final cost
const (
	PaymentExact     = "exact"
	PaymentOverpaid  = "overpaid"
	PaymentUnderpaid = "underpaid"
)

// Metrics holds the service collectors
type Metrics struct {
	readingsRecorded  prometheus.Counter
	paymentsRecorded  *prometheus.CounterVec
	creditApplied     prometheus.Counter
	overpaymentCredit prometheus.Counter
	rooms             prometheus.Gauge
	snapshotFailures  prometheus.Counter
	backups           *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with registerer
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		readingsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_recorded_total",
			Help:      "Meter readings recorded.",
		}),
		paymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payments recorded, by comparison with the bill's final cost.",
		}, []string{"kind"}),
		creditApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_applied_rupiah_total",
			Help:      "Rollover credit consumed by new readings, in Rupiah.",
		}),
		overpaymentCredit: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overpayment_credit_rupiah_total",
			Help:      "Credit created from overpayments, in Rupiah.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Registered rooms.",
		}),
		snapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_save_failures_total",
			Help:      "Mutations rolled back because the snapshot could not be saved.",
		}),
		backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backups_total",
			Help:      "Snapshot backups, by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.readingsRecorded,
		m.paymentsRecorded,
		m.creditApplied,
		m.overpaymentCredit,
		m.rooms,
		m.snapshotFailures,
		m.backups,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// ReadingRecorded counts a reading and the credit it consumed
func (m *Metrics) ReadingRecorded(creditApplied float64) {
	if m == nil {
		return
	}
	m.readingsRecorded.Inc()
	if creditApplied > 0 {
		m.creditApplied.Add(creditApplied)
	}
}

// PaymentRecorded counts a payment against the bill's final cost
func (m *Metrics) PaymentRecorded(amountPaid, finalCost float64) {
	if m == nil {
		return
	}
	kind := PaymentExact
	switch {
	case amountPaid > finalCost:
		kind = PaymentOverpaid
		m.overpaymentCredit.Add(amountPaid - finalCost)
	case amountPaid < finalCost:
		kind = PaymentUnderpaid
	}
	m.paymentsRecorded.WithLabelValues(kind).Inc()
}

// SetRooms records the current number of rooms
func (m *Metrics) SetRooms(n int) {
	if m == nil {
		return
	}
	m.rooms.Set(float64(n))
}

// SnapshotSaveFailed counts a rolled back mutation
func (m *Metrics) SnapshotSaveFailed() {
	if m == nil {
		return
	}
	m.snapshotFailures.Inc()
}

// BackupFinished counts a backup attempt
func (m *Metrics) BackupFinished(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.backups.WithLabelValues(result).Inc()
}

// ObserveRequest records one handled HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
