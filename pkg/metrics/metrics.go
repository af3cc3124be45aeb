package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках в use case передается nil.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge
	DBQueryDuration   *prometheus.HistogramVec
	DBErrorsTotal     *prometheus.CounterVec

	BookingRequestsTotal  *prometheus.CounterVec
	BookingDecisionsTotal *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
	NotificationQueueSize prometheus.Gauge
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном регистраторе
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}),
		DBInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}),
		DBIdle: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		DBErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Total number of failed database operations",
			ConstLabels: labels,
		}, []string{"operation"}),

		BookingRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Booking submissions by result",
			ConstLabels: labels,
		}, []string{"result"}),
		BookingDecisionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_decisions_total",
			Help:        "Pending request decisions by outcome",
			ConstLabels: labels,
		}, []string{"decision", "result"}),
		NotificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "admin_notifications_total",
			Help:        "Admin notifications by result",
			ConstLabels: labels,
		}, []string{"result"}),
		NotificationQueueSize: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "admin_notification_queue_size",
			Help:        "Undelivered admin notifications waiting in the retry queue",
			ConstLabels: labels,
		}),
	}
}

// ObserveBookingRequest учитывает попытку создать заявку (result: accepted, invalid, not_found, conflict, unavailable)
func (m *Metrics) ObserveBookingRequest(result string) {
	if m == nil {
		return
	}
	m.BookingRequestsTotal.WithLabelValues(result).Inc()
}

// ObserveDecision учитывает решение по заявке (decision: confirmed, rejected, expired)
func (m *Metrics) ObserveDecision(decision, result string) {
	if m == nil {
		return
	}
	m.BookingDecisionsTotal.WithLabelValues(decision, result).Inc()
}

// ObserveNotification учитывает отправку уведомления администратору (result: sent, queued, failed, requeued, dropped)
func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// SetNotificationQueueSize фиксирует длину очереди повторной отправки
func (m *Metrics) SetNotificationQueueSize(n int64) {
	if m == nil {
		return
	}
	m.NotificationQueueSize.Set(float64(n))
}
