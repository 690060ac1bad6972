package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса.
// Все методы безопасно вызывать на nil-получателе: метрики просто не пишутся.
type Metrics struct {
	serviceName string

	// HTTP
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Database
	dbQueryDuration     *prometheus.HistogramVec
	dbQueryErrorsTotal  *prometheus.CounterVec
	dbOpenConnections   *prometheus.GaugeVec
	dbInUseConnections  *prometheus.GaugeVec
	dbIdleConnections   *prometheus.GaugeVec
	dbWaitCount         *prometheus.GaugeVec
	dbWaitDurationTotal *prometheus.GaugeVec

	// Бизнес-метрики
	bookingsCreatedTotal   *prometheus.CounterVec
	bookingConflictsTotal  *prometheus.CounterVec
	webhookEventsTotal     *prometheus.CounterVec
	payoutsReleasedTotal   *prometheus.CounterVec
	platformFeeMinorTotal  *prometheus.CounterVec
	mentorPayoutMinorTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном реестре (используется в тестах)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		dbQueryErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		dbOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		dbWaitDurationTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total",
			Help: "Total time blocked waiting for a new connection",
		}, []string{"service"}),

		bookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service"}),
		bookingConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Booking attempts rejected because of an overlapping booking",
		}, []string{"service"}),
		webhookEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Payment provider webhook events by processing result",
		}, []string{"service", "result"}),
		payoutsReleasedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payouts_released_total",
			Help: "Total number of mentor payouts released to available balance",
		}, []string{"service"}),
		platformFeeMinorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "platform_fee_minor_units_total",
			Help: "Platform commission collected, in minor currency units",
		}, []string{"service"}),
		mentorPayoutMinorTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mentor_payout_minor_units_total",
			Help: "Mentor payouts credited to pending balance, in minor currency units",
		}, []string{"service"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.dbQueryErrorsTotal.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbInUseConnections.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbIdleConnections.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
	m.dbWaitDurationTotal.WithLabelValues(m.serviceName).Set(stats.WaitDuration.Seconds())
}

// IncBookingCreated новое бронирование
func (m *Metrics) IncBookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreatedTotal.WithLabelValues(m.serviceName).Inc()
}

// IncBookingConflict отказ в бронировании из-за пересечения
func (m *Metrics) IncBookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflictsTotal.WithLabelValues(m.serviceName).Inc()
}

// IncWebhookEvent обработанное событие платежного провайдера
func (m *Metrics) IncWebhookEvent(result string) {
	if m == nil {
		return
	}
	m.webhookEventsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// ObserveSettlement учитывает комиссию и выплату по проведенному платежу
func (m *Metrics) ObserveSettlement(platformFeeMinor, mentorPayoutMinor int64) {
	if m == nil {
		return
	}
	m.platformFeeMinorTotal.WithLabelValues(m.serviceName).Add(float64(platformFeeMinor))
	m.mentorPayoutMinorTotal.WithLabelValues(m.serviceName).Add(float64(mentorPayoutMinor))
}

// IncPayoutReleased выплата ментору разблокирована
func (m *Metrics) IncPayoutReleased() {
	if m == nil {
		return
	}
	m.payoutsReleasedTotal.WithLabelValues(m.serviceName).Inc()
}
