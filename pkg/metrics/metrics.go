// Package metrics содержит Prometheus метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Метки исходов расчета доступности
const (
	AvailabilityOutcomeSlots         = "slots"
	AvailabilityOutcomeAbsence       = "absence"
	AvailabilityOutcomeNonWorkingDay = "non_working_day"
)

// Стадии, на которых обнаружен конфликт бронирования
const (
	ConflictStagePrecheck   = "precheck"
	ConflictStageConstraint = "constraint"
	ConflictStageLock       = "lock"
)

// Metrics набор метрик сервиса.
// Все методы Record* безопасны для nil-получателя (метрики выключены).
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	AvailabilityResults *prometheus.CounterVec
	ScheduleReplaced    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в reg
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"service", "method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "path"},
		),

		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Database query duration in seconds",
				Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"service", "operation"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_query_errors_total",
				Help: "Total number of failed database operations",
			},
			[]string{"service", "operation"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_open_connections",
				Help: "Number of established connections both in use and idle",
			},
			[]string{"service"},
		),
		DBInUseConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_in_use_connections",
				Help: "Number of connections currently in use",
			},
			[]string{"service"},
		),
		DBIdleConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_idle_connections",
				Help: "Number of idle connections",
			},
			[]string{"service"},
		),
		DBWaitCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_count",
				Help: "Total number of connections waited for",
			},
			[]string{"service"},
		),
		DBWaitDurationTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "db_wait_duration_seconds_total",
				Help: "Total time blocked waiting for a new connection",
			},
			[]string{"service"},
		),

		AppointmentsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointments_created_total",
				Help: "Total number of created appointments",
			},
			[]string{"service"},
		),
		BookingConflicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appointment_booking_conflicts_total",
				Help: "Total number of rejected double bookings",
			},
			[]string{"service", "stage"},
		),
		AvailabilityResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "availability_results_total",
				Help: "Availability calculations by outcome",
			},
			[]string{"service", "outcome"},
		),
		ScheduleReplaced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doctor_schedule_replaced_total",
				Help: "Total number of weekly schedule replacements",
			},
			[]string{"service"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationTotal,
		m.AppointmentsCreated,
		m.BookingConflicts,
		m.AvailabilityResults,
		m.ScheduleReplaced,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в метке service
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// RecordHTTPRequest записывает HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// RecordDBOperation записывает длительность операции с БД и ошибку (если была)
func (m *Metrics) RecordDBOperation(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// RecordAppointmentCreated увеличивает счетчик созданных записей
func (m *Metrics) RecordAppointmentCreated() {
	if m == nil {
		return
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName).Inc()
}

// RecordBookingConflict увеличивает счетчик отклоненных двойных бронирований
func (m *Metrics) RecordBookingConflict(stage string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, stage).Inc()
}

// RecordAvailability записывает исход расчета доступности
func (m *Metrics) RecordAvailability(outcome string) {
	if m == nil {
		return
	}
	m.AvailabilityResults.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordScheduleReplaced увеличивает счетчик замен расписания
func (m *Metrics) RecordScheduleReplaced() {
	if m == nil {
		return
	}
	m.ScheduleReplaced.WithLabelValues(m.serviceName).Inc()
}
