package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterUsersRegistered    prometheus.Counter
	CounterLoginsRejected     prometheus.Counter
	CounterWorkoutsCreated    prometheus.Counter
	CounterExercisesCreated   prometheus.Counter
	CounterBodyMetrics        prometheus.Counter
	CounterExports            prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("athletrack", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("athletrack", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "route", "status"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			Name:      "request_duration_seconds",
			Help:      "Total duration of requests in seconds",
		},
		[]string{"route"},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counter("handle_request_panic", "The total number of serve request panics"),
		CounterUsersRegistered:    counter("users_registered", "The total number of registered users"),
		CounterLoginsRejected:     counter("logins_rejected", "The total number of failed or rate limited logins"),
		CounterWorkoutsCreated:    counter("workouts_created", "The total number of created workouts"),
		CounterExercisesCreated:   counter("exercises_created", "The total number of created private exercises"),
		CounterBodyMetrics:        counter("body_metrics", "The total number of appended body metrics"),
		CounterExports:            counter("exports", "The total number of data exports"),
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}
