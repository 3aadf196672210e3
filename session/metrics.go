package session

import "github.com/prometheus/client_golang/prometheus"

type ClockManagerMetrics struct {
	totalClients   prometheus.Counter
	currentClients prometheus.Gauge
	dragSamples    *prometheus.CounterVec
	setTimes       prometheus.Counter
	meridiemFlips  prometheus.Counter
}

func (m *ClockManager) registerClockManagerMetrics() {
	m.metrics.totalClients = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clock_manager_clients_total",
			Help: "Total number of clients the clock manager has handled",
		},
	)

	m.metrics.currentClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clock_manager_clients_current",
			Help: "Current number of connected clock clients",
		},
	)

	m.metrics.dragSamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clock_manager_drag_samples_total",
			Help: "Pointer samples received, by hand and drag phase",
		},
		[]string{"hand", "phase"},
	)

	m.metrics.setTimes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clock_manager_set_time_total",
			Help: "Total number of set_time requests applied",
		},
	)

	m.metrics.meridiemFlips = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clock_manager_meridiem_flips_total",
			Help: "Hour drags that crossed 12 and changed AM/PM",
		},
	)

	m.registry.MustRegister(m.metrics.totalClients, m.metrics.currentClients, m.metrics.dragSamples, m.metrics.setTimes, m.metrics.meridiemFlips)
}
