package services

import "github.com/prometheus/client_golang/prometheus"

var achievementsAwarded = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "achievements_awarded_total",
		Help: "Total number of goal-completion achievements awarded",
	},
)

// InitMetrics registers service-level metrics. Call this from main.go
func InitMetrics() {
	prometheus.MustRegister(achievementsAwarded)
}
