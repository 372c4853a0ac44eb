package service

import (
	"github.com/mergington-high/activities-api/pkg/telemetry"
)

// serviceMetrics holds the enrollment instruments. Creation failures leave
// nil instruments, which the telemetry wrappers treat as no-ops.
type serviceMetrics struct {
	signups     *telemetry.Counter
	unregisters *telemetry.Counter
	rosterSize  *telemetry.Gauge
}

func newServiceMetrics() *serviceMetrics {
	m := &serviceMetrics{}

	m.signups, _ = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "activities.signups.total",
		Description: "Signup attempts by result",
		Unit:        "{attempt}",
	})
	m.unregisters, _ = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "activities.unregisters.total",
		Description: "Unregister attempts by result",
		Unit:        "{attempt}",
	})
	m.rosterSize, _ = telemetry.NewGauge(telemetry.MetricOpts{
		Name:        "activities.roster.size",
		Description: "Current roster size per activity",
		Unit:        "{student}",
	})

	return m
}
