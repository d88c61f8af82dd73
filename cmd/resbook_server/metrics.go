//nolint:gochecknoglobals
package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	timelineUpdatesMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resbook",
		Name:      "timeline_updates",
		Help:      "The total number of timeline batches applied",
	}, []string{"resource"})

	switchesMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resbook",
		Name:      "switches",
		Help:      "The total number of live resource switches",
	}, []string{"resource"})

	conflictsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resbook",
		Name:      "conflicts",
		Help:      "The total number of rejected booking requests",
	}, []string{"reason"})
)
