package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menumate_page_fetch_total",
			Help: "Menu page fetches by hall and result.",
		},
		[]string{"hall", "result"},
	)

	menuParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menumate_menu_parse_failures_total",
			Help: "Menu pages that could not be parsed, by hall.",
		},
		[]string{"hall"},
	)

	acquisitionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "menumate_acquisition_duration_seconds",
			Help:    "Time spent acquiring a date's menus, by source.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
)
