package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	RewardsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsGranted,
			Help: HelpTextRewardsGranted,
		},
		[]string{LabelActionType},
	)

	RewardsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRewardsRejected,
			Help: HelpTextRewardsRejected,
		},
		[]string{LabelReason},
	)

	XPGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPGranted,
			Help: HelpTextXPGranted,
		},
		[]string{LabelActionType},
	)

	GoldGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGoldGranted,
			Help: HelpTextGoldGranted,
		},
		[]string{LabelActionType},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	RolloverPenalties = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRolloverPenalties,
			Help: HelpTextRolloverPenalties,
		},
		[]string{LabelKind},
	)

	MonstersDefeated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMonstersDefeated,
			Help: HelpTextMonstersDefeated,
		},
	)
)
