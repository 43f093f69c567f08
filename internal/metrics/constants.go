package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameRewardsGranted    = "rewards_granted_total"
	MetricNameRewardsRejected   = "rewards_rejected_total"
	MetricNameXPGranted         = "xp_granted_total"
	MetricNameGoldGranted       = "gold_granted_total"
	MetricNameLevelUps          = "level_ups_total"
	MetricNameRolloverPenalties = "rollover_penalties_total"
	MetricNameMonstersDefeated  = "monsters_defeated_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextRewardsGranted    = "Total number of reward grants applied"
	HelpTextRewardsRejected   = "Total number of reward grants rejected"
	HelpTextXPGranted         = "Total XP granted, by action type"
	HelpTextGoldGranted       = "Total gold granted, by action type"
	HelpTextLevelUps          = "Total number of level-up transitions"
	HelpTextRolloverPenalties = "Total number of rollover miss penalties applied"
	HelpTextMonstersDefeated  = "Total number of monsters defeated"
)

// Metric Label Names
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelActionType = "action_type"
	LabelReason     = "reason"
	LabelKind       = "kind"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
