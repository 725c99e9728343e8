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

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	FishingAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameFishingAttempts, Help: HelpTextFishingAttempts},
		[]string{LabelResult},
	)

	FishCaught = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameFishCaught, Help: HelpTextFishCaught},
		[]string{LabelRarity},
	)

	GachaDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameGachaDraws, Help: HelpTextGachaDraws},
		[]string{LabelRarity},
	)

	TechUnlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameTechUnlocks, Help: HelpTextTechUnlocks},
		[]string{LabelKey, LabelUnlock},
	)

	AchievementsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameAchievements, Help: HelpTextAchievements},
		[]string{LabelKey},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{Name: MetricNameLevelUps, Help: HelpTextLevelUps},
	)

	GoldSpent = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameGoldSpent, Help: HelpTextGoldSpent},
		[]string{LabelSource},
	)

	GoldEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameGoldEarned, Help: HelpTextGoldEarned},
		[]string{LabelSource},
	)

	MarketSales = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameMarketSales, Help: HelpTextMarketSales},
		[]string{LabelType},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameRegistrations, Help: HelpTextRegistrations},
		[]string{LabelPlatform},
	)

	SignIns = promauto.NewCounter(
		prometheus.CounterOpts{Name: MetricNameSignIns, Help: HelpTextSignIns},
	)

	Wagers = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameWagers, Help: HelpTextWagers},
		[]string{LabelResult},
	)
)

// Job Metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameJobRuns, Help: HelpTextJobRuns},
		[]string{LabelJob, LabelResult},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{Name: MetricNameJobDuration, Help: HelpTextJobDuration, Buckets: JobLatencyBuckets},
		[]string{LabelJob},
	)

	AutoFishAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{Name: MetricNameAutoFishAttempted, Help: HelpTextAutoFishAttempted},
		[]string{LabelResult},
	)
)
