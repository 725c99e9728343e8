package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Game metric names
const (
	MetricNameFishingAttempts   = "fishing_attempts_total"
	MetricNameFishCaught        = "fish_caught_total"
	MetricNameGachaDraws        = "gacha_draws_total"
	MetricNameTechUnlocks       = "technology_unlocks_total"
	MetricNameAchievements      = "achievements_completed_total"
	MetricNameLevelUps          = "level_ups_total"
	MetricNameGoldSpent         = "gold_spent_total"
	MetricNameGoldEarned        = "gold_earned_total"
	MetricNameMarketSales       = "market_sales_total"
	MetricNameRegistrations     = "users_registered_total"
	MetricNameSignIns           = "sign_ins_total"
	MetricNameWagers            = "wagers_total"
	MetricNameJobRuns           = "job_runs_total"
	MetricNameJobDuration       = "job_duration_seconds"
	MetricNameAutoFishAttempted = "auto_fishing_attempts_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextEventsPublished      = "Total number of events published"

	HelpTextFishingAttempts   = "Eligible fishing attempts by outcome"
	HelpTextFishCaught        = "Fish caught by rarity"
	HelpTextGachaDraws        = "Gacha items granted by rarity"
	HelpTextTechUnlocks       = "Technology unlocks by key and path"
	HelpTextAchievements      = "Achievements completed by key"
	HelpTextLevelUps          = "Level-up events"
	HelpTextGoldSpent         = "Gold removed from the economy by source"
	HelpTextGoldEarned        = "Gold created by source"
	HelpTextMarketSales       = "Market listings bought by item type"
	HelpTextRegistrations     = "New users by platform"
	HelpTextSignIns           = "Daily sign-ins"
	HelpTextWagers            = "Wipe bomb wagers by result"
	HelpTextJobRuns           = "Scheduled job runs by job and result"
	HelpTextJobDuration       = "Scheduled job duration in seconds"
	HelpTextAutoFishAttempted = "Auto-fishing attempts by result"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelResult   = "result"
	LabelRarity   = "rarity"
	LabelKey      = "key"
	LabelUnlock   = "unlock_path"
	LabelSource   = "source"
	LabelJob      = "job"
	LabelPlatform = "platform"
)

const (
	ResultSuccess = "success"
	ResultMiss    = "miss"
	ResultError   = "error"
	ResultSkipped = "skipped"
	ResultWin     = "win"
	ResultLoss    = "loss"

	SourceFishing  = "fishing"
	SourceGacha    = "gacha"
	SourceSignIn   = "sign_in"
	SourceLevelUp  = "level_up"
	SourceWager    = "wager"
	SourceFishSale = "fish_sale"

	PathAuto   = "auto"
	PathManual = "manual"

	// PathUnmatched labels requests no route matched
	PathUnmatched = "unmatched"
)

// HTTPLatencyBuckets defines histogram buckets for HTTP request latency
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}

// JobLatencyBuckets covers sweeps that can run for tens of seconds
var JobLatencyBuckets = []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60}

const (
	LogMsgUnexpectedPayload = "Unexpected event payload"
	LogMsgMetricsRecorded   = "Event metrics recorded"
)
