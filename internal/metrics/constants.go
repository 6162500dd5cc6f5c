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

// Business metric names
const (
	MetricNamePlayersRegistered = "players_registered_total"
	MetricNameBattlesResolved   = "battles_resolved_total"
	MetricNameItemsBought       = "items_bought_total"
	MetricNamePurchasesRejected = "purchases_rejected_total"
	MetricNameMoneyEarned       = "money_earned_total"
	MetricNameMoneySpent        = "money_spent_total"
	MetricNameStoreErrors       = "store_errors_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

const (
	HelpTextPlayersRegistered = "Total number of newly registered players"
	HelpTextBattlesResolved   = "Total number of resolved battles"
	HelpTextItemsBought       = "Total number of items bought"
	HelpTextPurchasesRejected = "Total number of purchases rejected for insufficient funds"
	HelpTextMoneyEarned       = "Total coins credited to players"
	HelpTextMoneySpent        = "Total coins debited from players"
	HelpTextStoreErrors       = "Total number of failed store operations"
)

// ============================================================================
// Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelBoss      = "boss"
	LabelResult    = "result"
	LabelItem      = "item"
	LabelSource    = "source"
	LabelOperation = "operation"
)

// Sources for money metrics
const (
	SourceBattle  = "battle"
	SourceWork    = "work"
	SourceShop    = "shop"
	SourceLedger  = "ledger"
	SourcePenalty = "penalty"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
