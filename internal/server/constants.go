package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgAuthDisabled     = "API key not configured, game API is open"
	LogMsgFailedAuthAlert  = "Repeated failed authentication attempts"
	LogMsgHighRateAlert    = "Blocking high request rate"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff            = "nosniff"
	HeaderValueDeny               = "DENY"
	HeaderValueReferrerNoReferrer = "no-referrer"
	RedactedValue                 = "[REDACTED]"
)

// Rate and size limits
const (
	maxRequestBytes      = 1 << 16
	rateWindow           = 5 * time.Minute
	maxRequestsPerWindow = 1000
	failedAuthAlertAt    = 5
	readHeaderTimeout    = 5 * time.Second
	maxRequestIDLength   = 64
)

// APIPrefix is where the game API is mounted
const APIPrefix = "/api/v1"

// PublicPaths bypass authentication
var PublicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
