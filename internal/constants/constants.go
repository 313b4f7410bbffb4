package constants

// Move status constants. "planning" is accepted on input as a legacy
// alias for pending and is never persisted.
const (
	MoveStatusPending    = "pending"
	MoveStatusApproved   = "approved"
	MoveStatusScheduled  = "scheduled"
	MoveStatusInProgress = "in_progress"
	MoveStatusCompleted  = "completed"
	MoveStatusCancelled  = "cancelled"

	MoveStatusAliasPlanning = "planning"
)

// Tracking event type constants
const (
	EventCreated         = "created"
	EventQuoteSent       = "quote_sent"
	EventApproved        = "approved"
	EventScheduled       = "scheduled"
	EventPaymentReceived = "payment_received"
	EventStarted         = "started"
	EventLocationPing    = "location_ping"
	EventCompleted       = "completed"
	EventCancelled       = "cancelled"
)

// Quote status constants
const (
	QuoteStatusPending    = "pending"
	QuoteStatusAccepted   = "accepted"
	QuoteStatusExpired    = "expired"
	QuoteStatusSuperseded = "superseded"
)

// Booking status constants
const (
	BookingStatusConfirmed = "confirmed"
	BookingPaymentPaid     = "paid"
)

// Vehicle class constants
const (
	VehicleClassCar   = "car"
	VehicleClassTruck = "truck"
)

// User status constants
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Login log constants
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonBadCredentials = "bad_credentials"
	LoginLogFailReasonDisabled       = "account_disabled"
	LoginLogFailReasonCaptcha        = "captcha_failed"
	LoginLogFailReasonRateLimited    = "rate_limited"
	LoginLogFailReasonInternalError  = "internal_error"
)

// Captcha provider constants
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// Captcha scene constants
const (
	CaptchaSceneLogin      = "login"
	CaptchaSceneAdminLogin = "admin_login"
)

// Queue and task name constants
const (
	QueueDefault        = "default"
	TaskQuoteExpire     = "quote:expire"
	TaskMovePerformance = "move:performance_record"
)

// DefaultRouteDurationSeconds is the travel-time estimate used when the
// route service is unavailable during scheduling.
const DefaultRouteDurationSeconds = 3600
