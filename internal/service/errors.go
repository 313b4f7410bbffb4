package service

import "errors"

// Shared sentinel errors surfaced by services and mapped to HTTP
// responses in the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrUserExists         = errors.New("email is already registered")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrCaptchaRequired    = errors.New("captcha is required")
	ErrCaptchaInvalid     = errors.New("captcha verification failed")
)

// Move lifecycle errors
var (
	ErrMoveNotFound        = errors.New("move not found")
	ErrMoveInvalidInput    = errors.New("invalid move request")
	ErrMoveCreateFailed    = errors.New("failed to create move")
	ErrMoveFetchFailed     = errors.New("failed to fetch move")
	ErrMoveUpdateFailed    = errors.New("failed to update move")
	ErrMoveStatusInvalid   = errors.New("transition not allowed from current status")
	ErrMoveQuoteRequired   = errors.New("move has no quote")
	ErrMoveScheduleInput   = errors.New("schedule requires a time of day and a mover")
	ErrMoveVersionConflict = errors.New("move was modified concurrently, reload and retry")
)

// Quote errors
var (
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrQuoteExpired      = errors.New("quote is no longer valid, request a new one")
	ErrQuoteInvalidInput = errors.New("quote components must be non-negative")
	ErrQuoteCreateFailed = errors.New("failed to create quote")
)

// Mover errors
var (
	ErrMoverNotFound     = errors.New("mover not found")
	ErrMoverInactive     = errors.New("mover is not active")
	ErrMoverInvalidInput = errors.New("invalid mover data")
)

// Tracking errors
var (
	ErrTrackingPositionInvalid = errors.New("invalid GPS coordinates")
	ErrTrackingNotInTransit    = errors.New("move is not in transit")
)
