package queue

import (
	"encoding/json"

	"github.com/egzit/egzit/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskQuoteExpire quote expiry task
	TaskQuoteExpire = constants.TaskQuoteExpire
	// TaskMovePerformance completed-move performance record task
	TaskMovePerformance = constants.TaskMovePerformance
)

// QuoteExpirePayload quote expiry task payload
type QuoteExpirePayload struct {
	QuoteID uint `json:"quote_id"`
}

// MovePerformancePayload performance record task payload
type MovePerformancePayload struct {
	MoveID uint `json:"move_id"`
}

// NewQuoteExpireTask creates a quote expiry task
func NewQuoteExpireTask(payload QuoteExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuoteExpire, body), nil
}

// NewMovePerformanceTask creates a performance record task
func NewMovePerformanceTask(payload MovePerformancePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMovePerformance, body), nil
}
