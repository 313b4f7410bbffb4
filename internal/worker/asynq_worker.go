package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/provider"
	"github.com/egzit/egzit/internal/queue"
	"github.com/egzit/egzit/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskQuoteExpire, c.handleQuoteExpire)
	mux.HandleFunc(queue.TaskMovePerformance, c.handleMovePerformance)
}

func (c *Consumer) handleQuoteExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_quote_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.QuoteExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_quote_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.QuoteID == 0 {
		logger.Debugw("worker_quote_expire_skip_invalid_payload", "quote_id", payload.QuoteID)
		return nil
	}
	if c.QuoteService == nil {
		logger.Warnw("worker_quote_expire_skip_quote_service_nil", "quote_id", payload.QuoteID)
		return nil
	}
	if err := c.QuoteService.Expire(payload.QuoteID); err != nil {
		logger.Warnw("worker_quote_expire_failed", "quote_id", payload.QuoteID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleMovePerformance(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_move_performance_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MovePerformancePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_move_performance_unmarshal_failed", "error", err)
		return err
	}
	if payload.MoveID == 0 {
		logger.Debugw("worker_move_performance_skip_invalid_payload", "move_id", payload.MoveID)
		return nil
	}
	if c.MoveService == nil {
		logger.Warnw("worker_move_performance_skip_move_service_nil", "move_id", payload.MoveID)
		return nil
	}
	err := c.MoveService.RecordPerformance(payload.MoveID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMoveNotFound):
			logger.Debugw("worker_move_performance_skip_move_not_found", "move_id", payload.MoveID)
			return nil
		case errors.Is(err, service.ErrMoveStatusInvalid):
			// the move was reopened or never finished; nothing to record
			logger.Debugw("worker_move_performance_skip_invalid_status", "move_id", payload.MoveID)
			return nil
		default:
			logger.Warnw("worker_move_performance_failed", "move_id", payload.MoveID, "error", err)
			return err
		}
	}
	return nil
}
