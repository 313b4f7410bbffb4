package service

import (
	"testing"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"
)

func TestCanTransitionMove(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.MoveStatusPending, constants.MoveStatusApproved, true},
		{constants.MoveStatusPending, constants.MoveStatusCancelled, true},
		{constants.MoveStatusPending, constants.MoveStatusScheduled, false},
		{constants.MoveStatusPending, constants.MoveStatusCompleted, false},
		{constants.MoveStatusApproved, constants.MoveStatusScheduled, true},
		{constants.MoveStatusApproved, constants.MoveStatusCancelled, true},
		{constants.MoveStatusApproved, constants.MoveStatusInProgress, false},
		{constants.MoveStatusScheduled, constants.MoveStatusInProgress, true},
		{constants.MoveStatusScheduled, constants.MoveStatusCancelled, true},
		{constants.MoveStatusScheduled, constants.MoveStatusCompleted, false},
		{constants.MoveStatusInProgress, constants.MoveStatusCompleted, true},
		{constants.MoveStatusInProgress, constants.MoveStatusCancelled, false},
		{constants.MoveStatusCompleted, constants.MoveStatusCancelled, false},
		{constants.MoveStatusCompleted, constants.MoveStatusInProgress, false},
		{constants.MoveStatusCancelled, constants.MoveStatusPending, false},
		{"unknown", constants.MoveStatusApproved, false},
	}
	for _, c := range cases {
		if got := CanTransitionMove(c.from, c.to); got != c.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", c.from, c.to, c.allowed, got)
		}
	}
}

func TestNormalizeMoveStatusPlanningAlias(t *testing.T) {
	if got := NormalizeMoveStatus("planning"); got != constants.MoveStatusPending {
		t.Fatalf("expected planning to normalize to pending, got: %s", got)
	}
	if got := NormalizeMoveStatus("  Planning "); got != constants.MoveStatusPending {
		t.Fatalf("expected mixed-case planning to normalize to pending, got: %s", got)
	}
	if got := NormalizeMoveStatus("IN_PROGRESS"); got != constants.MoveStatusInProgress {
		t.Fatalf("expected lowercase in_progress, got: %s", got)
	}
	if !CanTransitionMove("planning", constants.MoveStatusApproved) {
		t.Fatalf("expected planning alias to transition like pending")
	}
}

func TestIsTerminalMoveStatus(t *testing.T) {
	if IsTerminalMoveStatus(constants.MoveStatusPending) {
		t.Fatalf("pending should not be terminal")
	}
	if !IsTerminalMoveStatus(constants.MoveStatusCompleted) {
		t.Fatalf("completed should be terminal")
	}
	if !IsTerminalMoveStatus(constants.MoveStatusCancelled) {
		t.Fatalf("cancelled should be terminal")
	}
}

func TestMoveProgressByStatus(t *testing.T) {
	now := time.Now()
	cases := []struct {
		status   string
		expected int
	}{
		{constants.MoveStatusPending, 0},
		{constants.MoveStatusApproved, 0},
		{constants.MoveStatusCancelled, 0},
		{constants.MoveStatusScheduled, 25},
		{constants.MoveStatusCompleted, 100},
	}
	for _, c := range cases {
		move := &models.Move{Status: c.status}
		if got := MoveProgress(move, now); got != c.expected {
			t.Fatalf("status %s: expected progress %d, got %d", c.status, c.expected, got)
		}
	}
}

func TestMoveProgressInTransit(t *testing.T) {
	now := time.Now()
	duration := int64(3600)

	// Halfway through the estimate: 25 + 0.5*65 = 57.
	start := now.Add(-30 * time.Minute)
	move := &models.Move{
		Status:            constants.MoveStatusInProgress,
		ActualStartTime:   &start,
		EstimatedDuration: &duration,
	}
	if got := MoveProgress(move, now); got != 57 {
		t.Fatalf("expected halfway progress 57, got %d", got)
	}

	// Long past the estimate the bar caps at 90.
	lateStart := now.Add(-10 * time.Hour)
	move.ActualStartTime = &lateStart
	if got := MoveProgress(move, now); got != 90 {
		t.Fatalf("expected capped progress 90, got %d", got)
	}

	// Missing estimate falls back to the scheduled floor.
	move.ActualStartTime = &start
	move.EstimatedDuration = nil
	if got := MoveProgress(move, now); got != 25 {
		t.Fatalf("expected floor progress 25 without estimate, got %d", got)
	}

	// A start stamped in the future also stays on the floor.
	futureStart := now.Add(5 * time.Minute)
	move.ActualStartTime = &futureStart
	move.EstimatedDuration = &duration
	if got := MoveProgress(move, now); got != 25 {
		t.Fatalf("expected floor progress 25 before start, got %d", got)
	}
}

func TestMoveETA(t *testing.T) {
	if got := MoveETA(nil); got != nil {
		t.Fatalf("expected nil ETA for nil move")
	}

	persisted := time.Now().Add(2 * time.Hour)
	move := &models.Move{
		Status:               constants.MoveStatusScheduled,
		EstimatedArrivalTime: &persisted,
	}
	if got := MoveETA(move); got == nil || !got.Equal(persisted) {
		t.Fatalf("expected persisted arrival to win, got: %v", got)
	}

	// In transit without a persisted arrival: start + estimate.
	start := time.Now().Add(-20 * time.Minute)
	duration := int64(3600)
	move = &models.Move{
		Status:            constants.MoveStatusInProgress,
		ActualStartTime:   &start,
		EstimatedDuration: &duration,
	}
	expected := start.Add(time.Hour)
	if got := MoveETA(move); got == nil || !got.Equal(expected) {
		t.Fatalf("expected derived ETA %v, got: %v", expected, got)
	}

	// Pending moves have no answer yet.
	move = &models.Move{Status: constants.MoveStatusPending}
	if got := MoveETA(move); got != nil {
		t.Fatalf("expected nil ETA for pending move, got: %v", got)
	}
}
