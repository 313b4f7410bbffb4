package service

import (
	"strings"
	"time"

	"github.com/egzit/egzit/internal/constants"
	"github.com/egzit/egzit/internal/models"
)

// allowedMoveTransitions is the lifecycle graph. completed and
// cancelled are terminal; everything absent here is rejected.
var allowedMoveTransitions = map[string]map[string]bool{
	constants.MoveStatusPending: {
		constants.MoveStatusApproved:  true,
		constants.MoveStatusCancelled: true,
	},
	constants.MoveStatusApproved: {
		constants.MoveStatusScheduled: true,
		constants.MoveStatusCancelled: true,
	},
	constants.MoveStatusScheduled: {
		constants.MoveStatusInProgress: true,
		constants.MoveStatusCancelled:  true,
	},
	constants.MoveStatusInProgress: {
		constants.MoveStatusCompleted: true,
	},
}

// NormalizeMoveStatus lowercases a status and folds the legacy
// "planning" alias onto pending. The alias is accepted on input only
// and never written back.
func NormalizeMoveStatus(status string) string {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if normalized == constants.MoveStatusAliasPlanning {
		return constants.MoveStatusPending
	}
	return normalized
}

// CanTransitionMove reports whether the lifecycle graph permits
// current -> target.
func CanTransitionMove(current, target string) bool {
	nexts, ok := allowedMoveTransitions[NormalizeMoveStatus(current)]
	if !ok {
		return false
	}
	return nexts[NormalizeMoveStatus(target)]
}

// IsTerminalMoveStatus reports whether no further transition exists.
func IsTerminalMoveStatus(status string) bool {
	_, ok := allowedMoveTransitions[NormalizeMoveStatus(status)]
	return !ok
}

// Progress bounds for the in-transit interpolation window.
const (
	progressScheduled  = 25
	progressTransitCap = 90
)

// MoveProgress derives the 0-100 progress value shown by the tracking
// surfaces. It is recomputed on every read, never persisted.
// pending/approved/cancelled map to 0, scheduled to 25, completed to
// 100; in_progress interpolates between 25 and 90 by elapsed time
// against the estimated duration, capped so the bar never implies a
// completion that has not been confirmed.
func MoveProgress(move *models.Move, now time.Time) int {
	if move == nil {
		return 0
	}
	switch NormalizeMoveStatus(move.Status) {
	case constants.MoveStatusScheduled:
		return progressScheduled
	case constants.MoveStatusCompleted:
		return 100
	case constants.MoveStatusInProgress:
		return transitProgress(move, now)
	default:
		return 0
	}
}

func transitProgress(move *models.Move, now time.Time) int {
	if move.ActualStartTime == nil || move.EstimatedDuration == nil || *move.EstimatedDuration <= 0 {
		return progressScheduled
	}
	elapsed := now.Sub(*move.ActualStartTime).Seconds()
	if elapsed <= 0 {
		return progressScheduled
	}
	ratio := elapsed / float64(*move.EstimatedDuration)
	progress := progressScheduled + int(ratio*float64(progressTransitCap-progressScheduled))
	if progress > progressTransitCap {
		return progressTransitCap
	}
	if progress < progressScheduled {
		return progressScheduled
	}
	return progress
}

// MoveETA derives the estimated arrival time. A persisted value from
// scheduling wins; during transit the ETA is recomputed from the
// actual start; otherwise there is no answer yet and nil is returned.
func MoveETA(move *models.Move) *time.Time {
	if move == nil {
		return nil
	}
	if move.EstimatedArrivalTime != nil {
		return move.EstimatedArrivalTime
	}
	if NormalizeMoveStatus(move.Status) != constants.MoveStatusInProgress {
		return nil
	}
	if move.ActualStartTime == nil || move.EstimatedDuration == nil {
		return nil
	}
	eta := move.ActualStartTime.Add(time.Duration(*move.EstimatedDuration) * time.Second)
	return &eta
}
