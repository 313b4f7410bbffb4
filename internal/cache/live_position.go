package cache

import (
	"context"
	"fmt"
	"time"
)

// LivePosition latest reported crew position for an in-progress move
type LivePosition struct {
	MoveID     uint    `json:"move_id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	ReportedAt int64   `json:"reported_at"`
}

func livePositionKey(moveID uint) string {
	return fmt.Sprintf("tracking:position:%d", moveID)
}

// SetLivePosition stores the latest crew position with a TTL so stale
// pings age out on their own.
func SetLivePosition(ctx context.Context, pos *LivePosition, ttl time.Duration) error {
	if pos == nil || pos.MoveID == 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return SetJSON(ctx, livePositionKey(pos.MoveID), pos, ttl)
}

// GetLivePosition reads the latest crew position, hit=false when the
// cache is cold or the last ping expired.
func GetLivePosition(ctx context.Context, moveID uint) (*LivePosition, bool, error) {
	if moveID == 0 {
		return nil, false, nil
	}
	var pos LivePosition
	hit, err := GetJSON(ctx, livePositionKey(moveID), &pos)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &pos, true, nil
}

// DelLivePosition removes the cached crew position
func DelLivePosition(ctx context.Context, moveID uint) error {
	if moveID == 0 {
		return nil
	}
	return Del(ctx, livePositionKey(moveID))
}
