package seo

import (
	"math"

	"github.com/iconidentify/vidseo/internal/domain"
)

// TimestampCount returns how many chapter markers to request for a video:
// one per two minutes, clamped to [5, 15]. Unknown duration yields 5.
func TimestampCount(durationSeconds int) int {
	if durationSeconds <= 0 {
		return domain.MinTimestamps
	}
	n := int(math.Round(float64(durationSeconds) / 60 / 2))
	if n < domain.MinTimestamps {
		return domain.MinTimestamps
	}
	if n > domain.MaxTimestamps {
		return domain.MaxTimestamps
	}
	return n
}
