package fetch

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// estimateRemaining extrapolates time left from throughput so far.
// Returns 0 until at least one unit has completed.
func estimateRemaining(start time.Time, done, total int) time.Duration {
	if done <= 0 || total <= done {
		return 0
	}
	elapsed := time.Since(start)
	return time.Duration(float64(elapsed) / float64(done) * float64(total-done))
}

// humanDuration renders a duration the way a person would say it
// ("12 minutes"), for progress output.
func humanDuration(d time.Duration) string {
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}
