package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// simTime is the simulated time after n ticks.
func simTime(ticks uint64) time.Duration {
	return time.Duration(ticks) * time.Second / config.TicksPerSecond
}
