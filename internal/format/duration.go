package format

import (
	"fmt"
	"time"
)

// Duration renders d at the coarsest unit that applies: "2d 3h", "4h 12m"
// or "37m". Seconds are dropped and negative values render as "0m".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
