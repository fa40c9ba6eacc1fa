// ABOUTME: Relative time formatting for post publication dates
// ABOUTME: Converts timestamps into short labels such as "3 days ago"

package duration

import (
	"fmt"
	"math"
	"time"
)

const day = 24 * time.Hour

// RelativeLabel describes t relative to now: "Today", "Yesterday", "N days ago",
// "N weeks ago" within a month, otherwise a short date.
func RelativeLabel(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(float64(diff) / float64(day)))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", int(math.Ceil(float64(days)/7)))
	default:
		return t.Format("Jan 2, 2006")
	}
}
