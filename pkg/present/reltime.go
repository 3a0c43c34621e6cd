package present

import (
	"fmt"
	"time"
)

// Coarse buckets in seconds. Months are 30 days and years 365; the output
// is display-only.
var intervals = []struct {
	unit    string
	seconds int64
}{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// RelativeTime renders how long ago updatedAt was, using the largest unit
// whose count is at least one ("1 day ago", "3 weeks ago"). Anything under a
// minute, including timestamps in the future, is "just now". A missing or
// unparseable timestamp is "unknown".
func RelativeTime(updatedAt string, now time.Time) string {
	if updatedAt == "" {
		return "unknown"
	}
	t, ok := parseTime(updatedAt)
	if !ok {
		return "unknown"
	}

	elapsed := int64(now.Sub(t) / time.Second)
	for _, iv := range intervals {
		n := elapsed / iv.seconds
		if n >= 1 {
			if n == 1 {
				return fmt.Sprintf("1 %s ago", iv.unit)
			}
			return fmt.Sprintf("%d %ss ago", n, iv.unit)
		}
	}
	return "just now"
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
