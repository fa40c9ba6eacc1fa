// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the date formats emitted by RSS feeds and RSS-to-JSON proxies

package time

import (
	"strings"
	"time"
)

// Common time formats found in RSS/Atom feeds and proxy responses
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime attempts to parse a time string using various formats.
// The zero time is returned when no format matches.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// ParseOptional returns the first candidate that parses, or nil when none does
func ParseOptional(candidates ...string) *time.Time {
	for _, candidate := range candidates {
		if t := ParseFlexibleTime(candidate); !t.IsZero() {
			return &t
		}
	}
	return nil
}
