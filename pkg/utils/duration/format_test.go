package duration

import (
	"testing"
	"time"
)

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero time", t: time.Time{}, want: ""},
		{name: "same instant", t: now, want: "Today"},
		{name: "hours ago", t: now.Add(-5 * time.Hour), want: "Yesterday"},
		{name: "three days", t: now.Add(-3 * 24 * time.Hour), want: "3 days ago"},
		{name: "ten days", t: now.Add(-10 * 24 * time.Hour), want: "2 weeks ago"},
		{name: "old post", t: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), want: "Jan 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeLabel(tt.t, now); got != tt.want {
				t.Errorf("RelativeLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
