package task

import (
	"fmt"
	"time"
)

// Urgency buckets a deadline relative to now.
type Urgency int

const (
	OnTrack Urgency = iota
	DueSoon
	Overdue
)

const dueSoonWindow = 24 * time.Hour

// UrgencyOf classifies t's deadline: Overdue once it has passed, DueSoon
// within a day of it.
func UrgencyOf(t Task, now time.Time, loc *time.Location) Urgency {
	due := t.Deadline(loc)
	if due.Before(now) {
		return Overdue
	}
	if due.Sub(now) < dueSoonWindow {
		return DueSoon
	}
	return OnTrack
}

// Remaining renders the time left until t's deadline, e.g. "2d 3h 10m left".
func Remaining(t Task, now time.Time, loc *time.Location) string {
	diff := int64(t.Deadline(loc).Sub(now) / time.Second)
	if diff <= 0 {
		return "Deadline Over"
	}
	days := diff / 86400
	hours := (diff % 86400) / 3600
	minutes := (diff % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm left", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm left", hours, minutes)
	default:
		return fmt.Sprintf("%dm left", minutes)
	}
}
