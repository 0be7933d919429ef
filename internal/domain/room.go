package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MeetingRoom is a bookable room with fixed daily operating hours.
// OpenTime and CloseTime are 24-hour "HH:mm" strings; the invariant
// MinutesOfDay(OpenTime) < MinutesOfDay(CloseTime) holds after every
// create or update.
type MeetingRoom struct {
	ID                  int64     `json:"id"                    db:"id"`
	Name                string    `json:"name"                  db:"name"`
	OpenTime            string    `json:"open_time"             db:"open_time"`
	CloseTime           string    `json:"close_time"            db:"close_time"`
	SlotIntervalMinutes int       `json:"slot_interval_minutes" db:"slot_interval_minutes"`
	CreatedAt           time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"            db:"updated_at"`
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClock reports whether s is a well-formed 24-hour "HH:mm" time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// MinutesOfDay converts a well-formed "HH:mm" string to minutes since
// midnight. Returns -1 for malformed input so that callers comparing two
// values fail closed.
func MinutesOfDay(s string) int {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return -1
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return -1
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return -1
	}
	return hours*60 + minutes
}
