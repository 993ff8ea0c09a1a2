package media

import (
	"fmt"
	"time"
)

// Timestamp is a media position or length at second precision
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
}

// TimestampFromDuration truncates d to whole seconds. Negative durations are zero.
func TimestampFromDuration(d time.Duration) Timestamp {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Timestamp{
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// String returns the timestamp in HH:MM:SS format
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}
