package media

import (
	"testing"
	"time"
)

func TestTimestampFromDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   time.Duration
		want    Timestamp
		wantStr string
	}{
		{
			name:    "zero",
			input:   0,
			want:    Timestamp{},
			wantStr: "00:00:00",
		},
		{
			name:    "fractional seconds are truncated",
			input:   12*time.Second + 900*time.Millisecond,
			want:    Timestamp{Seconds: 12},
			wantStr: "00:00:12",
		},
		{
			name:    "hours minutes seconds",
			input:   time.Hour + 30*time.Minute + 45*time.Second,
			want:    Timestamp{Hours: 1, Minutes: 30, Seconds: 45},
			wantStr: "01:30:45",
		},
		{
			name:    "more than a day",
			input:   26 * time.Hour,
			want:    Timestamp{Hours: 26},
			wantStr: "26:00:00",
		},
		{
			name:    "negative is zero",
			input:   -5 * time.Second,
			want:    Timestamp{},
			wantStr: "00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimestampFromDuration(tt.input)
			if got != tt.want {
				t.Errorf("TimestampFromDuration() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.wantStr {
				t.Errorf("String() = %q, want %q", got.String(), tt.wantStr)
			}
		})
	}
}
