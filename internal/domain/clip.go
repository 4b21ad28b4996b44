package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClipRange represents a requested trim window in whole seconds
type ClipRange struct {
	Start time.Duration
	End   time.Duration
}

// ParseClipRange parses a "MM:SS,MM:SS" pair into a ClipRange. Minutes may
// exceed 59 for sources longer than an hour. Ranges whose end is not after
// their start are rejected here, before any network or disk work happens.
func ParseClipRange(s string) (ClipRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return ClipRange{}, fmt.Errorf("clip range %q: want two comma-separated MM:SS timestamps", s)
	}

	start, err := parseTimestamp(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClipRange{}, fmt.Errorf("clip range %q: %w", s, err)
	}
	end, err := parseTimestamp(strings.TrimSpace(parts[1]))
	if err != nil {
		return ClipRange{}, fmt.Errorf("clip range %q: %w", s, err)
	}
	if end <= start {
		return ClipRange{}, fmt.Errorf("clip range %q: %w", s, ErrClipRangeInvalid)
	}

	return ClipRange{Start: start, End: end}, nil
}

// parseTimestamp converts a single "MM:SS" token into a duration
func parseTimestamp(s string) (time.Duration, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 {
		return 0, fmt.Errorf("timestamp %q: want MM:SS", s)
	}
	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("timestamp %q: invalid minutes", s)
	}
	seconds, err := strconv.Atoi(fields[1])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("timestamp %q: invalid seconds", s)
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// Duration returns the length of the clip window
func (r ClipRange) Duration() time.Duration {
	return r.End - r.Start
}

// Validate checks the range against the minimum clip duration and the known
// source duration. A zero sourceDuration skips the source bound check.
func (r ClipRange) Validate(minDuration, sourceDuration time.Duration) error {
	if r.End <= r.Start {
		return ErrClipRangeInvalid
	}
	if r.Duration() < minDuration {
		return fmt.Errorf("%w: %s < %s", ErrClipTooShort, r.Duration(), minDuration)
	}
	if sourceDuration > 0 && r.End > sourceDuration {
		return fmt.Errorf("%w: end %s, source %s", ErrClipRangeExceedsSource, formatTimestamp(r.End), formatTimestamp(sourceDuration))
	}
	return nil
}

// String renders the range back in MM:SS,MM:SS form for notes and logs
func (r ClipRange) String() string {
	return formatTimestamp(r.Start) + "," + formatTimestamp(r.End)
}

func formatTimestamp(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
