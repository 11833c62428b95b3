package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]*)`)
	unitMap        = map[string]time.Duration{
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
	}
)

// ParseCountdown parses a human-friendly countdown length such as "5m",
// "4m30s", "90s" or "1h5m". A bare number is read as minutes. It also
// accepts the clock form "MM:SS".
func ParseCountdown(input string) (time.Duration, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if mins, secs, ok := strings.Cut(trimmed, ":"); ok {
		return parseClock(mins, secs)
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 || matches[0] == "" {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		valueStr := matches[1]
		unitStr := matches[2]
		if unitStr == "" {
			unitStr = "m"
		}

		value, err := strconv.ParseInt(valueStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", valueStr, err)
		}
		base, ok := unitMap[unitStr]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", unitStr)
		}
		total += time.Duration(value) * base

		remaining = remaining[len(matches[0]):]
	}
	return total, nil
}

func parseClock(mins, secs string) (time.Duration, error) {
	m, err := strconv.Atoi(strings.TrimSpace(mins))
	if err != nil || m < 0 {
		return 0, fmt.Errorf("invalid minutes %q", mins)
	}
	s, err := strconv.Atoi(strings.TrimSpace(secs))
	if err != nil || s < 0 || s > 59 {
		return 0, fmt.Errorf("invalid seconds %q", secs)
	}
	return time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// Split breaks d into whole minutes and the remaining seconds, dropping any
// fraction of a second.
func Split(d time.Duration) (minutes, seconds int) {
	if d <= 0 {
		return 0, 0
	}
	total := int(d / time.Second)
	return total / 60, total % 60
}

// FormatDuration renders a duration using hour/minute/second tokens.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, "")
}
