package board

import (
	"fmt"
	"strings"
)

// ParseClockType accepts "analog" or "digital".
func ParseClockType(s string) (ClockType, error) {
	switch t := ClockType(strings.ToLower(strings.TrimSpace(s))); t {
	case ClockAnalog, ClockDigital:
		return t, nil
	}
	return "", fmt.Errorf("invalid clock type %q, want analog or digital", s)
}

// ParseClockFormat accepts "12h" or "24h".
func ParseClockFormat(s string) (ClockFormat, error) {
	switch f := ClockFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case Format12h, Format24h:
		return f, nil
	}
	return "", fmt.Errorf("invalid clock format %q, want 12h or 24h", s)
}

// ParseDayFormat accepts "full", "short" or "abbreviated".
func ParseDayFormat(s string) (DayFormat, error) {
	switch f := DayFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case DayFull, DayShort, DayAbbreviated:
		return f, nil
	}
	return "", fmt.Errorf("invalid day format %q, want full, short or abbreviated", s)
}

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("invalid theme %q, want light or dark", s)
}
