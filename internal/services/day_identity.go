package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nwestbury/pulselog/internal/models"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// DayKeyLayout formats a civil calendar date, the unit of uniqueness
// for daily logs.
const DayKeyLayout = "2006-01-02"

// ResolveLocation loads an IANA timezone by name. Unknown or malformed
// names fail with ErrInvalidTimezone so callers can fall back.
func ResolveLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}
	location, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, trimmed)
	}
	return location, nil
}

// LocationOrDefault resolves the user's timezone preference, falling
// back to the configured default when the preference is missing or
// broken. A bad preference must not block logging.
func LocationOrDefault(name string) *time.Location {
	if location, err := ResolveLocation(name); err == nil {
		return location
	}
	location, err := time.LoadLocation(models.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// DateAtLocation returns midnight of the civil date that value falls on
// as observed in location. Civil-date extraction keeps DST days (23 or
// 25 hours long) correct where fixed-offset arithmetic would not be.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [midnight, next midnight) window that
// contains value in location.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DayKey returns the canonical day identity of an instant in a
// timezone. Two instants minutes apart legitimately get different keys
// around local midnight.
func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DayKeyLayout)
}

// SameDay reports whether two instants fall on the same civil date in
// location.
func SameDay(first time.Time, second time.Time, location *time.Location) bool {
	return DayKey(first, location) == DayKey(second, location)
}
