package astro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxAgeYears is the oldest birth year accepted, counted back from today.
const MaxAgeYears = 120

// MinBirthYear is the earliest birth year accepted.
const MinBirthYear = 1900

// Sentinel errors for the birth date validation taxonomy. Callers match
// with errors.Is; the wrapped messages carry the user-facing reason.
var (
	ErrInvalidFormat  = errors.New("invalid date format")
	ErrImpossibleDate = errors.New("impossible calendar date")
	ErrFutureDate     = errors.New("birth date cannot be in the future")
	ErrYearTooEarly   = errors.New("birth year too early")
	ErrAgeUnrealistic = errors.New("unrealistic age")
)

// daysInMonth returns the number of days in a month, accounting for leap
// years (divisible by 4, except centuries not divisible by 400).
func daysInMonth(month time.Month, year int) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// ValidateBirthDate checks that (day, month, year) is a real calendar date,
// not in the future, not before MinBirthYear, and within MaxAgeYears of
// today. It returns the date at UTC midnight on success. Each failure mode
// wraps a distinct sentinel with a human-readable reason.
func ValidateBirthDate(day, month, year int, today time.Time) (time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month must be between 1 and 12", ErrImpossibleDate)
	}
	if year < MinBirthYear {
		return time.Time{}, fmt.Errorf("%w: please enter a year after %d", ErrYearTooEarly, MinBirthYear)
	}
	m := time.Month(month)
	if day < 1 || day > daysInMonth(m, year) {
		return time.Time{}, fmt.Errorf("%w: %s %d only has %d days", ErrImpossibleDate, m, year, daysInMonth(m, year))
	}

	birthDate := time.Date(year, m, day, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if birthDate.After(todayDate) {
		return time.Time{}, fmt.Errorf("%w: birth date cannot be in the future", ErrFutureDate)
	}
	if today.Year()-year > MaxAgeYears {
		return time.Time{}, fmt.Errorf("%w: please enter a more recent birth year", ErrAgeUnrealistic)
	}
	return birthDate, nil
}

// ParseDateInput parses a strict DD-MM-YYYY string and applies the same
// range checks as ValidateBirthDate.
func ParseDateInput(text string, today time.Time) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: use DD-MM-YYYY", ErrInvalidFormat)
	}
	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day must be a number", ErrInvalidFormat)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month must be a number", ErrInvalidFormat)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("%w: year must be four digits", ErrInvalidFormat)
	}
	if year > today.Year() {
		return time.Time{}, fmt.Errorf("%w: year must be between %d and %d", ErrFutureDate, MinBirthYear, today.Year())
	}
	return ValidateBirthDate(day, month, year, today)
}

// monthNames accepts full month names and the standard three-letter
// abbreviations, plus "sept" which shows up often enough in practice.
var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseMonth accepts a month number (1-12) or a month name/abbreviation,
// case-insensitive. The second return value reports whether the input was
// recognized.
func ParseMonth(text string) (time.Month, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if n, err := strconv.Atoi(text); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	m, ok := monthNames[text]
	return m, ok
}
