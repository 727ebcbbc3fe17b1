package astro_test

import (
	"errors"
	"testing"
	"time"

	"astrobot/internal/astro"
)

func TestValidateBirthDate(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)

	tests := []struct {
		name    string
		day     int
		month   int
		year    int
		wantErr error
	}{
		{"valid date", 15, 1, 1990, nil},
		{"leap day in leap year", 29, 2, 2000, nil},
		{"leap day in century non-leap year", 29, 2, 1900, astro.ErrImpossibleDate},
		{"february 30th", 30, 2, 1990, astro.ErrImpossibleDate},
		{"month 13", 1, 13, 1990, astro.ErrImpossibleDate},
		{"day zero", 0, 5, 1990, astro.ErrImpossibleDate},
		{"today", 15, 6, 2025, nil},
		{"tomorrow", 16, 6, 2025, astro.ErrFutureDate},
		{"year 1899", 1, 1, 1899, astro.ErrYearTooEarly},
		{"year 1900", 1, 1, 1900, nil},
		{"age over 120", 1, 1, 1904, astro.ErrAgeUnrealistic},
		{"exactly 120 years", 1, 1, 1905, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := astro.ValidateBirthDate(tc.day, tc.month, tc.year, today)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("ValidateBirthDate(%d, %d, %d) error = %v, want %v", tc.day, tc.month, tc.year, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateBirthDate(%d, %d, %d) unexpected error: %v", tc.day, tc.month, tc.year, err)
			}
			if got.Day() != tc.day || int(got.Month()) != tc.month || got.Year() != tc.year {
				t.Errorf("ValidateBirthDate returned %v, want %04d-%02d-%02d", got, tc.year, tc.month, tc.day)
			}
		})
	}
}

func TestParseDateInput(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "15-01-1990", nil},
		{"valid with spaces", "  29-02-2000  ", nil},
		{"wrong separator", "15/01/1990", astro.ErrInvalidFormat},
		{"missing part", "15-1990", astro.ErrInvalidFormat},
		{"non-numeric day", "xx-01-1990", astro.ErrInvalidFormat},
		{"two digit year", "15-01-90", astro.ErrInvalidFormat},
		{"year beyond this year", "15-01-2026", astro.ErrFutureDate},
		{"impossible date", "31-04-1990", astro.ErrImpossibleDate},
		{"future date this year", "16-06-2025", astro.ErrFutureDate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := astro.ParseDateInput(tc.input, today)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("ParseDateInput(%q) unexpected error: %v", tc.input, err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseDateInput(%q) error = %v, want %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Month
		ok    bool
	}{
		{"1", time.January, true},
		{"12", time.December, true},
		{"0", 0, false},
		{"13", 0, false},
		{"January", time.January, true},
		{"september", time.September, true},
		{"SEPT", time.September, true},
		{"sep", time.September, true},
		{"Dec", time.December, true},
		{" may ", time.May, true},
		{"smarch", 0, false},
		{"", 0, false},
	}

	for _, tc := range tests {
		got, ok := astro.ParseMonth(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseMonth(%q) = (%v, %v), want (%v, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
