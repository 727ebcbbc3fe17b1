// Package astro_test tests the astro calculation package.
package astro_test

import (
	"testing"
	"time"

	"astrobot/internal/astro"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestSignForBoundaries checks the documented cusp dates on both sides.
func TestSignForBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		month time.Month
		day   int
		want  astro.Sign
	}{
		{"New Year's Eve", time.December, 31, astro.Capricorn},
		{"New Year's Day", time.January, 1, astro.Capricorn},
		{"Last Capricorn day", time.January, 19, astro.Capricorn},
		{"First Aquarius day", time.January, 20, astro.Aquarius},
		{"Last Pisces day", time.March, 20, astro.Pisces},
		{"First Aries day", time.March, 21, astro.Aries},
		{"Leap day", time.February, 29, astro.Pisces},
		{"Last Sagittarius day", time.December, 21, astro.Sagittarius},
		{"First Capricorn day", time.December, 22, astro.Capricorn},
		{"Mid Leo", time.August, 1, astro.Leo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := astro.SignFor(tc.month, tc.day); got != tc.want {
				t.Errorf("SignFor(%v, %d) = %q, want %q", tc.month, tc.day, got, tc.want)
			}
		})
	}
}

// TestSignForTotalCoverage walks every day of a leap year and a non-leap
// year and checks that each maps to exactly one of the twelve signs with
// no gaps.
func TestSignForTotalCoverage(t *testing.T) {
	t.Parallel()

	known := make(map[astro.Sign]bool, len(astro.Signs))
	for _, s := range astro.Signs {
		known[s] = true
	}

	for _, year := range []int{2023, 2024} {
		seen := make(map[astro.Sign]int)
		for d := date(year, time.January, 1); d.Year() == year; d = d.AddDate(0, 0, 1) {
			sign := astro.SignForDate(d)
			if !known[sign] {
				t.Fatalf("SignForDate(%v) returned unknown sign %q", d, sign)
			}
			seen[sign]++
		}
		if len(seen) != 12 {
			t.Errorf("year %d covered %d signs, want 12", year, len(seen))
		}
	}
}

func TestLifePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		// 2+9+1+1+1+9+9+0 = 32 -> 3+2 = 5
		{"single digit result", date(1990, time.November, 29), 5},
		// 2+9+0+2+2+0+0+0 = 15 -> 6
		{"leap day", date(2000, time.February, 29), 6},
		// 0+1+0+1+2+0+0+9 = 13 -> 4
		{"new year", date(2009, time.January, 1), 4},
		// 2+9+0+3+1+9+6+8 = 38 -> 11, master number kept
		{"master number 11", date(1968, time.March, 29), 11},
		// 0+8+0+8+1+9+9+6 = 41 -> 5
		{"august date", date(1996, time.August, 8), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := astro.LifePath(tc.date); got != tc.want {
				t.Errorf("LifePath(%v) = %d, want %d", tc.date, got, tc.want)
			}
		})
	}
}

// TestLifePathRange checks that every date in a wide sweep lands in the
// legal value set and that reduction is idempotent on its own results.
func TestLifePathRange(t *testing.T) {
	t.Parallel()

	legal := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true, 11: true, 22: true, 33: true}

	for d := date(1900, time.January, 1); d.Year() < 2026; d = d.AddDate(0, 0, 97) {
		lp := astro.LifePath(d)
		if !legal[lp] {
			t.Fatalf("LifePath(%v) = %d, not in {1..9, 11, 22, 33}", d, lp)
		}
	}
}

// TestLifePathStepsConsistent asserts the display trace mirrors the
// numeric algorithm: the final step always equals LifePath.
func TestLifePathStepsConsistent(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		date(1990, time.November, 29),
		date(1968, time.March, 29),
		date(2000, time.February, 29),
		date(1900, time.January, 1),
		date(1999, time.September, 9),
	}
	for _, d := range dates {
		steps := astro.LifePathSteps(d)
		if len(steps) == 0 {
			t.Fatalf("LifePathSteps(%v) returned no steps", d)
		}
		if got, want := steps[len(steps)-1], astro.LifePath(d); got != want {
			t.Errorf("LifePathSteps(%v) final step = %d, want LifePath = %d", d, got, want)
		}
		if len(steps) > 4 {
			t.Errorf("LifePathSteps(%v) took %d passes, want at most 4 entries", d, len(steps))
		}
	}
}

func TestLuckyNumber(t *testing.T) {
	t.Parallel()

	today := date(2025, time.June, 15)

	first := astro.LuckyNumber(7, today)
	if first < 1 || first > 50 {
		t.Fatalf("LuckyNumber out of range: %d", first)
	}
	if again := astro.LuckyNumber(7, today); again != first {
		t.Errorf("LuckyNumber not deterministic: %d != %d", again, first)
	}
	// (7+15+6+25)*7 % 50 + 1 = 371 % 50 + 1 = 22
	if first != 22 {
		t.Errorf("LuckyNumber(7, 2025-06-15) = %d, want 22", first)
	}

	tomorrow := astro.LuckyNumber(7, today.AddDate(0, 0, 1))
	if tomorrow == first {
		t.Errorf("LuckyNumber should change with the date: got %d twice", first)
	}
}

func TestCompatibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		signA, signB   astro.Sign
		lifePathA      int
		lifePathB      int
		wantZodiac     int
		wantNumerology int
		wantOverall    int
		wantLabel      string
	}{
		{
			name:  "same sign same path",
			signA: astro.Leo, signB: astro.Leo, lifePathA: 3, lifePathB: 3,
			wantZodiac: 90, wantNumerology: 100, wantOverall: 95, wantLabel: "Excellent ❤️",
		},
		{
			name:  "compatible elements close paths",
			signA: astro.Aries, signB: astro.Gemini, lifePathA: 5, lifePathB: 7,
			wantZodiac: 80, wantNumerology: 85, wantOverall: 82, wantLabel: "Very Good 💖",
		},
		{
			name:  "clashing elements distant paths",
			signA: astro.Aries, signB: astro.Taurus, lifePathA: 1, lifePathB: 9,
			wantZodiac: 60, wantNumerology: 55, wantOverall: 57, wantLabel: "Challenging 💙",
		},
		{
			name:  "clashing elements same path",
			signA: astro.Cancer, signB: astro.Leo, lifePathA: 4, lifePathB: 4,
			wantZodiac: 60, wantNumerology: 100, wantOverall: 80, wantLabel: "Very Good 💖",
		},
		{
			name:  "compatible elements distant paths",
			signA: astro.Scorpio, signB: astro.Taurus, lifePathA: 11, lifePathB: 3,
			wantZodiac: 80, wantNumerology: 55, wantOverall: 67, wantLabel: "Good 💕",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := astro.Compatibility(tc.signA, tc.lifePathA, tc.signB, tc.lifePathB)
			if got.ZodiacScore != tc.wantZodiac {
				t.Errorf("ZodiacScore = %d, want %d", got.ZodiacScore, tc.wantZodiac)
			}
			if got.NumerologyScore != tc.wantNumerology {
				t.Errorf("NumerologyScore = %d, want %d", got.NumerologyScore, tc.wantNumerology)
			}
			if got.OverallScore != tc.wantOverall {
				t.Errorf("OverallScore = %d, want %d", got.OverallScore, tc.wantOverall)
			}
			if got.Label != tc.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tc.wantLabel)
			}
		})
	}
}

// TestCompatibilitySymmetry documents the chosen behavior: the element
// affinity table is symmetric, so swapping the pair never changes the
// overall score.
func TestCompatibilitySymmetry(t *testing.T) {
	t.Parallel()

	for _, a := range astro.Signs {
		for _, b := range astro.Signs {
			ab := astro.Compatibility(a, 3, b, 8)
			ba := astro.Compatibility(b, 8, a, 3)
			if ab.OverallScore != ba.OverallScore {
				t.Errorf("Compatibility(%s, %s) = %d but Compatibility(%s, %s) = %d",
					a, b, ab.OverallScore, b, a, ba.OverallScore)
			}
		}
	}
}

func TestHoroscope(t *testing.T) {
	t.Parallel()

	for _, sign := range astro.Signs {
		templates := astro.HoroscopeTemplates(sign)
		if len(templates) < 3 {
			t.Errorf("sign %s has %d templates, want at least 3", sign, len(templates))
		}
		got := astro.Horoscope(sign)
		found := false
		for _, tmpl := range templates {
			if got == tmpl {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Horoscope(%s) returned text outside the template list: %q", sign, got)
		}
	}
}

func TestLifePathMeaning(t *testing.T) {
	t.Parallel()

	for _, lp := range []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 11, 22, 33} {
		if astro.LifePathMeaning(lp) == "" {
			t.Errorf("no meaning for life path %d", lp)
		}
	}
	if astro.LifePathMeaning(10) != "Your path is unique and special, combining multiple influences." {
		t.Error("unexpected fallback meaning for out-of-table value")
	}
}
