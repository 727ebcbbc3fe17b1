package astro

import (
	"fmt"
	"strings"
	"time"
)

// Master numbers are fixed points of the life path reduction and are never
// reduced further.
const (
	MasterIlluminator = 11
	MasterBuilder     = 22
	MasterTeacher     = 33
)

// IsMasterNumber reports whether n is one of the numerology master numbers.
func IsMasterNumber(n int) bool {
	return n == MasterIlluminator || n == MasterBuilder || n == MasterTeacher
}

func digitSum(n int) int {
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// birthDateDigits returns the eight decimal digits of a date in
// day-month-year order (DDMMYYYY, zero padded). The digit order never
// changes the sum, but the step display below depends on it, so the same
// order is used everywhere.
func birthDateDigits(date time.Time) []int {
	s := date.Format("02012006")
	digits := make([]int, len(s))
	for i, r := range s {
		digits[i] = int(r - '0')
	}
	return digits
}

// LifePath computes the life path number for a birth date: the digits of
// the date are summed, then the running total is re-summed until it is a
// single digit or a master number. Any Gregorian date settles within three
// reduction passes. The result is in {1..9, 11, 22, 33}.
func LifePath(date time.Time) int {
	sum := 0
	for _, d := range birthDateDigits(date) {
		sum += d
	}
	for sum > 9 && !IsMasterNumber(sum) {
		sum = digitSum(sum)
	}
	return sum
}

// LifePathSteps returns the sequence of running totals produced by the life
// path reduction, starting with the initial digit sum and ending with the
// final life path number. The trace mirrors LifePath exactly: the last
// element always equals LifePath(date).
func LifePathSteps(date time.Time) []int {
	sum := 0
	for _, d := range birthDateDigits(date) {
		sum += d
	}
	steps := []int{sum}
	for sum > 9 && !IsMasterNumber(sum) {
		sum = digitSum(sum)
		steps = append(steps, sum)
	}
	return steps
}

// FormatLifePathSteps renders the reduction as display text, one line per
// pass, matching the day-month-year digit order used by LifePath.
func FormatLifePathSteps(date time.Time) string {
	digits := birthDateDigits(date)
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = fmt.Sprintf("%d", d)
	}

	steps := LifePathSteps(date)
	var b strings.Builder
	fmt.Fprintf(&b, "Birth date: %s\n", date.Format("02/01/2006"))
	fmt.Fprintf(&b, "Add all digits: %s = %d\n", strings.Join(parts, " + "), steps[0])

	for i := 1; i < len(steps); i++ {
		prev := steps[i-1]
		var reduceParts []string
		for _, r := range fmt.Sprintf("%d", prev) {
			reduceParts = append(reduceParts, string(r))
		}
		fmt.Fprintf(&b, "Reduce: %s = %d\n", strings.Join(reduceParts, " + "), steps[i])
	}

	final := steps[len(steps)-1]
	if IsMasterNumber(final) {
		fmt.Fprintf(&b, "\nMaster Number: %d (not reduced further)", final)
	} else {
		fmt.Fprintf(&b, "\nLife Path Number: %d", final)
	}
	return b.String()
}

// LuckyNumber derives a daily number in [1, 50] from a life path value and
// a date. It is deterministic for the same inputs and changes with the
// calendar date, so a user's lucky number rolls over each day.
func LuckyNumber(lifePath int, on time.Time) int {
	seed := lifePath + on.Day() + int(on.Month()) + on.Year()%100
	return (seed*7)%50 + 1
}

// CompatibilityResult holds the component and overall scores for a pair of
// people plus the display label for the overall tier.
type CompatibilityResult struct {
	ZodiacScore     int
	NumerologyScore int
	OverallScore    int
	Label           string
}

// Compatibility scores two people from their zodiac signs and life path
// numbers. Identical signs score 90, harmonizing elements 80, anything
// else 60; life path distance maps to 100/85/70/55; the overall score is
// the floor average of the two.
func Compatibility(signA Sign, lifePathA int, signB Sign, lifePathB int) CompatibilityResult {
	var zodiacScore int
	switch {
	case signA == signB:
		zodiacScore = 90
	case ElementsCompatible(signElements[signA], signElements[signB]):
		zodiacScore = 80
	default:
		zodiacScore = 60
	}

	diff := lifePathA - lifePathB
	if diff < 0 {
		diff = -diff
	}
	var numerologyScore int
	switch {
	case diff == 0:
		numerologyScore = 100
	case diff <= 2:
		numerologyScore = 85
	case diff <= 4:
		numerologyScore = 70
	default:
		numerologyScore = 55
	}

	overall := (zodiacScore + numerologyScore) / 2

	var label string
	switch {
	case overall >= 85:
		label = "Excellent ❤️"
	case overall >= 70:
		label = "Very Good 💖"
	case overall >= 60:
		label = "Good 💕"
	default:
		label = "Challenging 💙"
	}

	return CompatibilityResult{
		ZodiacScore:     zodiacScore,
		NumerologyScore: numerologyScore,
		OverallScore:    overall,
		Label:           label,
	}
}
