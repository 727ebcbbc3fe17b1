// Package astro implements the astrology and numerology calculations:
// zodiac sign lookup, life path reduction, lucky numbers, compatibility
// scoring, and birth date validation. Everything here is pure and performs
// no I/O, which keeps the bot's handlers thin and the arithmetic testable.
package astro

import "time"

// Sign is one of the twelve zodiac signs.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Signs lists all zodiac signs in calendar order starting from Aries.
var Signs = []Sign{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// Element is one of the four classical elements assigned to each sign.
type Element string

const (
	Fire  Element = "Fire"
	Earth Element = "Earth"
	Air   Element = "Air"
	Water Element = "Water"
)

var signElements = map[Sign]Element{
	Aries:       Fire,
	Taurus:      Earth,
	Gemini:      Air,
	Cancer:      Water,
	Leo:         Fire,
	Virgo:       Earth,
	Libra:       Air,
	Scorpio:     Water,
	Sagittarius: Fire,
	Capricorn:   Earth,
	Aquarius:    Air,
	Pisces:      Water,
}

// elementAffinity maps each element to the elements it harmonizes with.
// Fire feeds Air, Earth holds Water; the table is symmetric, so the
// directional lookup in Compatibility yields symmetric scores.
var elementAffinity = map[Element][]Element{
	Fire:  {Fire, Air},
	Earth: {Earth, Water},
	Air:   {Air, Fire},
	Water: {Water, Earth},
}

// monthCusps drives the sign lookup: for each month, days strictly before
// the cusp day belong to the sign that started in the previous month, days
// on or after it to the sign that starts this month. Every (month, day)
// pair, leap day included, therefore maps to exactly one sign.
var monthCusps = [13]struct {
	day    int
	before Sign
	onward Sign
}{
	time.January:   {20, Capricorn, Aquarius},
	time.February:  {19, Aquarius, Pisces},
	time.March:     {21, Pisces, Aries},
	time.April:     {20, Aries, Taurus},
	time.May:       {21, Taurus, Gemini},
	time.June:      {21, Gemini, Cancer},
	time.July:      {23, Cancer, Leo},
	time.August:    {23, Leo, Virgo},
	time.September: {23, Virgo, Libra},
	time.October:   {23, Libra, Scorpio},
	time.November:  {22, Scorpio, Sagittarius},
	time.December:  {22, Sagittarius, Capricorn},
}

// SignFor returns the zodiac sign for a calendar month and day.
func SignFor(month time.Month, day int) Sign {
	cusp := monthCusps[month]
	if day < cusp.day {
		return cusp.before
	}
	return cusp.onward
}

// SignForDate returns the zodiac sign for a date.
func SignForDate(date time.Time) Sign {
	return SignFor(date.Month(), date.Day())
}

// ElementOf returns the element assigned to a sign.
func ElementOf(sign Sign) Element {
	return signElements[sign]
}

// CompatibleElements returns the elements that harmonize with the given one.
func CompatibleElements(element Element) []Element {
	return elementAffinity[element]
}

// ElementsCompatible reports whether b harmonizes with a.
func ElementsCompatible(a, b Element) bool {
	for _, e := range elementAffinity[a] {
		if e == b {
			return true
		}
	}
	return false
}

// CompatibleSigns returns the signs whose element harmonizes with the given
// sign's element, excluding the sign itself.
func CompatibleSigns(sign Sign) []Sign {
	element := signElements[sign]
	var out []Sign
	for _, other := range Signs {
		if other != sign && ElementsCompatible(element, signElements[other]) {
			out = append(out, other)
		}
	}
	return out
}
