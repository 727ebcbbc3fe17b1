package database

import "database/sql"

func nullDay(day int64) sql.NullInt64 {
	return sql.NullInt64{Int64: day, Valid: true}
}

// seedFacts is the built-in fact list inserted on first initialization.
// Facts with a Day are tied to that day of any month; the rest are
// generic and usable on any date.
var seedFacts = []Fact{
	{Day: nullDay(1), Type: "psychology", FactText: "People born on the 1st of any month tend to be natural leaders with strong independence."},
	{Day: nullDay(7), Type: "psychology", FactText: "The 7th is associated with deep thinkers and those drawn to spirituality and analysis."},
	{Day: nullDay(15), Type: "science", FactText: "The 15th day of the month is exactly halfway through most lunar cycles."},
	{Day: nullDay(21), Type: "numerology", FactText: "21 reduces to 3 (2+1), the number of creativity and self-expression."},
	{Type: "general", FactText: "Your birth date holds unique patterns that influence your personality traits."},
	{Type: "numerology", FactText: "Master numbers 11, 22, and 33 are not reduced in numerology calculations."},
	{Type: "psychology", FactText: "Birth order and date can create interesting correlations with personality development."},
	{Type: "science", FactText: "Statistical studies show slight personality variations based on birth seasons."},
	{Day: nullDay(11), Type: "numerology", FactText: "11 is a master number representing intuition and spiritual enlightenment."},
	{Day: nullDay(22), Type: "numerology", FactText: "22 is the master builder number, representing the manifestation of dreams."},
	{Day: nullDay(3), Type: "psychology", FactText: "Those born on the 3rd often possess strong communication skills and creativity."},
	{Day: nullDay(9), Type: "numerology", FactText: "9 is the number of completion and humanitarian service in numerology."},
}
