package database

import (
	"database/sql"
	"time"
)

// DateLayout is the serialization format for birth dates in the users
// table. The column names and this layout are the on-disk contract and
// must stay stable across releases.
const DateLayout = "2006-01-02"

// UserProfile is a user's stored birth date and the values derived from
// it. ZodiacSign and LifePathNumber are recomputed on every write and are
// always consistent with DOB as of the last save; they are never derived
// lazily on read.
type UserProfile struct {
	UserID         int64     `db:"user_id"`
	DOB            string    `db:"dob"`
	ZodiacSign     string    `db:"zodiac_sign"`
	LifePathNumber int       `db:"life_path_number"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// BirthDate parses the stored DOB string.
func (p *UserProfile) BirthDate() (time.Time, error) {
	return time.Parse(DateLayout, p.DOB)
}

// Fact is a display fact, optionally tied to a calendar day and month.
// A row with both Day and Month null is a generic fact usable on any date.
type Fact struct {
	ID        int64         `db:"id"`
	Day       sql.NullInt64 `db:"day"`
	Month     sql.NullInt64 `db:"month"`
	Type      string        `db:"type"`
	FactText  string        `db:"fact_text"`
	CreatedAt time.Time     `db:"created_at"`
}

// Subscription marks a user as receiving the daily horoscope push.
type Subscription struct {
	UserID       int64     `db:"user_id"`
	SubscribedAt time.Time `db:"subscribed_at"`
}
