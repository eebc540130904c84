// Package monthkey implements the MM/YYYY month keys and DD/MM/YYYY dates
// used throughout the ledger. Month keys identify the monthly bucket a row
// belongs to and are stored denormalized alongside each entry.
package monthkey

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the display form for dates.
const DateLayout = "02/01/2006"

var keyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// Key is a calendar month in MM/YYYY form.
type Key struct {
	Month int
	Year  int
}

// Parse parses a MM/YYYY string into a Key.
func Parse(s string) (Key, error) {
	if !keyPattern.MatchString(s) {
		return Key{}, fmt.Errorf("invalid month key %q: want MM/YYYY", s)
	}
	month, _ := strconv.Atoi(s[:2])
	year, _ := strconv.Atoi(s[3:])
	return Key{Month: month, Year: year}, nil
}

// FromTime returns the Key for the month containing t.
func FromTime(t time.Time) Key {
	return Key{Month: int(t.Month()), Year: t.Year()}
}

// FromDate returns the Key for a DD/MM/YYYY date string.
func FromDate(date string) (Key, error) {
	t, err := ParseDate(date)
	if err != nil {
		return Key{}, err
	}
	return FromTime(t), nil
}

// String formats the key as MM/YYYY.
func (k Key) String() string {
	return fmt.Sprintf("%02d/%d", k.Month, k.Year)
}

// Add returns the key n months forward, carrying into the year.
// n may be negative.
func (k Key) Add(n int) Key {
	idx := k.Year*12 + (k.Month - 1) + n
	return Key{Month: idx%12 + 1, Year: idx / 12}
}

// Prev returns the preceding calendar month.
func (k Key) Prev() Key {
	return k.Add(-1)
}

// IsZero reports whether the key is unset.
func (k Key) IsZero() bool {
	return k.Month == 0 && k.Year == 0
}

// IsValid reports whether s is a well-formed MM/YYYY month key.
func IsValid(s string) bool {
	return keyPattern.MatchString(s)
}

// ParseDate parses a DD/MM/YYYY date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want DD/MM/YYYY", date)
	}
	return t, nil
}

// FormatDate formats t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// IsValidDate reports whether s is a well-formed DD/MM/YYYY date.
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
