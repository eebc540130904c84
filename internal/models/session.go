package models

import "time"

// Session represents the single active login session. At most one row
// exists at any time; logging in replaces it.
type Session struct {
	Base
	Token string `gorm:"not null;uniqueIndex" json:"-"`
}

// ExpiredAt returns the moment the session stops being valid.
func (s *Session) ExpiredAt(ttl time.Duration) time.Time {
	return s.CreatedAt.Add(ttl)
}

// Expired reports whether the session is older than ttl at the given time.
func (s *Session) Expired(ttl time.Duration, now time.Time) bool {
	return now.After(s.ExpiredAt(ttl))
}
