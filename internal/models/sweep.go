package models

// SweepState persists the last month key observed by the month-close
// sweep. A single row; keeping it in the store (rather than process
// memory) makes the sweep idempotent across restarts.
type SweepState struct {
	Base
	LastMonth string `gorm:"not null" json:"last_month"`
}
