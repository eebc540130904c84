package models

// IncomeEntry represents income recorded for a month. Entries are
// immutable once created; the month key is derived from the date at
// insert time and stored denormalized.
type IncomeEntry struct {
	Base
	Date        string  `gorm:"not null" json:"date"`
	Source      string  `gorm:"not null" json:"source"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Description string  `json:"description"`
	MonthKey    string  `gorm:"not null;index" json:"month_key"`
}
