package models

// Expense is an immutable spending log entry. SubAccountID is nil for
// expenses generated by automatic loan settlement, which are not tracked
// against any sub-account budget.
type Expense struct {
	Base
	Date         string  `gorm:"not null" json:"date"`
	Amount       float64 `gorm:"not null" json:"amount"`
	Description  string  `json:"description"`
	SubAccountID *uint   `gorm:"index" json:"sub_account_id,omitempty"`
	MonthKey     string  `gorm:"not null;index" json:"month_key"`

	// Relationships
	SubAccount *SubAccount `gorm:"foreignKey:SubAccountID" json:"sub_account,omitempty"`
}
