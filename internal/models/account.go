package models

// Reserved names. The "Sistema" account and its "Reservas" sub-account are
// created automatically and receive the month-close leftover sweeps.
const (
	SystemAccountName      = "Sistema"
	ReservesSubAccountName = "Reservas"
)

// Account is a top-level named grouping of sub-accounts.
type Account struct {
	Base
	Name string `gorm:"not null;uniqueIndex" json:"name"`

	// Relationships
	SubAccounts []SubAccount `gorm:"foreignKey:AccountID" json:"sub_accounts,omitempty"`
}

// SubAccount is a budget bucket under an Account, tracked per month.
type SubAccount struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	AccountID uint   `gorm:"not null;index" json:"account_id"`

	// Relationships
	Account Account `gorm:"foreignKey:AccountID" json:"account"`
}

// IsReserves reports whether this is the reserved sweep target.
func (s *SubAccount) IsReserves() bool {
	return s.Name == ReservesSubAccountName
}
