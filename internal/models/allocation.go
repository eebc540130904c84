package models

// MonthlyAllocation tracks the planned and remaining amount for one
// sub-account in one month. Initial grows with each assignment; Current
// is decremented by expenses and outgoing transfers and incremented by
// incoming transfers. Current may go negative; the storage layer does
// not enforce a floor.
type MonthlyAllocation struct {
	Base
	SubAccountID uint    `gorm:"not null;uniqueIndex:idx_allocation_sub_month" json:"sub_account_id"`
	MonthKey     string  `gorm:"not null;uniqueIndex:idx_allocation_sub_month" json:"month_key"`
	Initial      float64 `gorm:"not null" json:"initial"`
	Current      float64 `gorm:"not null" json:"current"`

	// Relationships
	SubAccount SubAccount `gorm:"foreignKey:SubAccountID" json:"sub_account"`
}
