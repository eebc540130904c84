package models

// Transfer is an immutable log of a balance movement between two
// sub-accounts within one month.
type Transfer struct {
	Base
	Date          string  `gorm:"not null" json:"date"`
	OriginID      uint    `gorm:"not null;index" json:"origin_id"`
	DestinationID uint    `gorm:"not null;index" json:"destination_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	Justification string  `gorm:"not null" json:"justification"`
	MonthKey      string  `gorm:"not null;index" json:"month_key"`

	// Relationships
	Origin      SubAccount `gorm:"foreignKey:OriginID" json:"origin"`
	Destination SubAccount `gorm:"foreignKey:DestinationID" json:"destination"`
}
