package models

// Loan represents an installment loan contract.
type Loan struct {
	Base
	Institution       string  `gorm:"not null" json:"institution"`
	Contract          string  `gorm:"not null" json:"contract"`
	Type              string  `gorm:"not null" json:"type"`
	FirstInstallment  string  `gorm:"not null" json:"first_installment"`
	InstallmentCount  int     `gorm:"not null" json:"installment_count"`
	InstallmentAmount float64 `gorm:"not null" json:"installment_amount"`

	// Relationships
	Installments []Installment `gorm:"foreignKey:LoanID" json:"installments,omitempty"`
}

// Installment is one scheduled payment unit of a Loan. The transition
// Open -> Settled is terminal; SettledAmount and SettledAt are set
// together exactly once.
type Installment struct {
	Base
	LoanID         uint     `gorm:"not null;index" json:"loan_id"`
	MonthKey       string   `gorm:"not null;index" json:"month_key"`
	OriginalAmount float64  `gorm:"not null" json:"original_amount"`
	SettledAmount  *float64 `json:"settled_amount,omitempty"`
	SettledAt      *string  `json:"settled_at,omitempty"`
}

// Settled reports whether the installment has been paid.
func (i *Installment) Settled() bool {
	return i.SettledAmount != nil
}

// Savings returns the discount obtained on this installment, zero when
// open or settled at full value.
func (i *Installment) Savings() float64 {
	if i.SettledAmount == nil {
		return 0
	}
	return i.OriginalAmount - *i.SettledAmount
}
