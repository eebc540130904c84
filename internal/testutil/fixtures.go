package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fincontrol/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with a unique name.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithName(t, db, fmt.Sprintf("Account %d", nextID()))
}

// CreateTestAccountWithName creates an account with the given name.
func CreateTestAccountWithName(t *testing.T, db *gorm.DB, name string) *models.Account {
	t.Helper()

	account := &models.Account{Name: name}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestSubAccount creates a sub-account with a unique name under the account.
func CreateTestSubAccount(t *testing.T, db *gorm.DB, accountID uint) *models.SubAccount {
	t.Helper()
	return CreateTestSubAccountWithName(t, db, accountID, fmt.Sprintf("Sub %d", nextID()))
}

// CreateTestSubAccountWithName creates a sub-account with the given name.
func CreateTestSubAccountWithName(t *testing.T, db *gorm.DB, accountID uint, name string) *models.SubAccount {
	t.Helper()

	sub := &models.SubAccount{Name: name, AccountID: accountID}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create test sub-account: %v", err)
	}
	return sub
}

// CreateTestAllocation creates a monthly allocation with initial = current = amount.
func CreateTestAllocation(t *testing.T, db *gorm.DB, subAccountID uint, month string, amount float64) *models.MonthlyAllocation {
	t.Helper()

	allocation := &models.MonthlyAllocation{
		SubAccountID: subAccountID,
		MonthKey:     month,
		Initial:      amount,
		Current:      amount,
	}
	if err := db.Create(allocation).Error; err != nil {
		t.Fatalf("failed to create test allocation: %v", err)
	}
	return allocation
}

// CreateTestIncome creates an income entry directly, bypassing auto-settlement.
func CreateTestIncome(t *testing.T, db *gorm.DB, date, month string, amount float64) *models.IncomeEntry {
	t.Helper()

	entry := &models.IncomeEntry{
		Date:     date,
		Source:   fmt.Sprintf("Source %d", nextID()),
		Amount:   amount,
		MonthKey: month,
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test income entry: %v", err)
	}
	return entry
}

// CreateTestLoan creates a loan without installments.
func CreateTestLoan(t *testing.T, db *gorm.DB, firstMonth string, count int, amount float64) *models.Loan {
	t.Helper()

	n := nextID()
	loan := &models.Loan{
		Institution:       fmt.Sprintf("Bank %d", n),
		Contract:          fmt.Sprintf("C-%d", n),
		Type:              "Personal",
		FirstInstallment:  firstMonth,
		InstallmentCount:  count,
		InstallmentAmount: amount,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("failed to create test loan: %v", err)
	}
	return loan
}

// CreateTestInstallment creates an open installment for a loan.
func CreateTestInstallment(t *testing.T, db *gorm.DB, loanID uint, month string, amount float64) *models.Installment {
	t.Helper()

	installment := &models.Installment{
		LoanID:         loanID,
		MonthKey:       month,
		OriginalAmount: amount,
	}
	if err := db.Create(installment).Error; err != nil {
		t.Fatalf("failed to create test installment: %v", err)
	}
	return installment
}
