package services

import (
	"testing"

	"fincontrol/internal/models"
	"fincontrol/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("creates_and_is_idempotent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		first, err := svc.CreateAccount("Nubank")
		testutil.AssertNoError(t, err)
		second, err := svc.CreateAccount("Nubank")
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same account on repeat create, got %d and %d", first.ID, second.ID)
		}
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.CreateAccount("  ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCreateSubAccount(t *testing.T) {
	t.Run("creates_under_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		account := testutil.CreateTestAccount(t, db)

		sub, err := svc.CreateSubAccount("Mercado", account.ID)
		testutil.AssertNoError(t, err)
		if sub.AccountID != account.ID {
			t.Errorf("expected sub-account under %d, got %d", account.ID, sub.AccountID)
		}
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.CreateSubAccount("Mercado", 9999)
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}

func TestDeleteSubAccount(t *testing.T) {
	t.Run("deletes_with_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		ledger := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 100)
		_, err := ledger.RecordExpense("10/03/2025", 100, "zero it out", sub.ID, "03/2025")
		testutil.AssertNoError(t, err)

		err = svc.DeleteSubAccount(sub.ID)
		testutil.AssertNoError(t, err)

		var allocations, expenses int64
		db.Model(&models.MonthlyAllocation{}).Where("sub_account_id = ?", sub.ID).Count(&allocations)
		db.Model(&models.Expense{}).Where("sub_account_id = ?", sub.ID).Count(&expenses)
		if allocations != 0 || expenses != 0 {
			t.Errorf("expected history removed, got %d allocations and %d expenses", allocations, expenses)
		}
	})

	t.Run("refuses_nonzero_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 100)

		err := svc.DeleteSubAccount(sub.ID)
		testutil.AssertAppError(t, err, "SUBACCOUNT_HAS_BALANCE")
	})

	t.Run("refuses_transfer_references", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		ledger := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 100)
		_, err := ledger.RecordTransfer("10/03/2025", origin.ID, destination.ID, 100, "all of it", "03/2025")
		testutil.AssertNoError(t, err)

		// origin is at zero but appears in the transfer log
		err = svc.DeleteSubAccount(origin.ID)
		testutil.AssertAppError(t, err, "SUBACCOUNT_IN_USE")
	})

	t.Run("refuses_reserves", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		reserves, err := svc.EnsureReserves()
		testutil.AssertNoError(t, err)

		err = svc.DeleteSubAccount(reserves.ID)
		testutil.AssertAppError(t, err, "SUBACCOUNT_RESERVED")
	})

	t.Run("unknown_sub_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		err := svc.DeleteSubAccount(9999)
		testutil.AssertAppError(t, err, "SUBACCOUNT_NOT_FOUND")
	})
}

func TestEnsureReserves(t *testing.T) {
	t.Run("creates_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		first, err := svc.EnsureReserves()
		testutil.AssertNoError(t, err)
		second, err := svc.EnsureReserves()
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected a single reserves row, got %d and %d", first.ID, second.ID)
		}
		if first.Name != models.ReservesSubAccountName {
			t.Errorf("expected name %s, got %s", models.ReservesSubAccountName, first.Name)
		}

		var system models.Account
		if err := db.Where("name = ?", models.SystemAccountName).First(&system).Error; err != nil {
			t.Fatalf("expected system account: %v", err)
		}
		if first.AccountID != system.ID {
			t.Error("expected reserves under the system account")
		}
	})
}

func TestListSubAccounts(t *testing.T) {
	t.Run("ordered_with_account_preloaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)
		beta := testutil.CreateTestAccountWithName(t, db, "Beta")
		alpha := testutil.CreateTestAccountWithName(t, db, "Alpha")
		testutil.CreateTestSubAccountWithName(t, db, beta.ID, "A")
		testutil.CreateTestSubAccountWithName(t, db, alpha.ID, "B")

		subs, err := svc.ListSubAccounts()
		testutil.AssertNoError(t, err)
		if len(subs) != 2 {
			t.Fatalf("expected 2 sub-accounts, got %d", len(subs))
		}
		if subs[0].Account.Name != "Alpha" || subs[1].Account.Name != "Beta" {
			t.Errorf("expected Alpha before Beta, got %s then %s", subs[0].Account.Name, subs[1].Account.Name)
		}
	})
}
