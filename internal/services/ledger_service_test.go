package services

import (
	"testing"

	"fincontrol/internal/models"
	"fincontrol/internal/pagination"
	"fincontrol/internal/testutil"
)

func TestAssignAllocation(t *testing.T) {
	t.Run("first_assignment_creates_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		allocation, err := svc.AssignAllocation("03/2025", sub.ID, 500)
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, 500, allocation.Initial)
		testutil.AssertAmount(t, 500, allocation.Current)
		if allocation.MonthKey != "03/2025" {
			t.Errorf("expected month 03/2025, got %s", allocation.MonthKey)
		}
	})

	t.Run("top_up_grows_initial_and_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.AssignAllocation("03/2025", sub.ID, 500)
		testutil.AssertNoError(t, err)
		allocation, err := svc.AssignAllocation("03/2025", sub.ID, 200)
		testutil.AssertNoError(t, err)

		testutil.AssertAmount(t, 700, allocation.Initial)
		testutil.AssertAmount(t, 700, allocation.Current)

		var count int64
		db.Model(&models.MonthlyAllocation{}).Where("sub_account_id = ?", sub.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected a single allocation row, got %d", count)
		}
	})

	t.Run("separate_months_get_separate_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.AssignAllocation("03/2025", sub.ID, 500)
		testutil.AssertNoError(t, err)
		_, err = svc.AssignAllocation("04/2025", sub.ID, 300)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.MonthlyAllocation{}).Where("sub_account_id = ?", sub.ID).Count(&count)
		if count != 2 {
			t.Errorf("expected 2 allocation rows, got %d", count)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.AssignAllocation("03/2025", sub.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.AssignAllocation("03/2025", sub.ID, -10)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_bad_month_key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.AssignAllocation("2025-03", sub.ID, 100)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_sub_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)

		_, err := svc.AssignAllocation("03/2025", 9999, 100)
		testutil.AssertAppError(t, err, "SUBACCOUNT_NOT_FOUND")
	})
}

func TestRecordExpense(t *testing.T) {
	t.Run("decrements_current", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 500)

		expense, err := svc.RecordExpense("10/03/2025", 120, "groceries", sub.ID, "03/2025")
		testutil.AssertNoError(t, err)

		if expense.SubAccountID == nil || *expense.SubAccountID != sub.ID {
			t.Error("expected expense bound to the sub-account")
		}

		var allocation models.MonthlyAllocation
		db.Where("sub_account_id = ? AND month_key = ?", sub.ID, "03/2025").First(&allocation)
		testutil.AssertAmount(t, 380, allocation.Current)
		testutil.AssertAmount(t, 500, allocation.Initial)
	})

	t.Run("refuses_overdraft", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 100)

		_, err := svc.RecordExpense("10/03/2025", 150, "too much", sub.ID, "03/2025")
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

		var count int64
		db.Model(&models.Expense{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no expense rows after refusal, got %d", count)
		}
	})

	t.Run("refuses_without_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.RecordExpense("10/03/2025", 50, "no budget", sub.ID, "03/2025")
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")
	})

	t.Run("rejects_bad_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 100)

		_, err := svc.RecordExpense("2025-03-10", 50, "iso date", sub.ID, "03/2025")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRecordTransfer(t *testing.T) {
	t.Run("moves_balance_and_logs", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 500)
		testutil.CreateTestAllocation(t, db, destination.ID, "03/2025", 100)

		transfer, err := svc.RecordTransfer("15/03/2025", origin.ID, destination.ID, 200, "rebalance", "03/2025")
		testutil.AssertNoError(t, err)
		if transfer.ID == 0 {
			t.Fatal("expected persisted transfer")
		}

		var from, to models.MonthlyAllocation
		db.Where("sub_account_id = ? AND month_key = ?", origin.ID, "03/2025").First(&from)
		db.Where("sub_account_id = ? AND month_key = ?", destination.ID, "03/2025").First(&to)
		testutil.AssertAmount(t, 300, from.Current)
		testutil.AssertAmount(t, 300, to.Current)
	})

	t.Run("conserves_pair_sum", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 350)
		testutil.CreateTestAllocation(t, db, destination.ID, "03/2025", 150)

		_, err := svc.RecordTransfer("15/03/2025", origin.ID, destination.ID, 75.5, "shift", "03/2025")
		testutil.AssertNoError(t, err)

		var from, to models.MonthlyAllocation
		db.Where("sub_account_id = ? AND month_key = ?", origin.ID, "03/2025").First(&from)
		db.Where("sub_account_id = ? AND month_key = ?", destination.ID, "03/2025").First(&to)
		testutil.AssertAmount(t, 500, from.Current+to.Current)
	})

	t.Run("creates_missing_destination_allocation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 500)

		_, err := svc.RecordTransfer("15/03/2025", origin.ID, destination.ID, 200, "fresh month", "03/2025")
		testutil.AssertNoError(t, err)

		var to models.MonthlyAllocation
		db.Where("sub_account_id = ? AND month_key = ?", destination.ID, "03/2025").First(&to)
		testutil.AssertAmount(t, 200, to.Current)
		testutil.AssertAmount(t, 0, to.Initial)
	})

	t.Run("rejects_same_sub_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 500)

		_, err := svc.RecordTransfer("15/03/2025", sub.ID, sub.ID, 100, "noop", "03/2025")
		testutil.AssertAppError(t, err, "SAME_SUBACCOUNT_TRANSFER")
	})

	t.Run("rejects_empty_justification", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 500)

		_, err := svc.RecordTransfer("15/03/2025", origin.ID, destination.ID, 100, "", "03/2025")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("refuses_insufficient_origin_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		origin := testutil.CreateTestSubAccount(t, db, account.ID)
		destination := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, origin.ID, "03/2025", 50)

		_, err := svc.RecordTransfer("15/03/2025", origin.ID, destination.ID, 100, "too much", "03/2025")
		testutil.AssertAppError(t, err, "INSUFFICIENT_BALANCE")

		var count int64
		db.Model(&models.Transfer{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no transfer log after refusal, got %d", count)
		}
	})
}

func TestMonthlyBalances(t *testing.T) {
	t.Run("missing_allocations_report_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccountWithName(t, db, "Checking")
		funded := testutil.CreateTestSubAccountWithName(t, db, account.ID, "Food")
		testutil.CreateTestSubAccountWithName(t, db, account.ID, "Transport")
		testutil.CreateTestAllocation(t, db, funded.ID, "03/2025", 400)

		balances, err := svc.MonthlyBalances("03/2025")
		testutil.AssertNoError(t, err)

		if len(balances) != 2 {
			t.Fatalf("expected 2 balance rows, got %d", len(balances))
		}
		testutil.AssertAmount(t, 400, balances[0].Current)
		testutil.AssertAmount(t, 0, balances[1].Current)
		testutil.AssertAmount(t, 0, balances[1].Initial)
	})

	t.Run("ordered_by_account_then_sub_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		beta := testutil.CreateTestAccountWithName(t, db, "Beta")
		alpha := testutil.CreateTestAccountWithName(t, db, "Alpha")
		testutil.CreateTestSubAccountWithName(t, db, beta.ID, "A")
		testutil.CreateTestSubAccountWithName(t, db, alpha.ID, "Z")
		testutil.CreateTestSubAccountWithName(t, db, alpha.ID, "B")

		balances, err := svc.MonthlyBalances("03/2025")
		testutil.AssertNoError(t, err)

		if len(balances) != 3 {
			t.Fatalf("expected 3 balance rows, got %d", len(balances))
		}
		got := []string{
			balances[0].AccountName + "/" + balances[0].SubAccount,
			balances[1].AccountName + "/" + balances[1].SubAccount,
			balances[2].AccountName + "/" + balances[2].SubAccount,
		}
		want := []string{"Alpha/B", "Alpha/Z", "Beta/A"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})

	t.Run("round_trip_matches_incremental_tracking", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		food := testutil.CreateTestSubAccount(t, db, account.ID)
		transport := testutil.CreateTestSubAccount(t, db, account.ID)

		_, err := svc.AssignAllocation("03/2025", food.ID, 600)
		testutil.AssertNoError(t, err)
		_, err = svc.AssignAllocation("03/2025", transport.ID, 200)
		testutil.AssertNoError(t, err)
		_, err = svc.AssignAllocation("03/2025", food.ID, 100)
		testutil.AssertNoError(t, err)
		_, err = svc.RecordExpense("05/03/2025", 150, "market", food.ID, "03/2025")
		testutil.AssertNoError(t, err)
		_, err = svc.RecordTransfer("10/03/2025", food.ID, transport.ID, 50, "fuel", "03/2025")
		testutil.AssertNoError(t, err)
		_, err = svc.RecordExpense("12/03/2025", 80, "bus pass", transport.ID, "03/2025")
		testutil.AssertNoError(t, err)

		balances, err := svc.MonthlyBalances("03/2025")
		testutil.AssertNoError(t, err)

		byID := map[uint]SubAccountBalance{}
		for _, b := range balances {
			byID[b.SubAccountID] = b
		}
		// food: 600 + 100 - 150 - 50 = 500; transport: 200 + 50 - 80 = 170
		testutil.AssertAmount(t, 500, byID[food.ID].Current)
		testutil.AssertAmount(t, 700, byID[food.ID].Initial)
		testutil.AssertAmount(t, 170, byID[transport.ID].Current)
		testutil.AssertAmount(t, 200, byID[transport.ID].Initial)
	})
}

func TestListExpensesAndTransfers(t *testing.T) {
	t.Run("filters_by_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLedgerService(db)
		account := testutil.CreateTestAccount(t, db)
		sub := testutil.CreateTestSubAccount(t, db, account.ID)
		testutil.CreateTestAllocation(t, db, sub.ID, "03/2025", 500)
		testutil.CreateTestAllocation(t, db, sub.ID, "04/2025", 500)

		_, err := svc.RecordExpense("05/03/2025", 10, "a", sub.ID, "03/2025")
		testutil.AssertNoError(t, err)
		_, err = svc.RecordExpense("05/04/2025", 20, "b", sub.ID, "04/2025")
		testutil.AssertNoError(t, err)

		page := pagination.PageRequest{Page: 1, PageSize: 10}
		result, err := svc.ListExpenses("03/2025", page)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 expense in 03/2025, got %d", result.TotalItems)
		}
	})
}
