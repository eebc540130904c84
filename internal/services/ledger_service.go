package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/models"
	"fincontrol/internal/monthkey"
	"fincontrol/internal/pagination"
)

// ledgerService handles allocations, expenses and transfers.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// AssignAllocation assigns an amount to a sub-account for a month. The
// first assignment creates the allocation row with initial = current =
// amount; later assignments top up both, so initial tracks the cumulative
// planned amount for the month.
func (s *ledgerService) AssignAllocation(month string, subAccountID uint, amount float64) (*models.MonthlyAllocation, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !monthkey.IsValid(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	var sub models.SubAccount
	if err := s.db.First(&sub, subAccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var allocation models.MonthlyAllocation
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("sub_account_id = ? AND month_key = ?", subAccountID, month).
			First(&allocation).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			allocation = models.MonthlyAllocation{
				SubAccountID: subAccountID,
				MonthKey:     month,
				Initial:      amount,
				Current:      amount,
			}
			if err := tx.Create(&allocation).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		case err != nil:
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		default:
			allocation.Initial += amount
			allocation.Current += amount
			if err := tx.Model(&allocation).
				Updates(map[string]interface{}{"initial": allocation.Initial, "current": allocation.Current}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &allocation, nil
}

// RecordExpense logs an expense against a sub-account and decrements the
// matching allocation's current balance, refusing overdrafts.
func (s *ledgerService) RecordExpense(date string, amount float64, description string, subAccountID uint, month string) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !monthkey.IsValidDate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date")
	}
	if !monthkey.IsValid(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	var expense *models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var allocation models.MonthlyAllocation
		err := tx.Where("sub_account_id = ? AND month_key = ?", subAccountID, month).
			First(&allocation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInsufficientBalance
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if amount > allocation.Current {
			return apperrors.ErrInsufficientBalance
		}

		expense = &models.Expense{
			Date:         date,
			Amount:       amount,
			Description:  description,
			SubAccountID: &subAccountID,
			MonthKey:     month,
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if err := tx.Model(&allocation).
			Update("current", gorm.Expr("current - ?", amount)).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// RecordTransfer moves balance between two sub-accounts for a month and
// logs the movement. Both balance updates and the log insert happen in a
// single transaction.
func (s *ledgerService) RecordTransfer(date string, originID, destinationID uint, amount float64, justification, month string) (*models.Transfer, error) {
	var transfer *models.Transfer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		transfer, txErr = s.RecordTransferTx(tx, date, originID, destinationID, amount, justification, month)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// RecordTransferTx is RecordTransfer running inside an existing
// transaction; the month-close sweep uses it to batch its transfers with
// the sweep-state update.
func (s *ledgerService) RecordTransferTx(tx *gorm.DB, date string, originID, destinationID uint, amount float64, justification, month string) (*models.Transfer, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if originID == destinationID {
		return nil, apperrors.ErrSameSubAccountTransfer
	}
	if justification == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "justification is required")
	}
	if !monthkey.IsValidDate(date) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date")
	}
	if !monthkey.IsValid(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	var origin models.MonthlyAllocation
	err := tx.Where("sub_account_id = ? AND month_key = ?", originID, month).First(&origin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrInsufficientBalance
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if amount > origin.Current {
		return nil, apperrors.ErrInsufficientBalance
	}

	// The destination allocation is created at zero when missing, so a
	// transfer into an untouched month (the reserves sweep case) lands
	// instead of silently updating nothing.
	destination := models.MonthlyAllocation{
		SubAccountID: destinationID,
		MonthKey:     month,
	}
	if err := tx.Where("sub_account_id = ? AND month_key = ?", destinationID, month).
		FirstOrCreate(&destination).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := tx.Model(&origin).
		Update("current", gorm.Expr("current - ?", amount)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Model(&destination).
		Update("current", gorm.Expr("current + ?", amount)).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	transfer := &models.Transfer{
		Date:          date,
		OriginID:      originID,
		DestinationID: destinationID,
		Amount:        amount,
		Justification: justification,
		MonthKey:      month,
	}
	if err := tx.Create(transfer).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transfer, nil
}

// MonthlyBalances returns every sub-account with its allocation for the
// month; sub-accounts without one report zero. Ordered by account name
// then sub-account name.
func (s *ledgerService) MonthlyBalances(month string) ([]SubAccountBalance, error) {
	if !monthkey.IsValid(month) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid month key")
	}

	var balances []SubAccountBalance
	err := s.db.Model(&models.SubAccount{}).
		Select(`sub_accounts.id AS sub_account_id,
			accounts.name AS account_name,
			sub_accounts.name AS sub_account,
			COALESCE(ma.initial, 0) AS initial,
			COALESCE(ma.current, 0) AS current`).
		Joins("JOIN accounts ON accounts.id = sub_accounts.account_id").
		Joins("LEFT JOIN monthly_allocations ma ON ma.sub_account_id = sub_accounts.id AND ma.month_key = ?", month).
		Order("accounts.name, sub_accounts.name").
		Scan(&balances).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return balances, nil
}

// ListExpenses returns a month's expense log, newest first.
func (s *ledgerService) ListExpenses(month string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("month_key = ?", month)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ListTransfers returns a month's transfer log, newest first.
func (s *ledgerService) ListTransfers(month string, page pagination.PageRequest) (*pagination.PageResponse[models.Transfer], error) {
	page.Defaults()

	base := s.db.Model(&models.Transfer{}).Where("month_key = ?", month)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transfers []models.Transfer
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id DESC").
		Find(&transfers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transfers, page.Page, page.PageSize, totalItems)
	return &result, nil
}
