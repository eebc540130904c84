package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/models"
)

// accountService handles accounts and sub-accounts.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates an account with a unique name. Creating an
// account that already exists returns the existing row.
func (s *accountService) CreateAccount(name string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	account := &models.Account{Name: name}
	if err := s.db.Where("name = ?", name).FirstOrCreate(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *accountService) ListAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.Order("name").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// CreateSubAccount creates a sub-account under an existing account.
func (s *accountService) CreateSubAccount(name string, accountID uint) (*models.SubAccount, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sub-account name is required")
	}

	var account models.Account
	if err := s.db.First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sub := &models.SubAccount{Name: name, AccountID: account.ID}
	if err := s.db.Create(sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sub.Account = account
	return sub, nil
}

// ListSubAccounts returns all sub-accounts joined to their accounts,
// ordered by account name then sub-account name.
func (s *accountService) ListSubAccounts() ([]models.SubAccount, error) {
	var subs []models.SubAccount
	if err := s.db.
		Joins("Account").
		Order("\"Account\".name, sub_accounts.name").
		Find(&subs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return subs, nil
}

// GetSubAccountByID retrieves a sub-account with its owning account.
func (s *accountService) GetSubAccountByID(id uint) (*models.SubAccount, error) {
	var sub models.SubAccount
	if err := s.db.Preload("Account").First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sub, nil
}

// DeleteSubAccount deletes a sub-account and cascades its allocations and
// expenses. Deletion is refused while the summed balance across all months
// is non-zero, while any transfer references the sub-account, and always
// for the reserves sub-account.
func (s *accountService) DeleteSubAccount(id uint) error {
	sub, err := s.GetSubAccountByID(id)
	if err != nil {
		return err
	}
	if sub.IsReserves() {
		return apperrors.ErrSubAccountReserved
	}

	var total float64
	if err := s.db.Model(&models.MonthlyAllocation{}).
		Select("COALESCE(SUM(current), 0)").
		Where("sub_account_id = ?", id).
		Scan(&total).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if total != 0 {
		return apperrors.ErrSubAccountHasBalance
	}

	var transferCount int64
	if err := s.db.Model(&models.Transfer{}).
		Where("origin_id = ? OR destination_id = ?", id, id).
		Count(&transferCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transferCount > 0 {
		return apperrors.ErrSubAccountInUse
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sub_account_id = ?", id).Delete(&models.MonthlyAllocation{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("sub_account_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(sub).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// EnsureReserves creates the "Sistema" account and its "Reservas"
// sub-account if absent and returns the reserves sub-account. Called at
// startup and before each sweep.
func (s *accountService) EnsureReserves() (*models.SubAccount, error) {
	account := &models.Account{Name: models.SystemAccountName}
	if err := s.db.Where("name = ?", models.SystemAccountName).FirstOrCreate(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sub := &models.SubAccount{Name: models.ReservesSubAccountName, AccountID: account.ID}
	if err := s.db.Where("name = ? AND account_id = ?", models.ReservesSubAccountName, account.ID).
		FirstOrCreate(sub).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sub.Account = *account
	return sub, nil
}
