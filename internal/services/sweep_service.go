package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "fincontrol/internal/errors"
	"fincontrol/internal/logger"
	"fincontrol/internal/models"
	"fincontrol/internal/monthkey"
)

// sweepService closes out finished months by transferring each
// sub-account's leftover balance into the reserves sub-account.
type sweepService struct {
	db             *gorm.DB
	accountService AccountServicer
	ledgerService  LedgerServicer
}

// NewSweepService creates a new SweepServicer.
func NewSweepService(db *gorm.DB, accountService AccountServicer, ledgerService LedgerServicer) SweepServicer {
	return &sweepService{
		db:             db,
		accountService: accountService,
		ledgerService:  ledgerService,
	}
}

// CloseOutMonth compares the current month with the persisted last
// observed month. When the month has turned, every positive leftover
// balance of the last observed month (except reserves itself) is
// transferred into reserves, and the stored month advances — all in one
// transaction, so a crash or restart never sweeps the same month twice.
// Returns the number of transfers performed.
func (s *sweepService) CloseOutMonth(now time.Time) (int, error) {
	reserves, err := s.accountService.EnsureReserves()
	if err != nil {
		return 0, err
	}

	nowKey := monthkey.FromTime(now).String()
	today := monthkey.FormatDate(now)

	swept := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var state models.SweepState
		err := tx.First(&state).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First run: seed the observed month, nothing to sweep yet.
			state = models.SweepState{LastMonth: nowKey}
			if err := tx.Create(&state).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return nil
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if state.LastMonth == nowKey {
			return nil
		}
		closedMonth := state.LastMonth

		var leftovers []models.MonthlyAllocation
		if err := tx.
			Where("month_key = ? AND current > 0", closedMonth).
			Where("sub_account_id <> ?", reserves.ID).
			Order("sub_account_id").
			Find(&leftovers).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		for _, leftover := range leftovers {
			justification := fmt.Sprintf("Sobra automática de %s", closedMonth)
			if _, err := s.ledgerService.RecordTransferTx(tx,
				today, leftover.SubAccountID, reserves.ID, leftover.Current,
				justification, closedMonth); err != nil {
				return err
			}
			swept++
		}

		if err := tx.Model(&state).Update("last_month", nowKey).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if swept > 0 {
			logger.Get().Infow("month closed",
				"closed_month", closedMonth,
				"transfers", swept,
			)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return swept, nil
}
