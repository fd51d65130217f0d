package transfer

import (
	apperrors "ledger/internal/errors"
	"ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Validate checks the preconditions of a transfer and returns the first one that fails:
// amount, existence of both accounts, distinct accounts, then the source balance.
// It has no side effects.
func Validate(from, to *models.Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	if from == nil || to == nil {
		return apperrors.ErrAccountNotFound
	}
	if from.ID == to.ID {
		return apperrors.ErrSameAccountTransfer
	}
	if from.Balance.LessThan(amount) {
		return apperrors.ErrInsufficientBalance
	}
	return nil
}
