package repositories

import (
	"context"

	"ledger/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the operations of the account store.
type AccountRepository interface {
	// Create inserts the account; it fails with ErrDuplicateAccountID when the id is taken.
	Create(ctx context.Context, account *models.Account) error
	// Get returns a lock-protected snapshot of the account.
	Get(ctx context.Context, id string) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	// TotalBalance sums every balance while holding all account locks.
	TotalBalance(ctx context.Context) (decimal.Decimal, error)

	// Handle exposes the account's lock-table entry for callers that mutate balances.
	Handle(id string) (*AccountHandle, error)
}
