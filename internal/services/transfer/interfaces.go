package transfer

import (
	"context"
	"time"

	"ledger/internal/models"
	"ledger/internal/repositories"

	"github.com/shopspring/decimal"
)

// AccountStore is the account storage used by the transfer engine.
type AccountStore interface {
	Get(ctx context.Context, id string) (*models.Account, error)
	Handle(id string) (*repositories.AccountHandle, error)
}

// Notifier is used to notify account holders about completed transfers.
type Notifier interface {
	NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error
}

// MetricsCollector defines the interface for collecting transfer metrics
type MetricsCollector interface {
	RecordTransfer(result string, amount decimal.Decimal, duration time.Duration)
	RecordLockWait(duration time.Duration)
	RecordNotificationFailure()
}

// Service moves funds between two accounts.
type Service interface {
	Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error)
}
