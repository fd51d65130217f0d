// Package notification delivers transfer notifications to account holders.
package notification

import (
	"context"
	"time"

	"ledger/internal/logging"
	"ledger/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Notifier sends a message about a completed transfer to the holder of account.
type Notifier interface {
	NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error
}

// FailureRecorder counts notifications that could not be delivered.
type FailureRecorder interface {
	RecordNotificationFailure()
}

// Notification is the payload published by the broker-backed notifiers.
type Notification struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	Message   string          `json:"message"`
	SentAt    time.Time       `json:"sent_at"`
}

func newNotification(account *models.Account, message string) Notification {
	return Notification{
		AccountID: account.ID,
		Balance:   account.Balance,
		Message:   message,
		SentAt:    time.Now().UTC(),
	}
}

// LogNotifier is a minimal notifier that writes each notification to the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logging.OrNop(logger)}
}

// NotifyAboutTransfer logs the notification.
func (n *LogNotifier) NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error {
	n.logger.Info("transfer notification",
		zap.String("account_id", account.ID),
		zap.Stringer("balance", account.Balance),
		zap.String("message", message),
	)
	return nil
}
