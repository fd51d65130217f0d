package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from one account to another.
type TransferRequest struct {
	FromAccountID string          `json:"accountFrom"`
	ToAccountID   string          `json:"accountTo"`
	Amount        decimal.Decimal `json:"transferAmount"`
}

// TransferReceipt describes a committed transfer. From and To are snapshots taken
// right after the balances were updated.
type TransferReceipt struct {
	Reference   string          `json:"reference"`
	From        *Account        `json:"from"`
	To          *Account        `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	State       string          `json:"state"`
	CompletedAt time.Time       `json:"completedAt"`
}
