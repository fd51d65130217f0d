package models

import "github.com/shopspring/decimal"

// Account is a named ledger account. ID is immutable once created.
type Account struct {
	ID      string          `json:"accountId"`
	Balance decimal.Decimal `json:"balance"`
}

// NewAccount returns an account with the given id and opening balance.
func NewAccount(id string, balance decimal.Decimal) *Account {
	return &Account{ID: id, Balance: balance}
}

// Clone returns a detached copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
