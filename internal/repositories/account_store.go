package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/semaphore"
)

var _ AccountRepository = (*AccountStore)(nil)

// AccountHandle is an account together with its lock. The lock is created once with the
// account and shared by every caller, so concurrent transfers contend on the same object.
type AccountHandle struct {
	account *models.Account
	lock    *semaphore.Weighted
}

// ID returns the account id. It never changes, so no lock is needed.
func (h *AccountHandle) ID() string {
	return h.account.ID
}

// Lock blocks until the account lock is held or ctx is done.
func (h *AccountHandle) Lock(ctx context.Context) error {
	return h.lock.Acquire(ctx, 1)
}

// Unlock releases the account lock.
func (h *AccountHandle) Unlock() {
	h.lock.Release(1)
}

// Account returns the live account. Only valid while the lock is held.
func (h *AccountHandle) Account() *models.Account {
	return h.account
}

// Snapshot copies the account under its lock.
func (h *AccountHandle) Snapshot(ctx context.Context) (*models.Account, error) {
	if err := h.Lock(ctx); err != nil {
		return nil, err
	}
	defer h.Unlock()
	return h.account.Clone(), nil
}

// AccountStore provides in-memory storage for accounts. mu guards only the map structure;
// balances are guarded by each account's own lock.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*AccountHandle
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*AccountHandle),
	}
}

// Create adds a new account. The existence check and the insert happen under one write lock.
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	if account == nil {
		return fmt.Errorf("account cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return apperrors.Wrap(apperrors.ErrDuplicateAccountID, "Account id %s already exists!", account.ID)
	}
	s.accounts[account.ID] = &AccountHandle{
		account: account.Clone(),
		lock:    semaphore.NewWeighted(1),
	}
	return nil
}

// Handle returns the lock-table entry of an account.
func (s *AccountStore) Handle(id string) (*AccountHandle, error) {
	s.mu.RLock()
	h, ok := s.accounts[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return h, nil
}

// Get retrieves a consistent copy of an account.
func (s *AccountStore) Get(ctx context.Context, id string) (*models.Account, error) {
	h, err := s.Handle(id)
	if err != nil {
		return nil, err
	}
	return h.Snapshot(ctx)
}

// List returns copies of all accounts ordered by id.
func (s *AccountStore) List(ctx context.Context) ([]*models.Account, error) {
	handles := s.sortedHandles()

	list := make([]*models.Account, 0, len(handles))
	for _, h := range handles {
		acc, err := h.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		list = append(list, acc)
	}
	return list, nil
}

// TotalBalance locks every account in id order, the same order transfers use, and sums
// the balances. Accounts created while it runs are not included.
func (s *AccountStore) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	handles := s.sortedHandles()

	locked := 0
	defer func() {
		for i := locked - 1; i >= 0; i-- {
			handles[i].Unlock()
		}
	}()

	for _, h := range handles {
		if err := h.Lock(ctx); err != nil {
			return decimal.Zero, err
		}
		locked++
	}

	total := decimal.Zero
	for _, h := range handles {
		total = total.Add(h.account.Balance)
	}
	return total, nil
}

func (s *AccountStore) sortedHandles() []*AccountHandle {
	s.mu.RLock()
	handles := make([]*AccountHandle, 0, len(s.accounts))
	for _, h := range s.accounts {
		handles = append(handles, h)
	}
	s.mu.RUnlock()

	sort.Slice(handles, func(i, j int) bool {
		return handles[i].ID() < handles[j].ID()
	})
	return handles
}
