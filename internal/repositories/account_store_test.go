package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "ledger/internal/errors"
	"ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccountStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	acc := models.NewAccount("uid-111", dec("1110"))
	require.NoError(t, store.Create(ctx, acc))

	got, err := store.Get(ctx, "uid-111")
	require.NoError(t, err)
	assert.Equal(t, "uid-111", got.ID)
	assert.True(t, got.Balance.Equal(dec("1110")))

	// The store keeps its own copy.
	acc.Balance = decimal.Zero
	got.Balance = decimal.Zero
	again, err := store.Get(ctx, "uid-111")
	require.NoError(t, err)
	assert.True(t, again.Balance.Equal(dec("1110")))
}

func TestAccountStore_GetMissing(t *testing.T) {
	store := NewAccountStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	_, err = store.Handle("nope")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestAccountStore_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	require.NoError(t, store.Create(ctx, models.NewAccount("A", dec("1000.00"))))

	err := store.Create(ctx, models.NewAccount("A", dec("5")))
	require.ErrorIs(t, err, apperrors.ErrDuplicateAccountID)
	assert.Equal(t, "Account id A already exists!", err.Error())

	got, err := store.Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("1000.00")))
}

func TestAccountStore_CreateNil(t *testing.T) {
	assert.Error(t, NewAccountStore().Create(context.Background(), nil))
}

func TestAccountStore_ConcurrentCreateSameID(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()

	const n = 64
	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			err := store.Create(ctx, models.NewAccount("shared", decimal.NewFromInt(int64(i))))
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, apperrors.ErrDuplicateAccountID):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dup.Load())
}

func TestAccountStore_ListSortedByID(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Create(ctx, models.NewAccount(id, dec("1"))))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestAccountStore_TotalBalance(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	for i, bal := range []string{"880.55", "256.88", "0.57"} {
		require.NoError(t, store.Create(ctx, models.NewAccount(fmt.Sprintf("acc-%d", i), dec(bal))))
	}

	total, err := store.TotalBalance(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("1138.00")), total.String())
}

func TestAccountStore_GetWaitsForAccountLock(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	require.NoError(t, store.Create(ctx, models.NewAccount("A", dec("10"))))

	h, err := store.Handle("A")
	require.NoError(t, err)
	require.NoError(t, h.Lock(ctx))

	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = store.Get(tctx, "A")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, err = store.TotalBalance(tctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	h.Unlock()
	got, err := store.Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("10")))
}

func TestAccountStore_TotalBalanceReleasesPartialLocks(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	require.NoError(t, store.Create(ctx, models.NewAccount("A", dec("1"))))
	require.NoError(t, store.Create(ctx, models.NewAccount("B", dec("1"))))

	hb, err := store.Handle("B")
	require.NoError(t, err)
	require.NoError(t, hb.Lock(ctx))

	tctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = store.TotalBalance(tctx)
	require.Error(t, err)
	hb.Unlock()

	// A must have been released again.
	ha, err := store.Handle("A")
	require.NoError(t, err)
	lctx, lcancel := context.WithTimeout(ctx, time.Second)
	defer lcancel()
	require.NoError(t, ha.Lock(lctx))
	ha.Unlock()
}

func TestAccountStore_CreateDoesNotWaitOnAccountLocks(t *testing.T) {
	ctx := context.Background()
	store := NewAccountStore()
	require.NoError(t, store.Create(ctx, models.NewAccount("A", dec("1"))))

	h, err := store.Handle("A")
	require.NoError(t, err)
	require.NoError(t, h.Lock(ctx))
	defer h.Unlock()

	done := make(chan error, 1)
	go func() { done <- store.Create(ctx, models.NewAccount("B", dec("1"))) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("create blocked on an unrelated account lock")
	}
}
