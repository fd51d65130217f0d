package notification

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingNotifier struct {
	mu       sync.Mutex
	received []string
	err      error
	started  chan struct{}
	release  chan struct{}
}

func (r *recordingNotifier) NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, account.ID+":"+message)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

type countingRecorder struct {
	n atomic.Int32
}

func (c *countingRecorder) RecordNotificationFailure() { c.n.Add(1) }

func TestDispatcher_DeliversEverythingBeforeClose(t *testing.T) {
	next := &recordingNotifier{}
	d := NewDispatcher(next, DispatcherConfig{Buffer: 100, Workers: 4}, nil, nil)

	acc := models.NewAccount("A", decimal.Zero)
	for range 50 {
		require.NoError(t, d.NotifyAboutTransfer(context.Background(), acc, "m"))
	}
	require.NoError(t, d.Close())

	assert.Equal(t, 50, next.count())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	next := &recordingNotifier{
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(next, DispatcherConfig{Buffer: 1, Workers: 1}, nil, zap.New(core))
	ctx := context.Background()
	acc := models.NewAccount("A", decimal.Zero)

	// The single worker picks up the first job and blocks; the second fills the buffer.
	require.NoError(t, d.NotifyAboutTransfer(ctx, acc, "1"))
	select {
	case <-next.started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never started")
	}
	require.NoError(t, d.NotifyAboutTransfer(ctx, acc, "2"))

	err := d.NotifyAboutTransfer(ctx, acc, "3")
	assert.ErrorIs(t, err, ErrQueueFull)
	// Reporting the drop is left to the caller.
	assert.Zero(t, logs.Len())

	close(next.release)
	require.NoError(t, d.Close())
	assert.Equal(t, 2, next.count())
}

func TestDispatcher_RecordsDeliveryFailures(t *testing.T) {
	next := &recordingNotifier{err: errors.New("broker down")}
	failures := &countingRecorder{}
	core, logs := observer.New(zapcore.WarnLevel)
	d := NewDispatcher(next, DispatcherConfig{Buffer: 10, Workers: 2}, failures, zap.New(core))

	acc := models.NewAccount("A", decimal.Zero)
	for range 3 {
		require.NoError(t, d.NotifyAboutTransfer(context.Background(), acc, "m"))
	}
	require.NoError(t, d.Close())

	assert.Equal(t, int32(3), failures.n.Load())
	assert.Equal(t, 3, logs.FilterMessage("failed to deliver transfer notification").Len())
}

func TestDispatcher_CopiesAccount(t *testing.T) {
	next := &recordingNotifier{}
	d := NewDispatcher(next, DispatcherConfig{Buffer: 1, Workers: 1}, nil, nil)

	acc := models.NewAccount("A", decimal.Zero)
	require.NoError(t, d.NotifyAboutTransfer(context.Background(), acc, "m"))
	acc.ID = "mutated"
	require.NoError(t, d.Close())

	assert.Equal(t, []string{"A:m"}, next.received)
}

func TestDispatcher_Closed(t *testing.T) {
	d := NewDispatcher(&recordingNotifier{}, DispatcherConfig{}, nil, nil)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	err := d.NotifyAboutTransfer(context.Background(), models.NewAccount("A", decimal.Zero), "m")
	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

func TestDispatcher_ContextCancellationDoesNotAbortDelivery(t *testing.T) {
	var sawErr atomic.Bool
	next := notifierFunc(func(ctx context.Context, _ *models.Account, _ string) error {
		sawErr.Store(ctx.Err() != nil)
		return nil
	})
	d := NewDispatcher(next, DispatcherConfig{Buffer: 1, Workers: 1}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.NotifyAboutTransfer(ctx, models.NewAccount("A", decimal.Zero), "m"))
	cancel()
	require.NoError(t, d.Close())

	assert.False(t, sawErr.Load())
}

type notifierFunc func(ctx context.Context, account *models.Account, message string) error

func (f notifierFunc) NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error {
	return f(ctx, account, message)
}
