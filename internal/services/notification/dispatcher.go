package notification

import (
	"context"
	"errors"
	"sync"

	"ledger/internal/logging"
	"ledger/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrQueueFull        = errors.New("notification queue is full")
	ErrDispatcherClosed = errors.New("notification dispatcher is closed")
)

// DispatcherConfig sizes the delivery queue and worker pool.
type DispatcherConfig struct {
	Buffer  int
	Workers int
}

type job struct {
	ctx     context.Context
	account *models.Account
	message string
}

// Dispatcher delivers notifications through next from a fixed pool of workers. Notify
// only enqueues; when the queue is full the notification is dropped and ErrQueueFull is
// returned for the caller to report.
type Dispatcher struct {
	next     Notifier
	failures FailureRecorder
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	group  errgroup.Group
}

// NewDispatcher starts the workers. failures may be nil.
func NewDispatcher(next Notifier, cfg DispatcherConfig, failures FailureRecorder, logger *zap.Logger) *Dispatcher {
	if next == nil {
		panic("notifier is required")
	}
	if cfg.Buffer < 0 {
		cfg.Buffer = 0
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	d := &Dispatcher{
		next:     next,
		failures: failures,
		logger:   logging.OrNop(logger),
		queue:    make(chan job, cfg.Buffer),
	}
	for range cfg.Workers {
		d.group.Go(d.work)
	}
	return d
}

// NotifyAboutTransfer enqueues the notification. The account is copied, so the caller may
// reuse it.
func (d *Dispatcher) NotifyAboutTransfer(ctx context.Context, account *models.Account, message string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), account: account.Clone(), message: message}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting notifications and waits until the queued ones are delivered.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	return d.group.Wait()
}

func (d *Dispatcher) work() error {
	for j := range d.queue {
		if err := d.next.NotifyAboutTransfer(j.ctx, j.account, j.message); err != nil {
			if d.failures != nil {
				d.failures.RecordNotificationFailure()
			}
			d.logger.Warn("failed to deliver transfer notification",
				zap.String("account_id", j.account.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}
