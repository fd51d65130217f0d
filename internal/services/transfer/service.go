package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "ledger/internal/errors"
	"ledger/internal/logging"
	"ledger/internal/models"
	"ledger/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// service implements the transfer Service interface.
type service struct {
	store    AccountStore
	notifier Notifier
	config   Config
	metrics  MetricsCollector
	logger   *zap.Logger
}

// NewService creates a new transfer service instance.
func NewService(
	store AccountStore,
	notifier Notifier,
	config Config,
	metrics MetricsCollector,
	logger *zap.Logger,
) Service {
	if store == nil {
		panic("store is required")
	}
	if notifier == nil {
		panic("notifier is required")
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:    store,
		notifier: notifier,
		config:   config,
		metrics:  metrics,
		logger:   logging.OrNop(logger),
	}
}

// Transfer moves req.Amount from req.FromAccountID to req.ToAccountID. Either both
// balances change by exactly the amount or neither does. Ids are trimmed as on creation.
func (s *service) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	req.FromAccountID = strings.TrimSpace(req.FromAccountID)
	req.ToAccountID = strings.TrimSpace(req.ToAccountID)

	start := time.Now()
	receipt, err := s.transfer(ctx, req)
	s.metrics.RecordTransfer(resultLabel(err), req.Amount, time.Since(start))
	return receipt, err
}

func (s *service) transfer(ctx context.Context, req models.TransferRequest) (*models.TransferReceipt, error) {
	reference := uuid.NewString()
	log := s.logger.With(
		zap.String("reference", reference),
		zap.String("from", req.FromAccountID),
		zap.String("to", req.ToAccountID),
		zap.Stringer("amount", req.Amount),
	)
	trace(log, StateReceived)

	lockCtx, cancel := s.lockContext(ctx)
	defer cancel()

	// Optimistic pre-check without holding both locks; the result is confirmed under lock.
	trace(log, StateValidating)
	if err := s.precheck(lockCtx, req); err != nil {
		return nil, s.reject(log, err)
	}

	fromHandle, err := s.store.Handle(req.FromAccountID)
	if err != nil {
		return nil, s.reject(log, err)
	}
	toHandle, err := s.store.Handle(req.ToAccountID)
	if err != nil {
		return nil, s.reject(log, err)
	}

	unlock, err := s.lockPair(lockCtx, fromHandle, toHandle)
	if err != nil {
		return nil, s.reject(log, err)
	}
	from, to, err := func() (*models.Account, *models.Account, error) {
		defer unlock()
		trace(log, StateLocksAcquired)
		return commit(log, fromHandle.Account(), toHandle.Account(), req.Amount)
	}()
	if err != nil {
		return nil, s.reject(log, err)
	}
	trace(log, StateCommitted)
	log.Info("transfer committed",
		zap.Stringer("from_balance", from.Balance),
		zap.Stringer("to_balance", to.Balance),
	)

	trace(log, StateNotifying)
	s.notify(ctx, log, from, fmt.Sprintf("The amount of %s for transfer request account number: %s is completed.", req.Amount, to.ID))
	s.notify(ctx, log, to, fmt.Sprintf("The amount of %s to account with the account with ID %s is completed.", req.Amount, from.ID))
	trace(log, StateDone)

	return &models.TransferReceipt{
		Reference:   reference,
		From:        from,
		To:          to,
		Amount:      req.Amount,
		State:       string(StateDone),
		CompletedAt: time.Now().UTC(),
	}, nil
}

// precheck runs the validator against snapshots of both accounts.
func (s *service) precheck(ctx context.Context, req models.TransferRequest) error {
	if !req.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}
	from, err := s.lookup(ctx, req.FromAccountID)
	if err != nil {
		return err
	}
	to, err := s.lookup(ctx, req.ToAccountID)
	if err != nil {
		return err
	}
	return Validate(from, to, req.Amount)
}

// lookup returns nil without error for a missing account so the validator decides.
func (s *service) lookup(ctx context.Context, id string) (*models.Account, error) {
	acc, err := s.store.Get(ctx, id)
	if errors.Is(err, apperrors.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, lockError(err)
	}
	return acc, nil
}

// lockContext bounds every lock wait of one transfer by the configured timeout.
func (s *service) lockContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.config.LockTimeout > 0 {
		return context.WithTimeout(ctx, s.config.LockTimeout)
	}
	return context.WithCancel(ctx)
}

// lockPair acquires both account locks in id order, whatever the transfer direction.
// On failure no lock is left held.
func (s *service) lockPair(ctx context.Context, a, b *repositories.AccountHandle) (func(), error) {
	first, second := lockOrder(a, b)
	waitStart := time.Now()
	if err := first.Lock(ctx); err != nil {
		return nil, lockError(err)
	}
	if err := second.Lock(ctx); err != nil {
		first.Unlock()
		return nil, lockError(err)
	}
	s.metrics.RecordLockWait(time.Since(waitStart))

	return func() {
		second.Unlock()
		first.Unlock()
	}, nil
}

func lockOrder(a, b *repositories.AccountHandle) (*repositories.AccountHandle, *repositories.AccountHandle) {
	if b.ID() < a.ID() {
		return b, a
	}
	return a, b
}

func lockError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", apperrors.ErrTimeout, err)
	}
	return err
}

// commit re-validates the live accounts and applies the debit and credit. Callers must
// hold both locks. Once validation passes neither step can fail.
func commit(log *zap.Logger, from, to *models.Account, amount decimal.Decimal) (*models.Account, *models.Account, error) {
	if err := Validate(from, to, amount); err != nil {
		return nil, nil, err
	}

	trace(log, StateCommitting)
	from.Balance = from.Balance.Sub(amount)
	to.Balance = to.Balance.Add(amount)

	if from.Balance.IsNegative() {
		panic(fmt.Sprintf("account %s went negative after a validated debit", from.ID))
	}
	return from.Clone(), to.Clone(), nil
}

// notify is best-effort: failures are logged and counted, never returned.
func (s *service) notify(ctx context.Context, log *zap.Logger, account *models.Account, message string) {
	if err := s.notifier.NotifyAboutTransfer(context.WithoutCancel(ctx), account, message); err != nil {
		s.metrics.RecordNotificationFailure()
		log.Warn("failed to send transfer notification",
			zap.String("account_id", account.ID),
			zap.Error(err),
		)
	}
}

func (s *service) reject(log *zap.Logger, err error) error {
	trace(log, StateRejected)
	log.Warn("transfer rejected", zap.Error(err))
	return err
}

func trace(log *zap.Logger, state State) {
	log.Debug("transfer state", zap.String("state", string(state)))
}
