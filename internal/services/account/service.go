package account

import (
	"context"
	"strings"

	apperrors "ledger/internal/errors"
	"ledger/internal/logging"
	"ledger/internal/models"
	"ledger/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReservedIDs cannot be used as account ids because GET /v1/accounts/<id> would resolve
// to a fixed route instead.
var ReservedIDs = map[string]struct{}{
	"total": {},
}

type Service interface {
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]*models.Account, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

type service struct {
	repo   repositories.AccountRepository
	logger *zap.Logger
}

func NewService(repo repositories.AccountRepository, logger *zap.Logger) Service {
	if repo == nil {
		panic("account repository is required")
	}
	return &service{
		repo:   repo,
		logger: logging.OrNop(logger),
	}
}

// CreateAccount validates and stores a new account. The id is trimmed before use.
func (s *service) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account == nil {
		return nil, apperrors.ErrInvalidAccountID
	}

	id := strings.TrimSpace(account.ID)
	if id == "" {
		return nil, apperrors.ErrInvalidAccountID
	}
	if _, ok := ReservedIDs[id]; ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidAccountID, "account id %s is reserved", id)
	}
	if account.Balance.IsNegative() {
		return nil, apperrors.Wrap(apperrors.ErrNegativeInitialBalance, "initial balance must not be negative, got %s", account.Balance)
	}

	created := models.NewAccount(id, account.Balance)
	if err := s.repo.Create(ctx, created); err != nil {
		s.logger.Warn("account creation rejected", zap.String("account_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("account_id", id),
		zap.Stringer("balance", created.Balance),
	)
	return created.Clone(), nil
}

func (s *service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

func (s *service) ListAccounts(ctx context.Context) ([]*models.Account, error) {
	return s.repo.List(ctx)
}

func (s *service) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.TotalBalance(ctx)
}
