// Command stress runs concurrent alternating transfers between two accounts in process
// and checks that the total balance is conserved.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"ledger/internal/config"
	"ledger/internal/logging"
	"ledger/internal/models"
	"ledger/internal/repositories"
	"ledger/internal/services/account"
	"ledger/internal/services/notification"
	"ledger/internal/services/transfer"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	n := config.GetIntEnv("STRESS_TRANSFERS", 1000)
	amount, err := decimal.NewFromString(config.GetEnv("STRESS_AMOUNT", "1.00"))
	if err != nil {
		log.Fatalf("invalid STRESS_AMOUNT: %v", err)
	}
	opening, err := decimal.NewFromString(config.GetEnv("STRESS_OPENING_BALANCE", "1000.00"))
	if err != nil {
		log.Fatalf("invalid STRESS_OPENING_BALANCE: %v", err)
	}

	logger, err := logging.New(cfg.Env, config.GetEnv("LOG_LEVEL", "warn"))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	store := repositories.NewAccountStore()
	accounts := account.NewService(store, logger)
	for _, id := range []string{"A", "B"} {
		if _, err := accounts.CreateAccount(ctx, models.NewAccount(id, opening)); err != nil {
			log.Fatalf("create account %s: %v", id, err)
		}
	}

	dispatcher := notification.NewDispatcher(notification.NewLogNotifier(logger), notification.DispatcherConfig{
		Buffer:  2 * n,
		Workers: cfg.NotifyWorkers,
	}, nil, logger)
	transfers := transfer.NewService(store, dispatcher, transfer.Config{LockTimeout: cfg.LockTimeout}, nil, logger)

	initial, err := accounts.TotalBalance(ctx)
	if err != nil {
		log.Fatalf("total balance: %v", err)
	}
	fmt.Printf("Initial: A=%s, B=%s, total=%s\n", opening.StringFixed(2), opening.StringFixed(2), initial.StringFixed(2))

	var wg sync.WaitGroup
	var failed atomic.Int64
	start := time.Now()

	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			req := models.TransferRequest{FromAccountID: "A", ToAccountID: "B", Amount: amount}
			if i%2 == 1 {
				req.FromAccountID, req.ToAccountID = "B", "A"
			}
			if _, err := transfers.Transfer(ctx, req); err != nil {
				failed.Add(1)
				logger.Warn("transfer error", zap.Int("n", i), zap.Error(err))
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(start)

	if err := dispatcher.Close(); err != nil {
		logger.Error("dispatcher close", zap.Error(err))
	}

	list, err := accounts.ListAccounts(ctx)
	if err != nil {
		log.Fatalf("list accounts: %v", err)
	}
	final, err := accounts.TotalBalance(ctx)
	if err != nil {
		log.Fatalf("total balance: %v", err)
	}

	fmt.Printf("Final: A=%s, B=%s, total=%s\n", list[0].Balance.StringFixed(2), list[1].Balance.StringFixed(2), final.StringFixed(2))
	fmt.Printf("Transfers: %d in %s, %d failed\n", n, elapsed.Round(time.Millisecond), failed.Load())

	ok := final.Equal(initial)
	for _, acc := range list {
		ok = ok && !acc.Balance.IsNegative()
	}
	if !ok {
		fmt.Println("Conservation check: FAILED")
		os.Exit(1)
	}
	fmt.Println("Conservation check: OK")
}
