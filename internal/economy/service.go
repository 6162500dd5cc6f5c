package economy

import (
	"context"
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// Service defines the interface for balance and shop operations.
// Every mutation runs in one unit of work scoped to the player.
type Service interface {
	Balance(ctx context.Context, playerID int64) (int, error)
	Credit(ctx context.Context, playerID int64, amount int) (int, error)
	Debit(ctx context.Context, playerID int64, amount int) (int, error)
	// CreditFloored applies a penalty: the balance drops by amount but not below zero.
	CreditFloored(ctx context.Context, playerID int64, amount int) (int, error)

	Purchase(ctx context.Context, playerID int64, itemKey string) (*domain.PurchaseReceipt, error)
}

type service struct {
	repo    repository.Player
	catalog *catalog.Catalog
}

// NewService creates a new economy service
func NewService(repo repository.Player, cat *catalog.Catalog) Service {
	return &service{
		repo:    repo,
		catalog: cat,
	}
}

func (s *service) Balance(ctx context.Context, playerID int64) (int, error) {
	if err := validatePlayerID(playerID); err != nil {
		return 0, err
	}

	player, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		metrics.RecordStoreError(OpBalance, err)
		return 0, err
	}
	return player.Coins, nil
}

func (s *service) Credit(ctx context.Context, playerID int64, amount int) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("Credit called", "player_id", playerID, "amount", amount)

	balance, err := s.mutate(ctx, OpCredit, playerID, amount, func(tx repository.PlayerTx) (int, error) {
		return ApplyCredit(ctx, tx, amount)
	})
	if err != nil {
		return 0, err
	}

	metrics.MoneyEarned.WithLabelValues(metrics.SourceLedger).Add(float64(amount))
	return balance, nil
}

func (s *service) Debit(ctx context.Context, playerID int64, amount int) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("Debit called", "player_id", playerID, "amount", amount)

	balance, err := s.mutate(ctx, OpDebit, playerID, amount, func(tx repository.PlayerTx) (int, error) {
		return ApplyDebit(ctx, tx, amount)
	})
	if err != nil {
		return 0, err
	}

	metrics.MoneySpent.WithLabelValues(metrics.SourceLedger).Add(float64(amount))
	return balance, nil
}

func (s *service) CreditFloored(ctx context.Context, playerID int64, amount int) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("CreditFloored called", "player_id", playerID, "amount", amount)

	var applied int
	balance, err := s.mutate(ctx, OpCreditFloored, playerID, amount, func(tx repository.PlayerTx) (int, error) {
		var (
			newBalance int
			err        error
		)
		applied, newBalance, err = ApplyFlooredDebit(ctx, tx, amount)
		return newBalance, err
	})
	if err != nil {
		return 0, err
	}

	metrics.MoneySpent.WithLabelValues(metrics.SourcePenalty).Add(float64(applied))
	return balance, nil
}

// mutate validates the request and runs apply in the player's unit of work.
func (s *service) mutate(ctx context.Context, op string, playerID int64, amount int, apply func(tx repository.PlayerTx) (int, error)) (int, error) {
	log := logger.FromContext(ctx)

	if err := validatePlayerID(playerID); err != nil {
		return 0, err
	}
	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	var balance int
	err := repository.WithPlayerTx(ctx, s.repo, playerID, func(tx repository.PlayerTx) error {
		var err error
		balance, err = apply(tx)
		return err
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			log.Error("Ledger operation failed", "operation", op, "player_id", playerID, "error", err)
			metrics.RecordStoreError(op, err)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return balance, nil
}
