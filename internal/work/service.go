// Package work grants randomized wages.
package work

import (
	"context"
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/economy"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/repository"
	"github.com/osse101/NiltersBot_Go/internal/utils"
)

const opGrant = "work_grant"

// Flavors are cosmetic job labels; they never change the reward.
var Flavors = []string{"Miner", "Shopkeeper", "Guard", "Courier"}

// Service defines the interface for work operations
type Service interface {
	Grant(ctx context.Context, playerID int64) (*domain.EarningReceipt, error)
}

type service struct {
	repo    repository.Player
	randInt func(min, max int) int // inclusive
}

// NewService creates a new work service. A nil randInt uses the process RNG.
func NewService(repo repository.Player, randInt func(min, max int) int) Service {
	if randInt == nil {
		randInt = utils.RandomInt
	}
	return &service{repo: repo, randInt: randInt}
}

func (s *service) Grant(ctx context.Context, playerID int64) (*domain.EarningReceipt, error) {
	log := logger.FromContext(ctx)
	log.Info("Grant called", "player_id", playerID)

	if playerID <= 0 {
		return nil, fmt.Errorf("invalid player id %d: %w", playerID, domain.ErrInvalidInput)
	}

	receipt := domain.EarningReceipt{
		Amount: s.randInt(domain.WorkMinReward, domain.WorkMaxReward),
		Flavor: Flavors[s.randInt(0, len(Flavors)-1)],
	}

	err := repository.WithPlayerTx(ctx, s.repo, playerID, func(tx repository.PlayerTx) error {
		balance, err := economy.ApplyCredit(ctx, tx, receipt.Amount)
		if err != nil {
			return err
		}
		receipt.NewBalance = balance
		return nil
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			log.Error("Work grant failed", "player_id", playerID, "error", err)
			metrics.RecordStoreError(opGrant, err)
		}
		return nil, err
	}

	metrics.MoneyEarned.WithLabelValues(metrics.SourceWork).Add(float64(receipt.Amount))
	log.Info("Work granted", "player_id", playerID, "amount", receipt.Amount, "flavor", receipt.Flavor)
	return &receipt, nil
}
