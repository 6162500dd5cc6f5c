// Package battle resolves fights against catalog bosses.
package battle

import (
	"context"
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/economy"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/repository"
	"github.com/osse101/NiltersBot_Go/internal/utils"
)

const opResolve = "battle_resolve"

// Service defines the interface for battle operations
type Service interface {
	Resolve(ctx context.Context, playerID int64, bossKey string) (*domain.BattleOutcome, error)
}

type service struct {
	repo    repository.Player
	catalog *catalog.Catalog
	rnd     func() float64 // uniform in [0, 1)
}

// NewService creates a new battle service. A nil rnd uses the process RNG.
func NewService(repo repository.Player, cat *catalog.Catalog, rnd func() float64) Service {
	if rnd == nil {
		rnd = utils.RandomFloat
	}
	return &service{
		repo:    repo,
		catalog: cat,
		rnd:     rnd,
	}
}

// Decide maps a draw in [0, 1) to a result; draws above the threshold win.
func Decide(r float64) domain.BattleResult {
	if r > domain.BattleWinThreshold {
		return domain.BattleWin
	}
	return domain.BattleLoss
}

// Resolve draws once and applies the reward or the floored penalty in the
// player's unit of work. On any failure the balance is left as it was.
func (s *service) Resolve(ctx context.Context, playerID int64, bossKey string) (*domain.BattleOutcome, error) {
	log := logger.FromContext(ctx)
	log.Info("Resolve called", "player_id", playerID, "boss", bossKey)

	if playerID <= 0 {
		return nil, fmt.Errorf("invalid player id %d: %w", playerID, domain.ErrInvalidInput)
	}

	boss, ok := s.catalog.Boss(bossKey)
	if !ok {
		return nil, fmt.Errorf("%q: %w", bossKey, domain.ErrUnknownBoss)
	}

	outcome := domain.BattleOutcome{BossKey: boss.Key, BossName: boss.Name}
	err := repository.WithPlayerTx(ctx, s.repo, playerID, func(tx repository.PlayerTx) error {
		outcome.Roll = s.rnd()
		outcome.Result = Decide(outcome.Roll)

		if outcome.Result == domain.BattleWin {
			balance, err := economy.ApplyCredit(ctx, tx, boss.Reward)
			if err != nil {
				return err
			}
			outcome.Delta = boss.Reward
			outcome.NewBalance = balance
			return nil
		}

		applied, balance, err := economy.ApplyFlooredDebit(ctx, tx, domain.BattleLossPenalty)
		if err != nil {
			return err
		}
		outcome.Delta = -applied
		outcome.NewBalance = balance
		return nil
	})
	if err != nil {
		if !domain.IsBusinessError(err) {
			log.Error("Battle failed", "player_id", playerID, "boss", boss.Key, "error", err)
			metrics.RecordStoreError(opResolve, err)
		}
		return nil, err
	}

	metrics.BattlesResolved.WithLabelValues(boss.Key, string(outcome.Result)).Inc()
	if outcome.Delta > 0 {
		metrics.MoneyEarned.WithLabelValues(metrics.SourceBattle).Add(float64(outcome.Delta))
	} else if outcome.Delta < 0 {
		metrics.MoneySpent.WithLabelValues(metrics.SourcePenalty).Add(float64(-outcome.Delta))
	}

	log.Info("Battle resolved", "player_id", playerID, "boss", boss.Key,
		"result", outcome.Result, "delta", outcome.Delta, "new_balance", outcome.NewBalance)
	return &outcome, nil
}
