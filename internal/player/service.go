// Package player is the registry: get-or-create onboarding and read views of a player.
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/naming"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// Service defines the interface for player registry operations
type Service interface {
	// Ensure registers playerID on first contact; created reports whether it did.
	// An existing player is returned unchanged, whatever displayName is passed.
	Ensure(ctx context.Context, playerID int64, displayName string) (player *domain.Player, created bool, err error)
	GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error)
	GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error)
}

type service struct {
	repo repository.Player
	now  func() time.Time
}

// NewService creates a new player service
func NewService(repo repository.Player) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *service) Ensure(ctx context.Context, playerID int64, displayName string) (*domain.Player, bool, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgEnsureCalled, "player_id", playerID)

	if err := validatePlayerID(playerID); err != nil {
		return nil, false, err
	}

	np := domain.NewPlayer{
		ID:          playerID,
		DisplayName: naming.DisplayName(playerID, displayName),
		Coins:       domain.StartingCoins,
		Level:       domain.StartingLevel,
		Health:      domain.StartingHealth,
		CreatedAt:   s.now().UTC(),
	}

	player, created, err := s.repo.EnsurePlayer(ctx, np, domain.StarterItemName)
	if err != nil {
		log.Error(LogErrEnsureFailed, "player_id", playerID, "error", err)
		metrics.RecordStoreError(OpEnsure, err)
		return nil, false, err
	}

	if created {
		metrics.PlayersRegistered.Inc()
		log.Info(LogMsgPlayerRegistered, "player_id", playerID, "display_name", player.DisplayName)
	}
	return player, created, nil
}

func (s *service) GetProfile(ctx context.Context, playerID int64) (*domain.Profile, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgGetProfileCalled, "player_id", playerID)

	player, err := s.load(ctx, OpProfile, playerID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountInventory(ctx, playerID)
	if err != nil {
		log.Error(LogErrLoadFailed, "player_id", playerID, "error", err)
		metrics.RecordStoreError(OpProfile, err)
		return nil, err
	}

	return &domain.Profile{Player: *player, ItemCount: count}, nil
}

// GetInventory lists entries oldest first. Unregistered players get ErrPlayerNotFound.
func (s *service) GetInventory(ctx context.Context, playerID int64) ([]domain.InventoryEntry, error) {
	if _, err := s.load(ctx, OpInventory, playerID); err != nil {
		return nil, err
	}

	entries, err := s.repo.GetInventory(ctx, playerID)
	if err != nil {
		logger.FromContext(ctx).Error(LogErrLoadFailed, "player_id", playerID, "error", err)
		metrics.RecordStoreError(OpInventory, err)
		return nil, err
	}
	return entries, nil
}

func (s *service) load(ctx context.Context, op string, playerID int64) (*domain.Player, error) {
	if err := validatePlayerID(playerID); err != nil {
		return nil, err
	}

	player, err := s.repo.GetPlayer(ctx, playerID)
	if err != nil {
		if !domain.IsBusinessError(err) {
			logger.FromContext(ctx).Error(LogErrLoadFailed, "player_id", playerID, "error", err)
			metrics.RecordStoreError(op, err)
		}
		return nil, err
	}
	return player, nil
}

func validatePlayerID(playerID int64) error {
	if playerID <= 0 {
		return fmt.Errorf("invalid player id %d: %w", playerID, domain.ErrInvalidInput)
	}
	return nil
}
