// Package leaderboard is the read-only ranked view of players by balance.
package leaderboard

import (
	"context"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

const opTop = "leaderboard_top"

// Service defines the interface for leaderboard queries
type Service interface {
	// Top returns exactly min(n, players) entries by coins descending; ties go
	// to the earliest registration, then the lower id. n == 0 yields an empty
	// slice and n < 0 is ErrInvalidInput.
	Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	repo repository.Player
}

// NewService creates a new leaderboard service
func NewService(repo repository.Player) Service {
	return &service{repo: repo}
}

func (s *service) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	log := logger.FromContext(ctx)
	log.Info("Top called", "n", n)

	if n < 0 {
		return nil, domain.ErrInvalidInput
	}
	if n == 0 {
		return []domain.LeaderboardEntry{}, nil
	}

	entries, err := s.repo.TopPlayers(ctx, n)
	if err != nil {
		log.Error("Failed to load leaderboard", "error", err)
		metrics.RecordStoreError(opTop, err)
		return nil, err
	}
	return entries, nil
}

// Limit resolves a caller-facing row count: requested <= 0 takes defaultSize
// (or DefaultLeaderboardSize when that is unset too), and the result never
// exceeds MaxLeaderboardSize.
func Limit(requested, defaultSize int) int {
	if requested <= 0 {
		requested = defaultSize
	}
	if requested <= 0 {
		requested = domain.DefaultLeaderboardSize
	}
	return min(requested, domain.MaxLeaderboardSize)
}
