package repository

import (
	"context"
	"errors"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error.
// Rolling back an already committed transaction is not an error.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, domain.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// WithPlayerTx runs fn inside a unit of work on playerID and commits if fn succeeds.
// The unit of work is always released.
func WithPlayerTx(ctx context.Context, repo Player, playerID int64, fn func(tx PlayerTx) error) error {
	tx, err := repo.BeginTx(ctx, playerID)
	if err != nil {
		return err
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
