package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/logger"
	"github.com/osse101/NiltersBot_Go/internal/metrics"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// Purchase debits the item's price and appends one inventory entry named by
// the catalog key. Both writes commit together or not at all.
func (s *service) Purchase(ctx context.Context, playerID int64, itemKey string) (*domain.PurchaseReceipt, error) {
	log := logger.FromContext(ctx)
	log.Info("Purchase called", "player_id", playerID, "item", itemKey)

	if err := validatePlayerID(playerID); err != nil {
		return nil, err
	}

	item, ok := s.catalog.Item(itemKey)
	if !ok {
		return nil, fmt.Errorf(ErrMsgUnknownItemFmt, itemKey, domain.ErrUnknownItem)
	}

	var receipt domain.PurchaseReceipt
	err := repository.WithPlayerTx(ctx, s.repo, playerID, func(tx repository.PlayerTx) error {
		newBalance, err := ApplyDebit(ctx, tx, item.Price)
		if err != nil {
			return err
		}

		entry, err := tx.AddInventory(ctx, item.Key, 1)
		if err != nil {
			return fmt.Errorf(ErrMsgAppendInventoryFmt, err)
		}

		receipt = domain.PurchaseReceipt{
			ItemName:     item.Key,
			Label:        item.Name,
			PriceDebited: item.Price,
			NewBalance:   newBalance,
			EntryID:      entry.ID,
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			metrics.PurchasesRejected.WithLabelValues(item.Key).Inc()
			log.Info("Purchase rejected", "player_id", playerID, "item", item.Key, "reason", err)
		case !domain.IsBusinessError(err):
			log.Error("Purchase failed", "player_id", playerID, "item", item.Key, "error", err)
			metrics.RecordStoreError(OpPurchase, err)
		}
		return nil, err
	}

	metrics.ItemsBought.WithLabelValues(item.Key).Inc()
	metrics.MoneySpent.WithLabelValues(metrics.SourceShop).Add(float64(item.Price))
	log.Info("Purchase completed", "player_id", playerID, "item", item.Key, "new_balance", receipt.NewBalance)

	return &receipt, nil
}
