package economy

import (
	"context"
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/domain"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// The Apply functions mutate the balance inside a caller-owned unit of work,
// so other services can combine a ledger change with their own writes.

// ApplyCredit adds amount to the player's balance and returns the new balance.
func ApplyCredit(ctx context.Context, tx repository.PlayerTx, amount int) (int, error) {
	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	balance := tx.Player().Coins
	if balance > domain.MaxBalance-amount {
		return 0, fmt.Errorf(ErrMsgBalanceOverflowFmt, amount, balance, domain.ErrInvalidInput)
	}

	if err := tx.SetCoins(ctx, balance+amount); err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateBalanceFmt, err)
	}
	return balance + amount, nil
}

// ApplyDebit removes amount, failing with domain.ErrInsufficientFunds when the
// balance is smaller. Nothing is written on failure.
func ApplyDebit(ctx context.Context, tx repository.PlayerTx, amount int) (int, error) {
	if err := validateAmount(amount); err != nil {
		return 0, err
	}

	balance := tx.Player().Coins
	if balance < amount {
		return 0, fmt.Errorf(ErrMsgInsufficientFundsFmt, balance, amount, domain.ErrInsufficientFunds)
	}

	if err := tx.SetCoins(ctx, balance-amount); err != nil {
		return 0, fmt.Errorf(ErrMsgUpdateBalanceFmt, err)
	}
	return balance - amount, nil
}

// ApplyFlooredDebit removes up to amount, stopping at zero. It returns the
// amount actually removed and the new balance.
func ApplyFlooredDebit(ctx context.Context, tx repository.PlayerTx, amount int) (applied, newBalance int, err error) {
	if err := validateAmount(amount); err != nil {
		return 0, 0, err
	}

	balance := tx.Player().Coins
	applied = min(amount, balance)
	if applied == 0 {
		return 0, balance, nil
	}

	if err := tx.SetCoins(ctx, balance-applied); err != nil {
		return 0, 0, fmt.Errorf(ErrMsgUpdateBalanceFmt, err)
	}
	return applied, balance - applied, nil
}
