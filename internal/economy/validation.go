package economy

import (
	"fmt"

	"github.com/osse101/NiltersBot_Go/internal/domain"
)

func validatePlayerID(playerID int64) error {
	if playerID <= 0 {
		return fmt.Errorf(ErrMsgInvalidPlayerIDFmt, playerID, domain.ErrInvalidInput)
	}
	return nil
}

func validateAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf(ErrMsgInvalidAmountFmt, amount, domain.ErrInvalidInput)
	}
	return nil
}
