package domain

// BattleResult is the outcome class of a battle
type BattleResult string

const (
	BattleWin  BattleResult = "WIN"
	BattleLoss BattleResult = "LOSS"
)

// BattleOutcome is returned by the battle resolver.
// Delta is the signed balance change that was actually applied.
type BattleOutcome struct {
	BossKey    string       `json:"boss"`
	BossName   string       `json:"boss_name"`
	Result     BattleResult `json:"result"`
	Roll       float64      `json:"roll"`
	Delta      int          `json:"delta"`
	NewBalance int          `json:"new_balance"`
}

// PurchaseReceipt is returned by a successful shop purchase.
type PurchaseReceipt struct {
	ItemName     string `json:"item_name"`
	Label        string `json:"label"`
	PriceDebited int    `json:"price_debited"`
	NewBalance   int    `json:"new_balance"`
	EntryID      int64  `json:"entry_id"`
}

// EarningReceipt is returned by a work grant.
type EarningReceipt struct {
	Amount     int    `json:"amount"`
	Flavor     string `json:"flavor"`
	NewBalance int    `json:"new_balance"`
}
