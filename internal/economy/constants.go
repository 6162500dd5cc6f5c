package economy

// Formatted error messages
const (
	ErrMsgInvalidPlayerIDFmt   = "invalid player id %d: %w"
	ErrMsgInvalidAmountFmt     = "invalid amount %d: %w"
	ErrMsgUnknownItemFmt       = "%q: %w"
	ErrMsgInsufficientFundsFmt = "balance %d is below %d: %w"
	ErrMsgBalanceOverflowFmt   = "credit of %d overflows balance %d: %w"
	ErrMsgAppendInventoryFmt   = "failed to append inventory entry: %w"
	ErrMsgUpdateBalanceFmt     = "failed to update balance: %w"
)

// Operation names for logs and store error metrics
const (
	OpBalance       = "ledger_balance"
	OpCredit        = "ledger_credit"
	OpDebit         = "ledger_debit"
	OpCreditFloored = "ledger_credit_floored"
	OpPurchase      = "shop_purchase"
)
