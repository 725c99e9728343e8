package repository

import "context"

// LedgerTx mutates balances. Debits are conditional single statements so a
// balance can never go negative even without the row lock.
type LedgerTx interface {
	// CreditGold adds amount and returns the new balance
	CreditGold(ctx context.Context, userID string, amount int64) (int64, error)
	// DebitGold subtracts amount only if the balance covers it, else domain.ErrInsufficientFunds
	DebitGold(ctx context.Context, userID string, amount int64) (int64, error)
	// CreditPremium adds to the secondary currency
	CreditPremium(ctx context.Context, userID string, amount int64) (int64, error)
}
