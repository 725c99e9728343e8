package economy

import (
	"context"
	"fmt"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/repository"
)

// Ledger is the only path by which balances change. Amounts must be positive;
// a debit that the balance cannot cover fails without mutation.
type Ledger struct{}

// NewLedger creates a Ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Credit adds amount to the user's gold and returns the new balance
func (l *Ledger) Credit(ctx context.Context, tx repository.LedgerTx, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgCreditFmt, amount, domain.ErrInvalidAmount)
	}
	bal, err := tx.CreditGold(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFailed, err)
	}
	return bal, nil
}

// Debit subtracts amount if the balance covers it
func (l *Ledger) Debit(ctx context.Context, tx repository.LedgerTx, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgDebitFmt, amount, domain.ErrInvalidAmount)
	}
	bal, err := tx.DebitGold(ctx, userID, amount)
	if err != nil {
		return bal, fmt.Errorf(ErrMsgDebitFailed, err)
	}
	return bal, nil
}

// CreditPremium adds to the secondary currency
func (l *Ledger) CreditPremium(ctx context.Context, tx repository.LedgerTx, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgCreditFmt, amount, domain.ErrInvalidAmount)
	}
	bal, err := tx.CreditPremium(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFailed, err)
	}
	return bal, nil
}
