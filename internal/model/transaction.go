package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tick is the logical timestamp of the simulation: months elapsed since the session started.
type Tick int

// Year returns the number of whole simulated years elapsed at t.
func (t Tick) Year() int { return int(t) / 12 }

// TxKind enumerates every ledger entry the core writes.
type TxKind string

const (
	TxDeposit    TxKind = "DEPOSIT"
	TxWithdrawal TxKind = "WITHDRAWAL"
	TxInterest   TxKind = "INTEREST"
	TxCharge     TxKind = "CHARGE"
	TxPayment    TxKind = "PAYMENT"
)

// Transaction is one append-only ledger entry on a bank account or card.
type Transaction struct {
	Kind   TxKind          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	At     Tick            `json:"at"`
}

func (t Transaction) String() string {
	switch t.Kind {
	case TxDeposit, TxInterest, TxPayment:
		return fmt.Sprintf("%s +$%s (month %d)", t.Kind, t.Amount.StringFixed(2), t.At)
	case TxWithdrawal, TxCharge:
		return fmt.Sprintf("%s -$%s (month %d)", t.Kind, t.Amount.StringFixed(2), t.At)
	default:
		return fmt.Sprintf("%s $%s (month %d)", t.Kind, t.Amount.StringFixed(2), t.At)
	}
}
