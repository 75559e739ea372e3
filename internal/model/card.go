package model

import "github.com/shopspring/decimal"

// CardKind distinguishes debit from credit cards.
type CardKind string

const (
	Debit  CardKind = "Debit"
	Credit CardKind = "Credit"
)

// CreditCardAPR is shown to the player but never applied to the balance.
var CreditCardAPR = decimal.RequireFromString("0.18")

// Card is a payment card. Debit cards carry no balance; credit balances stay within [0, Limit].
type Card struct {
	Kind    CardKind        `json:"kind"`
	Limit   decimal.Decimal `json:"limit"`
	Balance decimal.Decimal `json:"balance"`
	History []Transaction   `json:"history"`
}

func NewDebitCard() *Card { return &Card{Kind: Debit} }

func NewCreditCard(limit decimal.Decimal) *Card {
	return &Card{Kind: Credit, Limit: limit}
}

// Available returns the unused credit.
func (c *Card) Available() decimal.Decimal {
	if c.Kind != Credit {
		return decimal.Zero
	}
	return c.Limit.Sub(c.Balance)
}

// CanCharge reports whether amount fits under the limit.
func (c *Card) CanCharge(amount decimal.Decimal) bool {
	return c.Kind == Credit && amount.IsPositive() && c.Balance.Add(amount).LessThanOrEqual(c.Limit)
}

func (c *Card) Charge(amount decimal.Decimal, at Tick) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if c.Kind != Credit {
		return ErrNotCredit
	}
	if c.Balance.Add(amount).GreaterThan(c.Limit) {
		return ErrOverLimit
	}
	c.Balance = c.Balance.Add(amount)
	c.History = append(c.History, Transaction{Kind: TxCharge, Amount: amount, At: at})
	return nil
}

// Pay reduces the outstanding balance.
func (c *Card) Pay(amount decimal.Decimal, at Tick) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if c.Kind != Credit {
		return ErrNotCredit
	}
	if amount.GreaterThan(c.Balance) {
		return ErrOverpayment
	}
	c.Balance = c.Balance.Sub(amount)
	c.History = append(c.History, Transaction{Kind: TxPayment, Amount: amount, At: at})
	return nil
}

func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	cp.History = append([]Transaction(nil), c.History...)
	return &cp
}
