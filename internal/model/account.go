package model

import "github.com/shopspring/decimal"

// AccountKind is the type of the player's bank account.
type AccountKind string

const (
	Checking AccountKind = "Checking"
	Savings  AccountKind = "Savings"
)

// SavingsRate is the fixed annual interest rate paid on savings accounts.
var SavingsRate = decimal.RequireFromString("0.01")

// BankAccount holds money that may earn interest. Balance never goes negative.
type BankAccount struct {
	Kind         AccountKind     `json:"kind"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	History      []Transaction   `json:"history"`
}

// NewBankAccount opens an empty account of the given kind.
func NewBankAccount(kind AccountKind) *BankAccount {
	rate := decimal.Zero
	if kind == Savings {
		rate = SavingsRate
	}
	return &BankAccount{Kind: kind, InterestRate: rate}
}

func (a *BankAccount) Deposit(amount decimal.Decimal, at Tick) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	a.Balance = a.Balance.Add(amount)
	a.History = append(a.History, Transaction{Kind: TxDeposit, Amount: amount, At: at})
	return nil
}

func (a *BankAccount) Withdraw(amount decimal.Decimal, at Tick) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	a.History = append(a.History, Transaction{Kind: TxWithdrawal, Amount: amount, At: at})
	return nil
}

// CreditInterest adds earned interest to the balance and logs it.
func (a *BankAccount) CreditInterest(amount decimal.Decimal, at Tick) {
	if !amount.IsPositive() {
		return
	}
	a.Balance = a.Balance.Add(amount)
	a.History = append(a.History, Transaction{Kind: TxInterest, Amount: amount, At: at})
}

// Clone returns a deep copy.
func (a *BankAccount) Clone() *BankAccount {
	if a == nil {
		return nil
	}
	c := *a
	c.History = append([]Transaction(nil), a.History...)
	return &c
}
