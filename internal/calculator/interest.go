package calculator

import (
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// ApplySavingsInterest credits one year of interest to a savings account and returns it.
// Checking accounts and empty balances earn nothing.
func ApplySavingsInterest(a *model.BankAccount, at model.Tick) decimal.Decimal {
	if a == nil || a.Kind != model.Savings || !a.Balance.IsPositive() {
		return decimal.Zero
	}
	interest := a.Balance.Mul(a.InterestRate)
	a.CreditInterest(interest, at)
	return interest
}

// AdvisoryCardInterest is the monthly interest a credit balance would cost at the card APR.
// It is display-only: the simulation never adds it to the balance.
func AdvisoryCardInterest(c *model.Card) decimal.Decimal {
	if c == nil || c.Kind != model.Credit {
		return decimal.Zero
	}
	return c.Balance.Mul(MonthlyRate(model.CreditCardAPR))
}
