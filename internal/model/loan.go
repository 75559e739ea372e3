package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanKind names what the money was borrowed for.
type LoanKind string

const (
	StudentLoan  LoanKind = "Student"
	AutoLoan     LoanKind = "Auto"
	Mortgage     LoanKind = "Mortgage"
	PersonalLoan LoanKind = "Personal"
)

// LoanPayment records how one payment was split.
type LoanPayment struct {
	Amount    decimal.Decimal `json:"amount"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	At        Tick            `json:"at"`
}

// Loan is an amortizing loan. MonthlyPayment is fixed when the loan is created.
type Loan struct {
	ID             uuid.UUID       `json:"id"`
	Kind           LoanKind        `json:"kind"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
	Balance        decimal.Decimal `json:"current_balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	TermYears      int             `json:"term_years"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	Payments       []LoanPayment   `json:"payment_history"`
}

// PaidOff reports whether nothing is left to repay.
func (l *Loan) PaidOff() bool { return !l.Balance.IsPositive() }

func (l *Loan) Clone() *Loan {
	c := *l
	c.Payments = append([]LoanPayment(nil), l.Payments...)
	return &c
}
