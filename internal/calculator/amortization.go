package calculator

import (
	"errors"
	"fmt"
	"math"

	"MoneySmartz/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanEpsilon is the remaining balance below which a loan counts as repaid.
var LoanEpsilon = decimal.RequireFromString("0.01")

// MaxTermYears and MaxAnnualRate bound the loans the simulation will write.
const MaxTermYears = 50

var MaxAnnualRate = decimal.NewFromInt(1)

var twelve = decimal.NewFromInt(12)

// MonthlyRate converts an annual rate to the per-month rate.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// MonthlyPayment computes the fixed installment P·r·(1+r)^n / ((1+r)^n − 1).
func MonthlyPayment(principal, annualRate decimal.Decimal, termYears int) (decimal.Decimal, error) {
	if !principal.IsPositive() {
		return decimal.Zero, errors.New("principal must be positive")
	}
	if termYears <= 0 || termYears > MaxTermYears {
		return decimal.Zero, fmt.Errorf("term must be between 1 and %d years", MaxTermYears)
	}
	if annualRate.IsNegative() || annualRate.GreaterThan(MaxAnnualRate) {
		return decimal.Zero, fmt.Errorf("interest rate must be between 0 and %s", MaxAnnualRate)
	}
	n := termYears * 12
	if annualRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))), nil
	}
	r := MonthlyRate(annualRate)
	g := math.Pow(1+r.InexactFloat64(), float64(n))
	if math.IsInf(g, 0) || math.IsNaN(g) {
		return decimal.Zero, errors.New("payment overflows")
	}
	growth := decimal.NewFromFloat(g)
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))), nil
}

// NewLoan creates a loan with its monthly payment fixed for the whole term.
func NewLoan(kind model.LoanKind, principal, annualRate decimal.Decimal, termYears int) (*model.Loan, error) {
	payment, err := MonthlyPayment(principal, annualRate, termYears)
	if err != nil {
		return nil, err
	}
	return &model.Loan{
		ID:             uuid.New(),
		Kind:           kind,
		OriginalAmount: principal,
		Balance:        principal,
		InterestRate:   annualRate,
		TermYears:      termYears,
		MonthlyPayment: payment,
	}, nil
}

// InterestDue is one month of interest on the current balance.
func InterestDue(l *model.Loan) decimal.Decimal {
	return l.Balance.Mul(MonthlyRate(l.InterestRate))
}

// PayoffAmount is what clears the loan this month: balance plus one month of interest.
func PayoffAmount(l *model.Loan) decimal.Decimal {
	return l.Balance.Add(InterestDue(l))
}

// ApplyPayment splits amount into interest and principal and reduces the balance.
// A payment smaller than the interest due goes entirely to interest.
func ApplyPayment(l *model.Loan, amount decimal.Decimal, at model.Tick) (model.LoanPayment, error) {
	if !amount.IsPositive() {
		return model.LoanPayment{}, model.ErrNonPositiveAmount
	}
	interest := InterestDue(l)
	principal := amount.Sub(interest)
	if principal.IsNegative() {
		interest = amount
		principal = decimal.Zero
	}
	if principal.GreaterThan(l.Balance) {
		principal = l.Balance
	}

	l.Balance = l.Balance.Sub(principal)
	if l.Balance.LessThan(LoanEpsilon) {
		l.Balance = decimal.Zero
	}

	p := model.LoanPayment{Amount: amount, Interest: interest, Principal: principal, At: at}
	l.Payments = append(l.Payments, p)
	return p, nil
}

// RemainingPayments estimates how many installments are left at the fixed payment.
func RemainingPayments(l *model.Loan) int {
	if l.PaidOff() || !l.MonthlyPayment.IsPositive() {
		return 0
	}
	return int(l.Balance.Div(l.MonthlyPayment).Ceil().IntPart())
}
