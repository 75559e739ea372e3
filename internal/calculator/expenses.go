package calculator

import (
	"math"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

var (
	baseLiving      = decimal.NewFromInt(1000)
	houseUpkeep     = decimal.NewFromInt(500)
	carUpkeep       = decimal.NewFromInt(200)
	perFamilyMember = decimal.NewFromInt(500)
	inflation       = decimal.RequireFromString("1.02")

	minCardPaymentFloor = decimal.NewFromInt(25)
	minCardPaymentRate  = decimal.RequireFromString("0.03")
)

// LivingExpenses is the monthly cost of living after yearsElapsed years of 2% inflation.
func LivingExpenses(p *model.Player, yearsElapsed int) decimal.Decimal {
	cost := baseLiving
	if p.HasAsset(model.House) {
		cost = cost.Add(houseUpkeep)
	}
	if p.HasAsset(model.Car) {
		cost = cost.Add(carUpkeep)
	}
	cost = cost.Add(perFamilyMember.Mul(decimal.NewFromInt(int64(len(p.Family)))))
	return cost.Mul(inflation.Pow(decimal.NewFromInt(int64(yearsElapsed))))
}

// MinimumCardPayment is max($25, 3% of the balance), never more than the balance itself.
func MinimumCardPayment(balance decimal.Decimal) decimal.Decimal {
	if !balance.IsPositive() {
		return decimal.Zero
	}
	due := decimal.Max(minCardPaymentFloor, balance.Mul(minCardPaymentRate))
	return decimal.Min(due, balance)
}

// CreditLimit offers 20% of salary scaled by credit score, rounded to $100 and kept in [500, 50000].
func CreditLimit(salary decimal.Decimal, creditScore int) decimal.Decimal {
	var multiplier float64
	switch {
	case creditScore >= 750:
		multiplier = 1.5
	case creditScore >= 700:
		multiplier = 1.2
	case creditScore >= 650:
		multiplier = 1.0
	case creditScore >= 600:
		multiplier = 0.8
	default:
		multiplier = 0.5
	}
	raw := salary.InexactFloat64() * 0.2 * multiplier
	limit := math.Round(raw/100) * 100
	limit = math.Max(500, math.Min(50000, limit))
	return decimal.NewFromFloat(limit)
}

// AutoLoanRate is the annual rate offered for a car loan.
func AutoLoanRate(creditScore int) decimal.Decimal {
	switch {
	case creditScore >= 700:
		return decimal.RequireFromString("0.03")
	case creditScore >= 650:
		return decimal.RequireFromString("0.05")
	default:
		return decimal.RequireFromString("0.08")
	}
}

// MortgageRate is the annual rate offered for a 30-year mortgage.
func MortgageRate(creditScore int) decimal.Decimal {
	switch {
	case creditScore >= 750:
		return decimal.RequireFromString("0.035")
	case creditScore >= 700:
		return decimal.RequireFromString("0.04")
	case creditScore >= 650:
		return decimal.RequireFromString("0.045")
	default:
		return decimal.RequireFromString("0.055")
	}
}
