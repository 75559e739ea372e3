package calculator

import (
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Rating labels.
const (
	RatingWizard   = "Financial Wizard"
	RatingSecure   = "Financially Secure"
	RatingStable   = "Financially Stable"
	RatingBreaking = "Breaking Even"
	RatingInDebt   = "In Debt"
)

// Ratings maps net worth to a label; bounds are inclusive and checked top-down.
var Ratings = []struct {
	MinValue decimal.Decimal
	Label    string
}{
	{decimal.NewFromInt(1_000_000), RatingWizard},
	{decimal.NewFromInt(500_000), RatingSecure},
	{decimal.NewFromInt(100_000), RatingStable},
	{decimal.Zero, RatingBreaking},
}

// NetWorth is the scalar outcome of a life plus its band.
type NetWorth struct {
	Value  decimal.Decimal `json:"value"`
	Rating string          `json:"rating"`
}

// Rate maps a net worth value to its rating band.
func Rate(value decimal.Decimal) string {
	for _, r := range Ratings {
		if value.GreaterThanOrEqual(r.MinValue) {
			return r.Label
		}
	}
	return RatingInDebt
}

// CalculateNetWorth is cash + bank − credit debt − loan debt + asset value. It never mutates p.
func CalculateNetWorth(p *model.Player) NetWorth {
	value := p.Cash.
		Add(p.BankBalance()).
		Sub(p.CreditDebt()).
		Sub(p.LoanDebt()).
		Add(p.AssetValue())
	return NetWorth{Value: value, Rating: Rate(value)}
}
