package strategy

import (
	"fmt"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// FactorScore is one weighted input to the financial health score.
type FactorScore struct {
	Name       string  `json:"name"`
	RawScore   float64 `json:"raw_score"`
	Weight     float64 `json:"weight"`
	Weighted   float64 `json:"weighted"`
	Commentary string  `json:"commentary"`
}

func factor(name string, score, weight float64, commentary string) FactorScore {
	return FactorScore{
		Name:       name,
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// scoreCreditScore rates the credit score itself.
// Weight: 0.30
func scoreCreditScore(p *model.Player) FactorScore {
	cs := p.CreditScore
	var score float64
	switch {
	case cs >= 750:
		score = 2.0
	case cs >= 700:
		score = 1.0
	case cs >= 650:
		score = 0.5
	case cs >= 600:
		score = 0
	case cs >= 500:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Credit Score", score, 0.30, fmt.Sprintf("score=%d", cs))
}

// scoreEmergencyFund rates how many months of living expenses liquid savings cover.
// Weight: 0.30
func scoreEmergencyFund(p *model.Player, living decimal.Decimal) FactorScore {
	liquid := p.Cash.Add(p.BankBalance())
	months := 0.0
	if living.IsPositive() {
		months = liquid.Div(living).InexactFloat64()
	}

	var score float64
	switch {
	case months >= 6:
		score = 2.0
	case months >= 3:
		score = 1.0
	case months >= 1:
		score = 0
	case months >= 0.5:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Emergency Fund", score, 0.30, fmt.Sprintf("%.1f months", months))
}

// scoreDebtToIncome rates loan debt against annual household income.
// Weight: 0.25
func scoreDebtToIncome(p *model.Player) FactorScore {
	debt := p.LoanDebt()
	income := p.HouseholdIncome()
	if !debt.IsPositive() {
		return factor("Debt to Income", 2.0, 0.25, "debt free")
	}
	if !income.IsPositive() {
		return factor("Debt to Income", -2.0, 0.25, "debt without income")
	}

	ratio := debt.Div(income).InexactFloat64()
	var score float64
	switch {
	case ratio <= 0.5:
		score = 1.0
	case ratio <= 1:
		score = 0.5
	case ratio <= 2:
		score = 0
	case ratio <= 4:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Debt to Income", score, 0.25, fmt.Sprintf("ratio=%.2f", ratio))
}

// scoreCreditUtilization rates how much of the card limit is in use.
// Weight: 0.15
func scoreCreditUtilization(p *model.Player) FactorScore {
	card := p.CreditCard
	if card == nil || !card.Limit.IsPositive() {
		return factor("Credit Utilization", 0, 0.15, "no credit card")
	}

	util := card.Balance.Div(card.Limit).InexactFloat64() * 100
	var score float64
	switch {
	case util <= 10:
		score = 2.0
	case util <= 30:
		score = 1.0
	case util <= 50:
		score = 0
	case util <= 80:
		score = -1.0
	default:
		score = -2.0
	}
	return factor("Credit Utilization", score, 0.15, fmt.Sprintf("%.0f%% used", util))
}
