package strategy

import (
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Tier is how much risk the autopilot takes on at a given health score.
type Tier struct {
	Label string `json:"label"`
	// BuyCar and BuyHouse allow the purchase opportunities to be accepted.
	BuyCar   bool `json:"buy_car"`
	BuyHouse bool `json:"buy_house"`
	// Family is the answer to a family planning event.
	Family event.OptionID `json:"family"`
}

// Tiers maps the total score to a tier, checked top-down.
var Tiers = []struct {
	MinScore float64
	Tier     Tier
}{
	{1.2, Tier{Label: "Thriving", BuyCar: true, BuyHouse: true, Family: event.OptMarryWithChildren}},
	{0.5, Tier{Label: "Comfortable", BuyCar: true, BuyHouse: true, Family: event.OptMarryWithChildren}},
	{0.0, Tier{Label: "Steady", BuyCar: true, BuyHouse: false, Family: event.OptMarry}},
	{-0.8, Tier{Label: "Stretched", BuyCar: false, BuyHouse: false, Family: event.OptMarry}},
}

// DefaultTier is used for scores below -0.8.
var DefaultTier = Tier{Label: "Struggling", Family: event.OptDecline}

func mapTier(totalScore float64) Tier {
	for _, t := range Tiers {
		if totalScore >= t.MinScore {
			return t.Tier
		}
	}
	return DefaultTier
}

// Assessment is the player's financial health at one point in time.
type Assessment struct {
	Factors    []FactorScore `json:"factors"`
	TotalScore float64       `json:"total_score"`
	Tier       Tier          `json:"tier"`
}

// Evaluate scores the player; living is the current monthly cost of living.
func Evaluate(p *model.Player, living decimal.Decimal) *Assessment {
	factors := []FactorScore{
		scoreCreditScore(p),
		scoreEmergencyFund(p, living),
		scoreDebtToIncome(p),
		scoreCreditUtilization(p),
	}
	total := 0.0
	for _, f := range factors {
		total += f.Weighted
	}
	return &Assessment{
		Factors:    factors,
		TotalScore: total,
		Tier:       mapTier(total),
	}
}
