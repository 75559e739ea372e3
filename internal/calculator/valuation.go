package calculator

import (
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Float64Source is the slice of math/rand the valuation engine needs.
type Float64Source interface {
	Float64() float64
}

var (
	carRetention   = decimal.RequireFromString("0.85")
	houseDrawLow   = -0.05
	houseDrawRange = 0.15
)

// AgeOneYear ages the asset: condition degrades past 10 and 15 years, cars lose 15%
// and houses move by a uniform draw in [-5%, +10%).
func AgeOneYear(a *model.Asset, rng Float64Source) {
	a.AgeYears++

	if a.AgeYears > 10 && a.Condition == model.Good {
		a.Condition = model.Fair
	} else if a.AgeYears > 15 && a.Condition == model.Fair {
		a.Condition = model.Poor
	}

	switch a.Kind {
	case model.Car:
		a.CurrentValue = a.CurrentValue.Mul(carRetention)
	case model.House:
		change := decimal.NewFromFloat(houseDrawLow + houseDrawRange*rng.Float64())
		a.CurrentValue = a.CurrentValue.Mul(decimal.NewFromInt(1).Add(change))
	}
}
