package event

import (
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Rand is the random source every draw goes through. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Generator computes the cash effect of a random event for the current player.
// It must not mutate the player.
type Generator func(p *model.Player, rng Rand) decimal.Decimal

// Spec is one entry of the random event registry.
type Spec struct {
	Name        string
	Description string
	Generate    Generator
}

// Category splits the registry into windfalls and expenses.
type Category string

const (
	Positive Category = "positive"
	Negative Category = "negative"
)

// Registry maps each category to its generators.
type Registry map[Category][]Spec

// randInt returns a uniform integer in [lo, hi].
func randInt(rng Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func between(lo, hi int) Generator {
	return func(_ *model.Player, rng Rand) decimal.Decimal {
		return decimal.NewFromInt(int64(randInt(rng, lo, hi)))
	}
}

func cost(lo, hi int) Generator {
	gen := between(lo, hi)
	return func(p *model.Player, rng Rand) decimal.Decimal {
		return gen(p, rng).Neg()
	}
}

// DefaultRegistry is the fixed set of monthly windfalls and expenses.
var DefaultRegistry = Registry{
	Positive: {
		{Name: "Tax Refund", Description: "You received a tax refund!", Generate: between(100, 1000)},
		{Name: "Birthday Gift", Description: "You received money as a birthday gift!", Generate: between(20, 200)},
		{Name: "Found Money", Description: "You found money on the ground!", Generate: between(5, 50)},
		{Name: "Bonus", Description: "You received a bonus at work!", Generate: func(p *model.Player, rng Rand) decimal.Decimal {
			if !p.Salary().IsPositive() {
				return decimal.Zero
			}
			share := decimal.NewFromFloat(uniform(rng, 0.01, 0.1))
			return p.Salary().Mul(share).Truncate(0)
		}},
	},
	Negative: {
		{Name: "Car Repair", Description: "Your car needs repairs.", Generate: func(p *model.Player, rng Rand) decimal.Decimal {
			if !p.HasAsset(model.Car) {
				return decimal.Zero
			}
			return cost(100, 2000)(p, rng)
		}},
		{Name: "Medical Bill", Description: "You have unexpected medical expenses.", Generate: cost(50, 5000)},
		{Name: "Lost Wallet", Description: "You lost your wallet!", Generate: func(p *model.Player, _ Rand) decimal.Decimal {
			return decimal.Min(decimal.NewFromInt(50), p.Cash).Neg()
		}},
		{Name: "Phone Repair", Description: "Your phone screen cracked.", Generate: cost(50, 300)},
	},
}

// Draw picks a category with even odds, then a generator uniformly within it.
// It returns nil when the drawn effect is zero; such events are suppressed.
func (r Registry) Draw(p *model.Player, rng Rand, at model.Tick) *Event {
	cat := Negative
	if rng.Float64() < 0.5 {
		cat = Positive
	}
	specs := r[cat]
	if len(specs) == 0 {
		return nil
	}
	spec := specs[rng.Intn(len(specs))]
	delta := spec.Generate(p, rng)
	if delta.IsZero() {
		return nil
	}

	e := newEvent(RandomFinancial, spec.Name, spec.Description, at)
	e.CashDelta = delta
	if delta.IsPositive() {
		e.Options = []Option{{ID: OptAccept, Label: "Collect"}}
	} else {
		e.Options = []Option{{ID: OptPay, Label: "Pay",
			Sources: []fund.Source{fund.SourceAuto, fund.SourceCash, fund.SourceBank, fund.SourceCredit}}}
	}
	return e
}
