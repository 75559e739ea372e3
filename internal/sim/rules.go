package sim

import "github.com/shopspring/decimal"

// MaxAmount is the hard cap on any single amount passed to a command.
var MaxAmount = decimal.NewFromInt(10_000_000)

// Penalties are the credit-score deltas for each kind of missed payment.
type Penalties struct {
	LoanPayment    int `yaml:"loan_payment"`
	CardMinimum    int `yaml:"card_minimum"`
	LivingExpenses int `yaml:"living_expenses"`
	RandomEvent    int `yaml:"random_event"`
	RecurringBill  int `yaml:"recurring_bill"`
}

// Rules are the tunable parameters of the monthly tick.
type Rules struct {
	RetirementAge     int
	MinRetirementAge  int
	RandomEventChance float64
	FamilyChance      float64
	// AutoDepositShare of monthly income is swept into the bank account when one exists.
	AutoDepositShare decimal.Decimal
	Penalties        Penalties

	LoanPayoffBonus  int
	GraduationBonus  int
	CardPaymentBonus int
	NewJobBonus      int
}

// DefaultRules returns the canonical rule set.
func DefaultRules() Rules {
	return Rules{
		RetirementAge:     65,
		MinRetirementAge:  60,
		RandomEventChance: 0.30,
		FamilyChance:      0.10,
		AutoDepositShare:  decimal.RequireFromString("0.8"),
		Penalties: Penalties{
			LoanPayment:    20,
			CardMinimum:    30,
			LivingExpenses: 20,
			RandomEvent:    15,
			RecurringBill:  10,
		},
		LoanPayoffBonus:  20,
		GraduationBonus:  20,
		CardPaymentBonus: 5,
		NewJobBonus:      5,
	}
}
