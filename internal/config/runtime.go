package config

import (
	"fmt"
	"os"

	"MoneySmartz/internal/sim"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Logger builds the process logger from the log section.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// Rules applies the simulation section over the default rules.
func (c *Config) Rules() sim.Rules {
	r := sim.DefaultRules()
	r.RetirementAge = c.Simulation.RetirementAge
	r.RandomEventChance = c.Simulation.RandomEventChance
	r.FamilyChance = c.Simulation.FamilyChance
	r.Penalties = mergePenalties(r.Penalties, c.Simulation.Penalties)
	return r
}

func mergePenalties(base, override sim.Penalties) sim.Penalties {
	pick := func(def, v int) int {
		if v > 0 {
			return v
		}
		return def
	}
	return sim.Penalties{
		LoanPayment:    pick(base.LoanPayment, override.LoanPayment),
		CardMinimum:    pick(base.CardMinimum, override.CardMinimum),
		LivingExpenses: pick(base.LivingExpenses, override.LivingExpenses),
		RandomEvent:    pick(base.RandomEvent, override.RandomEvent),
		RecurringBill:  pick(base.RecurringBill, override.RecurringBill),
	}
}

// StartingCash converts the configured float to an exact amount.
func (c *Config) StartingCash() decimal.Decimal {
	return decimal.NewFromFloat(c.Player.Cash).Round(2)
}
