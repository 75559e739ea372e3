package strategy

import (
	"errors"
	"slices"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Session is the part of sim.Session the autopilot drives.
type Session interface {
	Snapshot() *model.Player
	Year() int
	Month() int
	OpenBankAccount(kind model.AccountKind) error
	GetDebitCard() error
	Deposit(amount decimal.Decimal) error
	Withdraw(amount decimal.Decimal) error
	ApplyForCreditCard() (decimal.Decimal, error)
	PayCreditCard(amount decimal.Decimal, src fund.Source) error
	SearchJobs() ([]sim.JobOffer, error)
	ApplyForJob(title string) (bool, error)
}

// Config tunes the autopilot.
type Config struct {
	// CashBuffer is kept in the wallet; the rest is swept into the bank.
	CashBuffer decimal.Decimal
	// SavingsAccount opens a savings account instead of checking.
	SavingsAccount bool
}

// Autopilot plays a life without a human: it answers every event and tidies the ledgers
// between ticks.
type Autopilot struct {
	cfg Config
	log *logrus.Logger
}

func NewAutopilot(cfg Config, log *logrus.Logger) *Autopilot {
	return &Autopilot{cfg: cfg, log: log}
}

// Assess evaluates the session's player at the current cost of living.
func (a *Autopilot) Assess(s Session) *Assessment {
	p := s.Snapshot()
	return Evaluate(p, calculator.LivingExpenses(p, s.Year()))
}

// Decide picks an answer for e. The answer is always one the event offers.
func (a *Autopilot) Decide(p *model.Player, e *event.Event, as *Assessment) event.Choice {
	switch e.Kind {
	case event.RandomFinancial:
		if e.CashDelta.IsPositive() {
			return event.Choice{Option: event.OptAccept}
		}
		return event.Choice{Option: event.OptPay, Source: fund.SourceAuto}

	case event.HighSchoolGraduation:
		if as.TotalScore < -0.8 {
			return event.Choice{Option: event.OptWork, Item: bestPaying(optionItems(e, event.OptWork)).Key}
		}
		return event.Choice{Option: event.OptCollege, Source: a.tuitionSource(p)}

	case event.CollegeGraduation, event.FirstJob:
		return event.Choice{Option: event.OptTakeJob, Item: bestPaying(optionItems(e, event.OptTakeJob)).Key}

	case event.CarPurchase:
		if !as.Tier.BuyCar {
			return decline()
		}
		car := cheapest(optionItems(e, event.OptBuy))
		if src, ok := a.payableFrom(p, car.Value); ok {
			return event.Choice{Option: event.OptBuy, Item: car.Key, Source: src}
		}
		if p.CreditScore >= 650 {
			return event.Choice{Option: event.OptBuy, Item: car.Key, Source: fund.SourceLoan}
		}
		return decline()

	case event.HousePurchase:
		if !as.Tier.BuyHouse {
			return decline()
		}
		house := cheapest(optionItems(e, event.OptBuy))
		down := house.Value.Mul(decimal.RequireFromString("0.2"))
		if src, ok := a.payableFrom(p, down); ok {
			return event.Choice{Option: event.OptBuy, Item: house.Key, Source: src}
		}
		return decline()

	case event.FamilyPlanning:
		return event.Choice{Option: as.Tier.Family}
	}
	return decline()
}

func decline() event.Choice { return event.Choice{Option: event.OptDecline} }

// tuitionSource pays the first college year when savings allow it, otherwise borrows.
func (a *Autopilot) tuitionSource(p *model.Player) fund.Source {
	if src, ok := a.payableFrom(p, decimal.NewFromInt(20000)); ok {
		return src
	}
	return fund.SourceLoan
}

// payableFrom finds a single source that covers amount and still leaves the cash buffer.
func (a *Autopilot) payableFrom(p *model.Player, amount decimal.Decimal) (fund.Source, bool) {
	if p.Cash.Sub(amount).GreaterThanOrEqual(a.cfg.CashBuffer) {
		return fund.SourceCash, true
	}
	if p.BankBalance().GreaterThanOrEqual(amount) {
		return fund.SourceBank, true
	}
	return "", false
}

func optionItems(e *event.Event, id event.OptionID) []event.Item {
	o, _ := e.Option(id)
	return o.Items
}

func cheapest(items []event.Item) event.Item {
	return slices.MinFunc(items, func(a, b event.Item) int { return a.Value.Cmp(b.Value) })
}

func bestPaying(items []event.Item) event.Item {
	return slices.MaxFunc(items, func(a, b event.Item) int { return a.Value.Cmp(b.Value) })
}

// Housekeep runs the between-tick routine and returns a line per action taken.
func (a *Autopilot) Housekeep(s Session) []string {
	var done []string
	note := func(msg string) {
		done = append(done, msg)
		a.log.WithFields(logrus.Fields{"year": s.Year(), "month": s.Month()}).Debug(msg)
	}

	p := s.Snapshot()
	if p.BankAccount == nil {
		kind := model.Checking
		if a.cfg.SavingsAccount {
			kind = model.Savings
		}
		if s.OpenBankAccount(kind) == nil {
			note("opened a " + string(kind) + " account")
		}
	}
	if p.DebitCard == nil && s.GetDebitCard() == nil {
		note("got a debit card")
	}
	if p.CreditCard == nil && p.Employed() {
		if limit, err := s.ApplyForCreditCard(); err == nil {
			note("credit card approved with a $" + limit.StringFixed(0) + " limit")
		} else if !errors.Is(err, sim.ErrNotEligible) {
			a.log.WithError(err).Warn("credit card application failed")
		}
	}

	p = s.Snapshot()
	if debt := p.CreditDebt(); debt.IsPositive() {
		if s.PayCreditCard(debt, fund.SourceAuto) == nil {
			note("paid the credit card in full")
		}
	}

	a.balanceCash(s, note)
	a.lookForWork(s, note)
	return done
}

// balanceCash keeps exactly the buffer in the wallet when the bank allows it.
func (a *Autopilot) balanceCash(s Session, note func(string)) {
	p := s.Snapshot()
	if p.BankAccount == nil {
		return
	}
	switch {
	case p.Cash.GreaterThan(a.cfg.CashBuffer):
		if s.Deposit(p.Cash.Sub(a.cfg.CashBuffer)) == nil {
			note("swept extra cash into the bank")
		}
	case p.Cash.LessThan(a.cfg.CashBuffer):
		need := decimal.Min(a.cfg.CashBuffer.Sub(p.Cash), p.BankBalance())
		if need.IsPositive() && s.Withdraw(need) == nil {
			note("topped up the cash buffer")
		}
	}
}

// lookForWork applies for the best opening when unemployed, and every January for a raise.
func (a *Autopilot) lookForWork(s Session, note func(string)) {
	p := s.Snapshot()
	if p.Age < 18 || p.Education == model.HighSchool || p.Education == model.CollegeInProgress {
		return
	}
	if p.Employed() && s.Month() != 1 {
		return
	}
	offers, err := s.SearchJobs()
	if err != nil || len(offers) == 0 {
		return
	}
	best := slices.MaxFunc(offers, func(a, b sim.JobOffer) int { return a.Salary.Cmp(b.Salary) })
	if hired, err := s.ApplyForJob(best.Title); err == nil && hired {
		note("hired as " + best.Title + " at $" + best.Salary.StringFixed(0))
	}
}
