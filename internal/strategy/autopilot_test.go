package strategy

import (
	"io"
	"testing"

	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newAutopilot() *Autopilot {
	return NewAutopilot(Config{CashBuffer: decimal.NewFromInt(500), SavingsAccount: true}, quietLogger())
}

func TestDecide_RandomEvents(t *testing.T) {
	ap := newAutopilot()
	p := healthyPlayer()
	as := Evaluate(p, decimal.NewFromInt(1000))

	gain := &event.Event{Kind: event.RandomFinancial, CashDelta: decimal.NewFromInt(100)}
	if c := ap.Decide(p, gain, as); c.Option != event.OptAccept {
		t.Errorf("expected accept, got %s", c.Option)
	}
	loss := &event.Event{Kind: event.RandomFinancial, CashDelta: decimal.NewFromInt(-100)}
	if c := ap.Decide(p, loss, as); c.Option != event.OptPay || c.Source != fund.SourceAuto {
		t.Errorf("expected pay via auto, got %+v", c)
	}
}

func TestDecide_ChoicesAreOffered(t *testing.T) {
	ap := newAutopilot()
	p := healthyPlayer()
	as := Evaluate(p, decimal.NewFromInt(1000))

	events := []*event.Event{
		event.NewHighSchoolGraduation(0),
		event.NewCollegeGraduation(0),
		event.NewFirstJob(model.TradeSchool, 0),
		event.NewCarPurchase(0),
		event.NewHousePurchase(0),
		event.NewFamilyPlanning(0),
	}
	for _, e := range events {
		c := ap.Decide(p, e, as)
		if _, err := e.Validate(c); err != nil {
			t.Errorf("%s: autopilot chose an invalid answer %+v: %v", e.Kind, c, err)
		}
	}
}

func TestDecide_Jobs(t *testing.T) {
	ap := newAutopilot()
	p := healthyPlayer()
	as := Evaluate(p, decimal.NewFromInt(1000))

	c := ap.Decide(p, event.NewCollegeGraduation(0), as)
	if c.Item != "software_developer" {
		t.Errorf("expected the best paying job, got %q", c.Item)
	}
}

func TestDecide_CarFinancing(t *testing.T) {
	ap := newAutopilot()
	e := event.NewCarPurchase(0)

	rich := healthyPlayer()
	c := ap.Decide(rich, e, Evaluate(rich, decimal.NewFromInt(1000)))
	if c.Option != event.OptBuy || c.Item != "used_economy" || c.Source != fund.SourceCash {
		t.Errorf("expected cash purchase of the cheapest car, got %+v", c)
	}

	broke := healthyPlayer()
	broke.Cash = decimal.NewFromInt(3000)
	c = ap.Decide(broke, e, Evaluate(broke, decimal.NewFromInt(1000)))
	if c.Source != fund.SourceLoan {
		t.Errorf("expected an auto loan, got %+v", c)
	}

	struggling := &Assessment{Tier: DefaultTier}
	if c := ap.Decide(broke, e, struggling); c.Option != event.OptDecline {
		t.Errorf("expected decline when struggling, got %+v", c)
	}
}

func TestDecide_HouseNeedsDownPayment(t *testing.T) {
	ap := newAutopilot()
	e := event.NewHousePurchase(0)
	p := healthyPlayer()
	as := &Assessment{Tier: Tiers[0].Tier}

	if c := ap.Decide(p, e, as); c.Option != event.OptDecline {
		t.Errorf("expected decline without a down payment, got %+v", c)
	}

	p.BankAccount = model.NewBankAccount(model.Savings)
	_ = p.BankAccount.Deposit(decimal.NewFromInt(40000), 0)
	c := ap.Decide(p, e, as)
	if c.Option != event.OptBuy || c.Item != "starter_home" || c.Source != fund.SourceBank {
		t.Errorf("expected starter home paid from the bank, got %+v", c)
	}
}

func TestHousekeep(t *testing.T) {
	p := model.NewPlayer("Alex", 25, decimal.NewFromInt(5000), 650)
	p.Education = model.HighSchoolGraduate
	p.Employment = &model.Employment{Title: "Clerk", AnnualSalary: decimal.NewFromInt(30000)}
	s := sim.New(p, sim.WithSeed(7))
	ap := newAutopilot()

	done := ap.Housekeep(s)
	if len(done) < 4 {
		t.Fatalf("expected at least 4 actions, got %v", done)
	}

	snap := s.Snapshot()
	if snap.BankAccount == nil || snap.BankAccount.Kind != model.Savings {
		t.Fatal("expected a savings account")
	}
	if snap.DebitCard == nil || snap.CreditCard == nil {
		t.Error("expected both cards")
	}
	if !snap.Cash.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected the cash buffer to be kept, got %s", snap.Cash)
	}
	if !snap.BankBalance().Equal(decimal.NewFromInt(4500)) {
		t.Errorf("expected the rest in the bank, got %s", snap.BankBalance())
	}
}

func TestHousekeep_TopsUpBuffer(t *testing.T) {
	p := model.NewPlayer("Alex", 16, decimal.NewFromInt(100), 650)
	p.BankAccount = model.NewBankAccount(model.Checking)
	_ = p.BankAccount.Deposit(decimal.NewFromInt(1000), 0)
	p.DebitCard = model.NewDebitCard()
	s := sim.New(p, sim.WithSeed(1))

	done := newAutopilot().Housekeep(s)
	if len(done) != 1 {
		t.Fatalf("expected only the top-up, got %v", done)
	}
	if !s.Snapshot().Cash.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected cash topped up to 500, got %s", s.Snapshot().Cash)
	}
}
