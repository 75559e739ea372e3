package sim

import (
	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Status is the outcome of one AdvanceMonth call.
type Status string

const (
	Continued Status = "continued"
	Paused    Status = "paused"
	Ended     Status = "ended"
)

// PenaltyReason names the call site that missed a payment.
type PenaltyReason string

const (
	MissedLoanPayment    PenaltyReason = "loan_payment"
	MissedCardMinimum    PenaltyReason = "credit_card_minimum"
	MissedLivingExpenses PenaltyReason = "living_expenses"
	MissedRandomEvent    PenaltyReason = "random_event"
	MissedRecurringBill  PenaltyReason = "recurring_bill"
)

// Penalty is one credit-score deduction. Points is the applied (clamped) delta.
type Penalty struct {
	Reason PenaltyReason   `json:"reason"`
	Amount decimal.Decimal `json:"amount"`
	Points int             `json:"points"`
}

// Report summarizes what one tick did to the ledgers.
type Report struct {
	Tick           model.Tick      `json:"tick"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Age            int             `json:"age"`
	Income         decimal.Decimal `json:"income"`
	AutoDeposit    decimal.Decimal `json:"auto_deposit"`
	Interest       decimal.Decimal `json:"interest"`
	LoanPayments   decimal.Decimal `json:"loan_payments"`
	CardPayment    decimal.Decimal `json:"card_payment"`
	LivingExpenses decimal.Decimal `json:"living_expenses"`
	Bills          decimal.Decimal `json:"bills"`
	PaidOff        []uuid.UUID     `json:"paid_off,omitempty"`
	Penalties      []Penalty       `json:"penalties,omitempty"`
}

// TickResult is Continued, Paused with an Event or Ended with a Reason.
type TickResult struct {
	Status Status       `json:"status"`
	Event  *event.Event `json:"event,omitempty"`
	Reason string       `json:"reason,omitempty"`
	Report Report       `json:"report"`
}

var twelve = decimal.NewFromInt(12)

// AdvanceMonth runs one tick. It is only legal while the session is Running.
func (s *Session) AdvanceMonth() (TickResult, error) {
	switch s.state {
	case AwaitingChoice:
		return TickResult{}, ErrAwaitingChoice
	case Terminal:
		return TickResult{}, ErrGameOver
	}

	rep := Report{
		Income:         decimal.Zero,
		AutoDeposit:    decimal.Zero,
		Interest:       decimal.Zero,
		LoanPayments:   decimal.Zero,
		CardPayment:    decimal.Zero,
		LivingExpenses: decimal.Zero,
		Bills:          decimal.Zero,
	}
	s.advanceClock(&rep)
	s.payIncome(&rep)
	s.serviceLoans(&rep)
	s.payCardMinimum(&rep)
	s.payLivingExpenses(&rep)
	s.payRecurringBills(&rep)
	s.mustHold()

	rep.Tick, rep.Year, rep.Month, rep.Age = s.Tick(), s.year, s.month, s.player.Age
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"income":    rep.Income.StringFixed(2),
		"living":    rep.LivingExpenses.StringFixed(2),
		"penalties": len(rep.Penalties),
	}).Debug("month processed")

	if s.rng.Float64() < s.rules.RandomEventChance {
		if e := s.registry.Draw(s.player, s.rng, s.Tick()); e != nil {
			s.pause(e)
			return TickResult{Status: Paused, Event: e, Report: rep}, nil
		}
	}
	if e := s.lifeStageEvent(); e != nil {
		s.pause(e)
		return TickResult{Status: Paused, Event: e, Report: rep}, nil
	}
	if s.retirementDue() {
		s.end(ReasonRetirement)
		return TickResult{Status: Ended, Reason: s.reason, Report: rep}, nil
	}
	return TickResult{Status: Continued, Report: rep}, nil
}

func (s *Session) retirementDue() bool {
	return s.player.Age >= s.rules.RetirementAge
}

func (s *Session) advanceClock(rep *Report) {
	s.month++
	if s.month <= 12 {
		return
	}
	s.month = 1
	s.year++

	p := s.player
	p.Age++
	for i := range p.Family {
		p.Family[i].Age++
	}
	if p.BankAccount != nil {
		rep.Interest = calculator.ApplySavingsInterest(p.BankAccount, s.Tick())
	}
	for _, a := range p.Assets {
		calculator.AgeOneYear(a, s.rng)
	}
	s.log.WithFields(s.fields()).Info("new year")
}

func (s *Session) payIncome(rep *Report) {
	p := s.player
	income := p.HouseholdIncome().Div(twelve).Round(2)
	if !income.IsPositive() {
		return
	}
	p.Cash = p.Cash.Add(income)
	rep.Income = income

	if p.BankAccount == nil {
		return
	}
	sweep := income.Mul(s.rules.AutoDepositShare).Round(2)
	if sweep.IsPositive() && p.Cash.GreaterThanOrEqual(sweep) {
		p.Cash = p.Cash.Sub(sweep)
		_ = p.BankAccount.Deposit(sweep, s.Tick())
		rep.AutoDeposit = sweep
	}
}

func (s *Session) serviceLoans(rep *Report) {
	p := s.player
	for _, l := range append([]*model.Loan(nil), p.Loans...) {
		due := decimal.Min(l.MonthlyPayment, calculator.PayoffAmount(l))
		out := fund.Resolve(p, due, s.Tick(), fund.LoanChain...)
		if !out.Paid {
			pen := s.penalize(MissedLoanPayment, s.rules.Penalties.LoanPayment, due)
			rep.Penalties = append(rep.Penalties, pen)
			continue
		}
		if _, err := calculator.ApplyPayment(l, due, s.Tick()); err != nil {
			panic(err)
		}
		rep.LoanPayments = rep.LoanPayments.Add(due)
		if l.PaidOff() {
			s.retireLoan(l)
			rep.PaidOff = append(rep.PaidOff, l.ID)
		}
	}
}

// retireLoan removes a repaid loan and awards the payoff bonus.
func (s *Session) retireLoan(l *model.Loan) {
	_, i := s.player.FindLoan(l.ID.String())
	if i < 0 {
		return
	}
	s.player.Loans = append(s.player.Loans[:i], s.player.Loans[i+1:]...)
	adjustScore(s.player, s.rules.LoanPayoffBonus)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"loan_id": l.ID,
		"kind":    l.Kind,
	}).Info("loan paid off")
}

func (s *Session) payCardMinimum(rep *Report) {
	card := s.player.CreditCard
	if card == nil || !card.Balance.IsPositive() {
		return
	}
	due := calculator.MinimumCardPayment(card.Balance)
	out := fund.Resolve(s.player, due, s.Tick(), fund.CardChain...)
	if !out.Paid {
		rep.Penalties = append(rep.Penalties, s.penalize(MissedCardMinimum, s.rules.Penalties.CardMinimum, due))
		return
	}
	if err := card.Pay(due, s.Tick()); err != nil {
		panic(err)
	}
	rep.CardPayment = due
}

func (s *Session) payLivingExpenses(rep *Report) {
	cost := calculator.LivingExpenses(s.player, s.year).Round(2)
	rep.LivingExpenses = cost
	if out := fund.Resolve(s.player, cost, s.Tick()); !out.Paid {
		rep.Penalties = append(rep.Penalties, s.penalize(MissedLivingExpenses, s.rules.Penalties.LivingExpenses, cost))
	}
}

func (s *Session) payRecurringBills(rep *Report) {
	p := s.player
	kept := p.RecurringBills[:0]
	for _, bill := range p.RecurringBills {
		if out := fund.Resolve(p, bill.Amount, s.Tick()); out.Paid {
			rep.Bills = rep.Bills.Add(bill.Amount)
		} else {
			rep.Penalties = append(rep.Penalties, s.penalize(MissedRecurringBill, s.rules.Penalties.RecurringBill, bill.Amount))
		}
		if bill.RemainingMonths > 0 {
			bill.RemainingMonths--
			if bill.RemainingMonths == 0 {
				continue
			}
		}
		kept = append(kept, bill)
	}
	p.RecurringBills = kept
}

func adjustScore(p *model.Player, delta int) int {
	return fund.AdjustCreditScore(p, delta)
}
