package sim

import (
	"fmt"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Resolution describes what a choice did.
type Resolution struct {
	Event   *event.Event `json:"event"`
	Choice  event.Choice `json:"choice"`
	Penalty *Penalty     `json:"penalty,omitempty"`
	Status  Status       `json:"status"`
	Reason  string       `json:"reason,omitempty"`
}

var (
	collegeYear      = decimal.NewFromInt(20000)
	collegeTotal     = decimal.NewFromInt(80000)
	tradeSchoolCost  = decimal.NewFromInt(10000)
	studentLoanRate  = decimal.RequireFromString("0.05")
	downPaymentShare = decimal.RequireFromString("0.2")
	spouseIncomeOdds = 0.7
	studentLoanYears = 10
	autoLoanYears    = 5
	mortgageYears    = 30
	spouseAgeSpread  = 3
	maxChildren      = 3
)

// ResolveChoice applies the chosen branch of the pending event and resumes the session.
// On error nothing is mutated and the event stays pending.
func (s *Session) ResolveChoice(id uuid.UUID, c event.Choice) (Resolution, error) {
	if err := s.live(); err != nil {
		return Resolution{}, err
	}
	e := s.pending
	if s.state != AwaitingChoice || e == nil {
		return Resolution{}, fmt.Errorf("%w: no event is pending", ErrInvalidChoice)
	}
	if e.ID != id {
		return Resolution{}, fmt.Errorf("%w: event %s is not pending", ErrInvalidChoice, id)
	}
	if c.Source == "" {
		c.Source = fund.SourceAuto
	}
	item, err := e.Validate(c)
	if err != nil {
		return Resolution{}, err
	}

	res := Resolution{Event: e, Choice: c, Status: Continued}
	switch e.Kind {
	case event.RandomFinancial:
		res.Penalty = s.settleRandomEvent(e, c)
	case event.HighSchoolGraduation:
		err = s.graduateHighSchool(c, item)
	case event.CollegeGraduation, event.FirstJob:
		if c.Option == event.OptTakeJob {
			s.employ(item.Name, item.Value)
		}
	case event.CarPurchase:
		if c.Option == event.OptBuy {
			err = s.buyCar(item, c.Source)
		}
	case event.HousePurchase:
		if c.Option == event.OptBuy {
			err = s.buyHouse(item, c.Source)
		}
	case event.FamilyPlanning:
		s.startFamily(c.Option)
	}
	if err != nil {
		return Resolution{}, err
	}

	s.pending = nil
	s.state = Running
	s.mustHold()
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"event":  e.Name,
		"option": c.Option,
		"item":   c.Item,
		"source": c.Source,
	}).Info("choice resolved")

	if s.retirementDue() {
		s.end(ReasonRetirement)
		res.Status, res.Reason = Ended, s.reason
	}
	return res, nil
}

func (s *Session) settleRandomEvent(e *event.Event, c event.Choice) *Penalty {
	if e.CashDelta.IsPositive() {
		s.player.Cash = s.player.Cash.Add(e.CashDelta)
		return nil
	}
	owed := e.CashDelta.Neg()
	if out := fund.ResolveFrom(s.player, owed, c.Source, s.Tick()); out.Paid {
		return nil
	}
	pen := s.penalize(MissedRandomEvent, s.rules.Penalties.RandomEvent, owed)
	return &pen
}

// payExplicit takes amount from a single named source or fails without mutating anything.
func (s *Session) payExplicit(amount decimal.Decimal, src fund.Source) error {
	if !fund.Pay(s.player, amount, src, s.Tick()) {
		return fmt.Errorf("%w: %w: %s cannot cover %s", ErrInvalidChoice, ErrInsufficientFunds, src, amount.StringFixed(2))
	}
	return nil
}

func (s *Session) borrow(kind model.LoanKind, principal, rate decimal.Decimal, years int) error {
	l, err := calculator.NewLoan(kind, principal, rate, years)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.player.Loans = append(s.player.Loans, l)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"loan_id": l.ID,
		"kind":    kind,
		"amount":  principal.StringFixed(2),
	}).Info("loan taken")
	return nil
}

func (s *Session) graduateHighSchool(c event.Choice, job event.Item) error {
	switch c.Option {
	case event.OptCollege:
		loan := collegeTotal
		if c.Source != fund.SourceLoan {
			if err := s.payExplicit(collegeYear, c.Source); err != nil {
				return err
			}
			loan = collegeTotal.Sub(collegeYear)
		}
		if err := s.borrow(model.StudentLoan, loan, studentLoanRate, studentLoanYears); err != nil {
			return err
		}
		s.player.Education = model.CollegeInProgress
	case event.OptTradeSchool:
		if c.Source == fund.SourceLoan {
			if err := s.borrow(model.StudentLoan, tradeSchoolCost, studentLoanRate, studentLoanYears); err != nil {
				return err
			}
		} else if err := s.payExplicit(tradeSchoolCost, c.Source); err != nil {
			return err
		}
		s.player.Education = model.TradeSchool
	case event.OptWork:
		s.player.Education = model.HighSchoolGraduate
		s.employ(job.Name, job.Value)
	}
	return nil
}

func (s *Session) employ(title string, salary decimal.Decimal) {
	s.player.Employment = &model.Employment{Title: title, AnnualSalary: salary}
	s.offers = nil
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"title":  title,
		"salary": salary.StringFixed(0),
	}).Info("hired")
}

func (s *Session) buyCar(car event.Item, src fund.Source) error {
	if src == fund.SourceLoan {
		rate := calculator.AutoLoanRate(s.player.CreditScore)
		if err := s.borrow(model.AutoLoan, car.Value, rate, autoLoanYears); err != nil {
			return err
		}
	} else if err := s.payExplicit(car.Value, src); err != nil {
		return err
	}
	s.player.Assets = append(s.player.Assets, model.NewAsset(model.Car, car.Name, car.Value))
	return nil
}

func (s *Session) buyHouse(house event.Item, src fund.Source) error {
	down := house.Value.Mul(downPaymentShare)
	if err := s.payExplicit(down, src); err != nil {
		return err
	}
	rate := calculator.MortgageRate(s.player.CreditScore)
	if err := s.borrow(model.Mortgage, house.Value.Sub(down), rate, mortgageYears); err != nil {
		return err
	}
	s.player.Assets = append(s.player.Assets, model.NewAsset(model.House, house.Name, house.Value))
	return nil
}

func (s *Session) startFamily(opt event.OptionID) {
	if opt == event.OptDecline {
		return
	}
	p := s.player
	spouse := model.FamilyMember{
		Relation: model.Spouse,
		Age:      p.Age + s.rng.Intn(2*spouseAgeSpread+1) - spouseAgeSpread,
		Income:   decimal.Zero,
	}
	if s.rng.Float64() < spouseIncomeOdds {
		factor := decimal.NewFromFloat(0.5 + s.rng.Float64())
		spouse.Income = p.Salary().Mul(factor).Round(0)
	}
	p.Family = append(p.Family, spouse)

	if opt == event.OptMarryWithChildren {
		kids := 1 + s.rng.Intn(maxChildren)
		for i := 0; i < kids; i++ {
			p.Family = append(p.Family, model.FamilyMember{
				Relation: model.Child,
				Name:     fmt.Sprintf("Child %d", i+1),
				Income:   decimal.Zero,
			})
		}
	}
	s.log.WithFields(s.fields()).WithField("members", len(p.Family)).Info("family started")
}
