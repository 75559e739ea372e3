package sim

import (
	"fmt"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Player actions may be taken between ticks, including while an event is pending.

const creditCardMinAge = 18

var (
	personalLoanRate  = decimal.RequireFromString("0.10")
	personalLoanYears = 3
)

func (s *Session) OpenBankAccount(kind model.AccountKind) error {
	if err := s.live(); err != nil {
		return err
	}
	if s.player.BankAccount != nil {
		return fmt.Errorf("%w: bank account", ErrAlreadyExists)
	}
	if kind != model.Checking && kind != model.Savings {
		return fmt.Errorf("%w: unknown account kind %q", ErrValidation, kind)
	}
	s.player.BankAccount = model.NewBankAccount(kind)
	s.log.WithFields(s.fields()).WithField("kind", kind).Info("bank account opened")
	return nil
}

// Deposit moves cash into the bank account.
func (s *Session) Deposit(amount decimal.Decimal) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	p := s.player
	if p.BankAccount == nil {
		return ErrNoBankAccount
	}
	if p.Cash.LessThan(amount) {
		return fmt.Errorf("%w: cash %s", ErrInsufficientFunds, p.Cash.StringFixed(2))
	}
	p.Cash = p.Cash.Sub(amount)
	if err := p.BankAccount.Deposit(amount, s.Tick()); err != nil {
		return err
	}
	s.mustHold()
	return nil
}

// Withdraw moves money from the bank account to cash.
func (s *Session) Withdraw(amount decimal.Decimal) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	p := s.player
	if p.BankAccount == nil {
		return ErrNoBankAccount
	}
	if err := p.BankAccount.Withdraw(amount, s.Tick()); err != nil {
		return fmt.Errorf("%w: %w", ErrInsufficientFunds, err)
	}
	p.Cash = p.Cash.Add(amount)
	s.mustHold()
	return nil
}

// GetDebitCard links a debit card to the bank account.
func (s *Session) GetDebitCard() error {
	if err := s.live(); err != nil {
		return err
	}
	if s.player.BankAccount == nil {
		return ErrNoBankAccount
	}
	if s.player.DebitCard != nil {
		return fmt.Errorf("%w: debit card", ErrAlreadyExists)
	}
	s.player.DebitCard = model.NewDebitCard()
	return nil
}

// ApplyForCreditCard issues a card whose limit depends on salary and credit score.
func (s *Session) ApplyForCreditCard() (decimal.Decimal, error) {
	if err := s.live(); err != nil {
		return decimal.Zero, err
	}
	p := s.player
	if p.CreditCard != nil {
		return decimal.Zero, fmt.Errorf("%w: credit card", ErrAlreadyExists)
	}
	if p.Age < creditCardMinAge {
		return decimal.Zero, fmt.Errorf("%w: must be at least %d", ErrNotEligible, creditCardMinAge)
	}
	if !p.Employed() {
		return decimal.Zero, fmt.Errorf("%w: a job is required", ErrNotEligible)
	}
	limit := calculator.CreditLimit(p.Salary(), p.CreditScore)
	p.CreditCard = model.NewCreditCard(limit)
	s.log.WithFields(s.fields()).WithField("limit", limit.StringFixed(0)).Info("credit card approved")
	return limit, nil
}

// PayCreditCard pays down the card from cash or bank. Paying at least the minimum earns a bonus.
func (s *Session) PayCreditCard(amount decimal.Decimal, src fund.Source) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	card := s.player.CreditCard
	if card == nil {
		return fmt.Errorf("%w: credit card", ErrNotFound)
	}
	if amount.GreaterThan(card.Balance) {
		return fmt.Errorf("%w: payment %s exceeds balance %s", ErrValidation, amount, card.Balance)
	}
	if src == fund.SourceCredit || src == fund.SourceLoan {
		return fmt.Errorf("%w: cannot pay a credit card from %s", ErrValidation, src)
	}
	minimum := calculator.MinimumCardPayment(card.Balance)
	if out := fund.ResolveFrom(s.player, amount, src, s.Tick(), fund.CardChain...); !out.Paid {
		return ErrInsufficientFunds
	}
	if err := card.Pay(amount, s.Tick()); err != nil {
		panic(err)
	}
	if amount.GreaterThanOrEqual(minimum) {
		adjustScore(s.player, s.rules.CardPaymentBonus)
	}
	s.mustHold()
	return nil
}

// TakeLoan borrows principal into cash.
func (s *Session) TakeLoan(kind model.LoanKind, principal, rate decimal.Decimal, termYears int) (*model.Loan, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	switch kind {
	case model.StudentLoan, model.AutoLoan, model.Mortgage, model.PersonalLoan:
	default:
		return nil, fmt.Errorf("%w: unknown loan kind %q", ErrValidation, kind)
	}
	if err := validAmount(principal); err != nil {
		return nil, err
	}
	l, err := calculator.NewLoan(kind, principal, rate, termYears)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	s.player.Loans = append(s.player.Loans, l)
	s.player.Cash = s.player.Cash.Add(principal)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"loan_id": l.ID,
		"kind":    kind,
		"amount":  principal.StringFixed(2),
	}).Info("loan taken")
	s.mustHold()
	return l, nil
}

// MakeExtraLoanPayment pays toward a loan outside the monthly schedule. Amounts above the payoff
// are capped at the payoff.
func (s *Session) MakeExtraLoanPayment(loanID string, amount decimal.Decimal, src fund.Source) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	l, _ := s.player.FindLoan(loanID)
	if l == nil {
		return fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
	}
	if src == fund.SourceLoan {
		return fmt.Errorf("%w: cannot repay a loan with a loan", ErrValidation)
	}
	amount = decimal.Min(amount, calculator.PayoffAmount(l))
	if out := fund.ResolveFrom(s.player, amount, src, s.Tick(), fund.LoanChain...); !out.Paid {
		return ErrInsufficientFunds
	}
	if _, err := calculator.ApplyPayment(l, amount, s.Tick()); err != nil {
		panic(err)
	}
	if l.PaidOff() {
		s.retireLoan(l)
	}
	s.mustHold()
	return nil
}

// BuyAsset purchases an asset outright or, with SourceLoan, finances all of it.
func (s *Session) BuyAsset(kind model.AssetKind, name string, value decimal.Decimal, src fund.Source) (*model.Asset, error) {
	if err := s.live(); err != nil {
		return nil, err
	}
	switch kind {
	case model.Car, model.House, model.Other:
	default:
		return nil, fmt.Errorf("%w: unknown asset kind %q", ErrValidation, kind)
	}
	if err := validAmount(value); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: asset name is required", ErrValidation)
	}
	if src == fund.SourceLoan {
		loanKind, rate, years := s.financing(kind)
		if err := s.borrow(loanKind, value, rate, years); err != nil {
			return nil, err
		}
	} else if out := fund.ResolveFrom(s.player, value, src, s.Tick()); !out.Paid {
		return nil, ErrInsufficientFunds
	}
	a := model.NewAsset(kind, name, value)
	s.player.Assets = append(s.player.Assets, a)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"asset": name,
		"value": value.StringFixed(2),
	}).Info("asset bought")
	s.mustHold()
	return a, nil
}

func (s *Session) financing(kind model.AssetKind) (model.LoanKind, decimal.Decimal, int) {
	switch kind {
	case model.Car:
		return model.AutoLoan, calculator.AutoLoanRate(s.player.CreditScore), autoLoanYears
	case model.House:
		return model.Mortgage, calculator.MortgageRate(s.player.CreditScore), mortgageYears
	}
	return model.PersonalLoan, personalLoanRate, personalLoanYears
}

// RepairAsset pays cost and restores the asset to Good condition.
func (s *Session) RepairAsset(assetID string, cost decimal.Decimal, src fund.Source) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := validAmount(cost); err != nil {
		return err
	}
	a := s.player.FindAsset(assetID)
	if a == nil {
		return fmt.Errorf("%w: asset %s", ErrNotFound, assetID)
	}
	if src == fund.SourceLoan {
		return fmt.Errorf("%w: repairs cannot be financed", ErrValidation)
	}
	if out := fund.ResolveFrom(s.player, cost, src, s.Tick()); !out.Paid {
		return ErrInsufficientFunds
	}
	a.Repair()
	s.mustHold()
	return nil
}

// BuyItem buys a shop item. Subscription items add an open-ended recurring bill.
func (s *Session) BuyItem(key string, src fund.Source) error {
	if err := s.live(); err != nil {
		return err
	}
	it, ok := event.Find(event.ShopItems, key)
	if !ok {
		return fmt.Errorf("%w: shop item %q", ErrNotFound, key)
	}
	if src == fund.SourceLoan {
		return fmt.Errorf("%w: shop items cannot be financed", ErrValidation)
	}
	if out := fund.ResolveFrom(s.player, it.Value, src, s.Tick()); !out.Paid {
		return ErrInsufficientFunds
	}
	p := s.player
	p.Inventory = append(p.Inventory, it.Name)
	if it.Bill != nil {
		p.RecurringBills = append(p.RecurringBills, *it.Bill)
	}
	s.mustHold()
	return nil
}

// Retire ends the session early. It is allowed from the minimum retirement age.
func (s *Session) Retire() error {
	if err := s.live(); err != nil {
		return err
	}
	if s.player.Age < s.rules.MinRetirementAge {
		return fmt.Errorf("%w: retirement starts at %d", ErrNotEligible, s.rules.MinRetirementAge)
	}
	s.end(ReasonRetirement)
	return nil
}
