package fund

import (
	"fmt"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
)

// Source is a place money can be taken from.
type Source string

const (
	// SourceAuto walks a fallback chain instead of naming one source.
	SourceAuto   Source = "auto"
	SourceCash   Source = "cash"
	SourceBank   Source = "bank"
	SourceCredit Source = "credit"
	// SourceLoan finances a purchase; it is never part of a payment chain.
	SourceLoan Source = "loan"
)

// ParseSource validates a source name coming from outside the core.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceAuto, SourceCash, SourceBank, SourceCredit, SourceLoan:
		return Source(s), nil
	case "":
		return SourceAuto, nil
	}
	return "", fmt.Errorf("unknown payment source %q", s)
}

// Fallback chains, tried in order.
var (
	// ExpenseChain settles expenses and events.
	ExpenseChain = []Source{SourceCash, SourceBank, SourceCredit}
	// LoanChain services loan installments.
	LoanChain = []Source{SourceCash, SourceBank, SourceCredit}
	// CardChain pays the credit card; credit cannot pay itself.
	CardChain = []Source{SourceCash, SourceBank}
)

// Outcome reports whether an amount was settled and from where.
type Outcome struct {
	Paid   bool
	Source Source
	Amount decimal.Decimal
}

// Unpaid is the outcome when no source could cover the amount.
func Unpaid(amount decimal.Decimal) Outcome { return Outcome{Amount: amount} }

// CanPay reports whether source alone covers amount in full.
func CanPay(p *model.Player, amount decimal.Decimal, source Source) bool {
	switch source {
	case SourceCash:
		return p.Cash.GreaterThanOrEqual(amount)
	case SourceBank:
		return p.BankAccount != nil && p.BankAccount.Balance.GreaterThanOrEqual(amount)
	case SourceCredit:
		return p.CreditCard != nil && p.CreditCard.CanCharge(amount)
	}
	return false
}

// Pay takes amount from a single source. It is all-or-nothing.
func Pay(p *model.Player, amount decimal.Decimal, source Source, at model.Tick) bool {
	if !amount.IsPositive() || !CanPay(p, amount, source) {
		return false
	}
	switch source {
	case SourceCash:
		p.Cash = p.Cash.Sub(amount)
		return true
	case SourceBank:
		return p.BankAccount.Withdraw(amount, at) == nil
	case SourceCredit:
		return p.CreditCard.Charge(amount, at) == nil
	}
	return false
}

// Resolve settles amount from the first source in chain that covers it in full.
// With no chain given it uses ExpenseChain.
func Resolve(p *model.Player, amount decimal.Decimal, at model.Tick, chain ...Source) Outcome {
	if len(chain) == 0 {
		chain = ExpenseChain
	}
	for _, src := range chain {
		if Pay(p, amount, src, at) {
			return Outcome{Paid: true, Source: src, Amount: amount}
		}
	}
	return Unpaid(amount)
}

// ResolveFrom pays from an explicit source, or walks chain when source is SourceAuto.
func ResolveFrom(p *model.Player, amount decimal.Decimal, source Source, at model.Tick, chain ...Source) Outcome {
	if source == SourceAuto || source == "" {
		return Resolve(p, amount, at, chain...)
	}
	if Pay(p, amount, source, at) {
		return Outcome{Paid: true, Source: source, Amount: amount}
	}
	return Unpaid(amount)
}

// AdjustCreditScore applies delta and keeps the score within [300, 850]. It returns the delta
// actually applied.
func AdjustCreditScore(p *model.Player, delta int) int {
	before := p.CreditScore
	score := before + delta
	if score > model.MaxCreditScore {
		score = model.MaxCreditScore
	}
	if score < model.MinCreditScore {
		score = model.MinCreditScore
	}
	p.CreditScore = score
	return score - before
}
