package notifier

import (
	"fmt"
	"strings"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"
	"MoneySmartz/internal/strategy"

	"github.com/shopspring/decimal"
)

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// money renders an amount as $1234.56 or -$1234.56.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func when(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("Year %d", year)
	}
	return fmt.Sprintf("%s, Year %d", monthNames[month-1], year)
}

// FormatStatus is the overview shown for the "status" command.
func FormatStatus(p *model.Player, year, month int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 %s | %s | age %d\n\n", p.Name, when(year, month), p.Age)
	fmt.Fprintf(&b, "Education: %s\n", p.Education)
	if p.Employed() {
		fmt.Fprintf(&b, "Job: %s (%s/yr)\n", p.Employment.Title, money(p.Employment.AnnualSalary))
	} else {
		b.WriteString("Job: unemployed\n")
	}
	fmt.Fprintf(&b, "Cash: %s\n", money(p.Cash))
	if p.BankAccount != nil {
		fmt.Fprintf(&b, "Bank (%s): %s\n", p.BankAccount.Kind, money(p.BankAccount.Balance))
	} else {
		b.WriteString("Bank: none\n")
	}
	if p.CreditCard != nil {
		fmt.Fprintf(&b, "Credit card: %s of %s\n", money(p.CreditCard.Balance), money(p.CreditCard.Limit))
		if interest := calculator.AdvisoryCardInterest(p.CreditCard); interest.IsPositive() {
			fmt.Fprintf(&b, "  at %s%% APR this would cost %s/mo\n",
				model.CreditCardAPR.Shift(2).StringFixed(0), money(interest.Round(2)))
		}
	}
	fmt.Fprintf(&b, "Loans: %d (%s owed)\n", len(p.Loans), money(p.LoanDebt()))
	fmt.Fprintf(&b, "Assets: %d (%s)\n", len(p.Assets), money(p.AssetValue()))
	if len(p.Family) > 0 {
		fmt.Fprintf(&b, "Family: %d\n", len(p.Family))
	}
	fmt.Fprintf(&b, "Credit score: %d\n", p.CreditScore)
	return b.String()
}

// FormatNetWorth renders the net worth breakdown.
func FormatNetWorth(p *model.Player) string {
	nw := calculator.CalculateNetWorth(p)
	var b strings.Builder
	b.WriteString("💰 Net worth\n\n")
	fmt.Fprintf(&b, "  Cash:        %s\n", money(p.Cash))
	fmt.Fprintf(&b, "  Bank:        %s\n", money(p.BankBalance()))
	fmt.Fprintf(&b, "  Assets:      %s\n", money(p.AssetValue()))
	fmt.Fprintf(&b, "  Credit debt: %s\n", money(p.CreditDebt().Neg()))
	fmt.Fprintf(&b, "  Loan debt:   %s\n", money(p.LoanDebt().Neg()))
	b.WriteString("  ─────────────────\n")
	fmt.Fprintf(&b, "  Total:       %s (%s)\n", money(nw.Value), nw.Rating)
	return b.String()
}

func FormatLoans(p *model.Player) string {
	if len(p.Loans) == 0 {
		return "🏦 No outstanding loans"
	}
	var b strings.Builder
	b.WriteString("🏦 Loans\n\n")
	for _, l := range p.Loans {
		fmt.Fprintf(&b, "  %s %s: %s left of %s, %s/mo at %s%%, ~%d payments to go\n",
			l.Kind, l.ID.String()[:8], money(l.Balance), money(l.OriginalAmount),
			money(l.MonthlyPayment), l.InterestRate.Shift(2).StringFixed(2), calculator.RemainingPayments(l))
	}
	return b.String()
}

func FormatAssets(p *model.Player) string {
	if len(p.Assets) == 0 {
		return "🏠 No assets"
	}
	var b strings.Builder
	b.WriteString("🏠 Assets\n\n")
	for _, a := range p.Assets {
		fmt.Fprintf(&b, "  %s (%s, %s): worth %s, bought for %s, %d yrs old\n",
			a.Name, a.Kind, a.Condition, money(a.CurrentValue), money(a.PurchaseValue), a.AgeYears)
	}
	return b.String()
}

// FormatEvent describes an event and the answer given to it.
func FormatEvent(e *event.Event, c event.Choice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📣 %s\n%s\n", e.Name, e.Description)
	if !e.CashDelta.IsZero() {
		fmt.Fprintf(&b, "Amount: %s\n", money(e.CashDelta))
	}
	fmt.Fprintf(&b, "→ %s", c.Option)
	if c.Item != "" {
		fmt.Fprintf(&b, " %s", c.Item)
	}
	if c.Source != "" {
		fmt.Fprintf(&b, " (%s)", c.Source)
	}
	return b.String()
}

// FormatPenalties lists missed payments; empty when there were none.
func FormatPenalties(year, month int, ps []sim.Penalty) string {
	if len(ps) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Missed payments in %s\n", when(year, month))
	for _, pen := range ps {
		fmt.Fprintf(&b, "  %s: %s (%+d)\n", pen.Reason, money(pen.Amount), pen.Points)
	}
	return b.String()
}

// FormatYearSummary is sent every January with the autopilot's health assessment.
func FormatYearSummary(p *model.Player, year int, as *strategy.Assessment) string {
	var b strings.Builder
	nw := calculator.CalculateNetWorth(p)
	fmt.Fprintf(&b, "📊 Year %d | age %d\n\n", year, p.Age)
	fmt.Fprintf(&b, "Net worth: %s (%s)\n", money(nw.Value), nw.Rating)
	fmt.Fprintf(&b, "Credit score: %d\n\n", p.CreditScore)

	b.WriteString("📈 Financial health:\n")
	for _, f := range as.Factors {
		fmt.Fprintf(&b, "  %s(%s): %+.0f (×%.2f) = %+.3f\n",
			f.Name, f.Commentary, f.RawScore, f.Weight, f.Weighted)
	}
	b.WriteString("  ─────────────────\n")
	fmt.Fprintf(&b, "  Total: %+.3f → %s\n", as.TotalScore, as.Tier.Label)
	return b.String()
}

// FormatFinalReport summarizes a finished life.
func FormatFinalReport(p *model.Player, years int, reason string) string {
	nw := calculator.CalculateNetWorth(p)
	var b strings.Builder
	b.WriteString("🏁 Game over\n\n")
	fmt.Fprintf(&b, "%s ended at age %d after %d years (%s)\n", p.Name, p.Age, years, reason)
	fmt.Fprintf(&b, "Education: %s\n", p.Education)
	if p.Employed() {
		fmt.Fprintf(&b, "Last job: %s\n", p.Employment.Title)
	}
	fmt.Fprintf(&b, "Credit score: %d\n", p.CreditScore)
	fmt.Fprintf(&b, "Net worth: %s\n", money(nw.Value))
	fmt.Fprintf(&b, "Rating: %s\n", nw.Rating)
	return b.String()
}
