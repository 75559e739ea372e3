package notifier

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/model"
	"MoneySmartz/internal/sim"
	"MoneySmartz/internal/strategy"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func testPlayer() *model.Player {
	p := model.NewPlayer("Alex", 25, decimal.NewFromInt(1500), 700)
	p.Employment = &model.Employment{Title: "Accountant", AnnualSalary: decimal.NewFromInt(60000)}
	p.BankAccount = model.NewBankAccount(model.Checking)
	p.BankAccount.Balance = decimal.NewFromInt(3000)
	p.Assets = append(p.Assets, model.NewAsset(model.Car, "Used Economy Car", decimal.NewFromInt(15000)))
	return p
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$12.50", money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "-$300.00", money(decimal.NewFromInt(-300)))
}

func TestFormatStatus(t *testing.T) {
	out := FormatStatus(testPlayer(), 9, 3)
	assert.Contains(t, out, "Alex | Mar, Year 9 | age 25")
	assert.Contains(t, out, "Accountant ($60000.00/yr)")
	assert.Contains(t, out, "Bank (Checking): $3000.00")
	assert.Contains(t, out, "Credit score: 700")
}

func TestFormatStatus_CardInterestIsAdvisory(t *testing.T) {
	p := testPlayer()
	p.CreditCard = model.NewCreditCard(decimal.NewFromInt(2000))
	p.CreditCard.Balance = decimal.NewFromInt(1000)
	out := FormatStatus(p, 1, 1)
	assert.Contains(t, out, "Credit card: $1000.00 of $2000.00")
	assert.Contains(t, out, "at 18% APR this would cost $15.00/mo")
}

func TestFormatLoans_ListsEachLoan(t *testing.T) {
	p := testPlayer()
	l, err := calculator.NewLoan(model.StudentLoan, decimal.NewFromInt(10000), decimal.RequireFromString("0.05"), 5)
	require.NoError(t, err)
	p.Loans = append(p.Loans, l)
	out := FormatLoans(p)
	assert.Contains(t, out, "Student "+l.ID.String()[:8]+": $10000.00 left of $10000.00, $188.71/mo at 5.00%")
	assert.Contains(t, out, "payments to go")
}

func TestFormatNetWorth(t *testing.T) {
	out := FormatNetWorth(testPlayer())
	assert.Contains(t, out, "Total:       $19500.00 (Breaking Even)")
}

func TestFormatLoansAndAssets(t *testing.T) {
	p := testPlayer()
	assert.Equal(t, "🏦 No outstanding loans", FormatLoans(p))
	assert.Contains(t, FormatAssets(p), "Used Economy Car (Car, Good): worth $15000.00")
}

func TestFormatEvent(t *testing.T) {
	e := event.NewCarPurchase(0)
	out := FormatEvent(e, event.Choice{Option: event.OptBuy, Item: "used_economy", Source: fund.SourceLoan})
	assert.True(t, strings.HasPrefix(out, "📣 "+e.Name))
	assert.Contains(t, out, "→ buy used_economy (loan)")
}

func TestFormatPenalties(t *testing.T) {
	assert.Empty(t, FormatPenalties(1, 1, nil))
	out := FormatPenalties(1, 12, []sim.Penalty{{Reason: sim.MissedLivingExpenses, Amount: decimal.NewFromInt(1000), Points: -20}})
	assert.Contains(t, out, "Dec, Year 1")
	assert.Contains(t, out, "living_expenses: $1000.00 (-20)")
}

func TestFormatYearSummaryAndFinal(t *testing.T) {
	p := testPlayer()
	as := strategy.Evaluate(p, decimal.NewFromInt(1200))
	out := FormatYearSummary(p, 9, as)
	assert.Contains(t, out, "Year 9 | age 25")
	assert.Contains(t, out, as.Tier.Label)

	final := FormatFinalReport(p, 49, sim.ReasonRetirement)
	assert.Contains(t, final, "Alex ended at age 25 after 49 years (retirement)")
	assert.Contains(t, final, "Rating: Breaking Even")
}

func TestConsoleNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, quietLogger())
	require.NoError(t, n.SendWithRetry(context.Background(), "hello", 2))
	assert.Equal(t, "hello\n\n", buf.String())
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("closed")
}

func TestConsoleNotifier_RetryExhausted(t *testing.T) {
	w := &failingWriter{}
	log, hook := test.NewNullLogger()
	n := &ConsoleNotifier{Out: w, Backoff: time.Millisecond, Log: log}
	err := n.SendWithRetry(context.Background(), "hello", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 retries exhausted")
	assert.Equal(t, 3, w.calls)
	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "notification failed, retrying", hook.LastEntry().Message)
}

func TestConsoleNotifier_RetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n := &ConsoleNotifier{Out: &failingWriter{}, Backoff: time.Hour, Log: quietLogger()}
	assert.ErrorIs(t, n.SendWithRetry(ctx, "hello", 5), context.Canceled)
}

func TestStartPolling(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, quietLogger())
	var got []string
	n.StartPolling(context.Background(), strings.NewReader("status\n\n  loans  \nquiet\n"), func(cmd string) string {
		got = append(got, cmd)
		if cmd == "quiet" {
			return ""
		}
		return "reply:" + cmd
	})
	assert.Equal(t, []string{"status", "loans", "quiet"}, got)
	assert.Equal(t, "reply:status\n\nreply:loans\n\n", buf.String())
}
