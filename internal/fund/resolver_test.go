package fund

import (
	"testing"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newPlayer(cash, bank, limit, owed string) *model.Player {
	p := model.NewPlayer("Alex", 25, d(cash), 650)
	if bank != "" {
		p.BankAccount = model.NewBankAccount(model.Checking)
		if d(bank).IsPositive() {
			_ = p.BankAccount.Deposit(d(bank), 0)
		}
	}
	if limit != "" {
		p.CreditCard = model.NewCreditCard(d(limit))
		if owed != "" {
			_ = p.CreditCard.Charge(d(owed), 0)
		}
	}
	return p
}

func TestResolve_Priority(t *testing.T) {
	tests := []struct {
		msg    string
		player *model.Player
		amount string
		source Source
		paid   bool
	}{
		{"cash covers", newPlayer("100", "1000", "1000", ""), "100", SourceCash, true},
		{"bank when cash short", newPlayer("50", "1000", "1000", ""), "100", SourceBank, true},
		{"credit when bank short", newPlayer("50", "60", "1000", ""), "100", SourceCredit, true},
		{"credit exactly at limit", newPlayer("0", "", "1000", "900"), "100", SourceCredit, true},
		{"credit over limit", newPlayer("0", "", "1000", "950"), "100", "", false},
		{"nothing available", newPlayer("30", "", "", ""), "50", "", false},
	}
	for _, tt := range tests {
		out := Resolve(tt.player, d(tt.amount), 1)
		assert.Equal(t, tt.paid, out.Paid, tt.msg)
		assert.Equal(t, tt.source, out.Source, tt.msg)
		require.NoError(t, tt.player.CheckInvariants(), tt.msg)
	}
}

func TestResolve_BankBeforeCreditLeavesCashUntouched(t *testing.T) {
	p := newPlayer("40", "500", "1000", "")

	out := Resolve(p, d("100"), 3)

	require.True(t, out.Paid)
	assert.Equal(t, SourceBank, out.Source)
	assert.True(t, p.Cash.Equal(d("40")))
	assert.True(t, p.BankAccount.Balance.Equal(d("400")))
	assert.True(t, p.CreditCard.Balance.IsZero())
	last := p.BankAccount.History[len(p.BankAccount.History)-1]
	assert.Equal(t, model.TxWithdrawal, last.Kind)
	assert.Equal(t, model.Tick(3), last.At)
}

func TestResolve_NoPartialPayment(t *testing.T) {
	p := newPlayer("30", "20", "10", "")

	out := Resolve(p, d("50"), 1)

	assert.False(t, out.Paid)
	assert.True(t, p.Cash.Equal(d("30")))
	assert.True(t, p.BankAccount.Balance.Equal(d("20")))
	assert.True(t, p.CreditCard.Balance.IsZero())
}

func TestResolve_CardChainSkipsCredit(t *testing.T) {
	p := newPlayer("0", "", "1000", "")
	out := Resolve(p, d("25"), 1, CardChain...)
	assert.False(t, out.Paid)
	assert.True(t, p.CreditCard.Balance.IsZero())
}

func TestResolveFrom_ExplicitSource(t *testing.T) {
	p := newPlayer("1000", "1000", "", "")

	out := ResolveFrom(p, d("200"), SourceBank, 1)
	require.True(t, out.Paid)
	assert.True(t, p.Cash.Equal(d("1000")))
	assert.True(t, p.BankAccount.Balance.Equal(d("800")))

	out = ResolveFrom(p, d("200"), SourceCredit, 1)
	assert.False(t, out.Paid)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource("")
	require.NoError(t, err)
	assert.Equal(t, SourceAuto, s)

	s, err = ParseSource("bank")
	require.NoError(t, err)
	assert.Equal(t, SourceBank, s)

	_, err = ParseSource("piggy")
	assert.Error(t, err)
}

func TestAdjustCreditScore_Clamps(t *testing.T) {
	p := model.NewPlayer("Alex", 25, decimal.Zero, 840)
	assert.Equal(t, 10, AdjustCreditScore(p, 20))
	assert.Equal(t, 850, p.CreditScore)

	p.CreditScore = 310
	assert.Equal(t, -10, AdjustCreditScore(p, -30))
	assert.Equal(t, 300, p.CreditScore)

	p.CreditScore = 650
	assert.Equal(t, -20, AdjustCreditScore(p, -20))
	assert.Equal(t, 630, p.CreditScore)
}
