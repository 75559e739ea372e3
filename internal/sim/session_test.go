package sim

import (
	"testing"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New(model.NewPlayer("Alex", 16, d("100"), 650))
	assert.Equal(t, Running, s.State())
	assert.Equal(t, 1, s.Month())
	assert.Equal(t, 0, s.Year())
	assert.Equal(t, model.Tick(0), s.Tick())
	assert.Equal(t, DefaultRules(), s.Rules())
	assert.Nil(t, s.Pending())
}

func TestNew_PanicsOnBrokenLedger(t *testing.T) {
	p := player(20, "-1")
	assert.Panics(t, func() { New(p) })
}

func TestSnapshotIsDetached(t *testing.T) {
	p := player(30, "1000")
	p.BankAccount = model.NewBankAccount(model.Checking)
	s := newSession(p)

	snap := s.Snapshot()
	snap.Cash = d("999999")
	snap.BankAccount.Balance = d("5")
	snap.Inventory = append(snap.Inventory, "Yacht")

	fresh := s.Snapshot()
	assert.True(t, fresh.Cash.Equal(d("1000")))
	assert.True(t, fresh.BankBalance().IsZero())
	assert.Empty(t, fresh.Inventory)
}

func TestNetWorth(t *testing.T) {
	s := newSession(player(16, "0"))
	nw := s.NetWorth()
	assert.True(t, nw.Value.IsZero())
	assert.Equal(t, calculator.RatingBreaking, nw.Rating)
	assert.Equal(t, nw, s.NetWorth())

	_, err := s.TakeLoan(model.PersonalLoan, d("100000"), d("0.05"), 5)
	require.NoError(t, err)
	// borrowed cash and the debt cancel out
	assert.True(t, s.NetWorth().Value.IsZero())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "awaiting_choice", AwaitingChoice.String())
	assert.Equal(t, "terminal", Terminal.String())
}

func TestWithSeedIsReproducible(t *testing.T) {
	run := func() []Status {
		s := New(employed(25, "5000", 40000), WithSeed(42))
		var out []Status
		for i := 0; i < 24; i++ {
			res, err := s.AdvanceMonth()
			require.NoError(t, err)
			out = append(out, res.Status)
			if res.Status == Paused {
				break
			}
		}
		return out
	}
	assert.Equal(t, run(), run())
}
