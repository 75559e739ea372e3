package sim

import (
	"testing"

	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// scripted replays fixed draws and returns 0 once a queue is empty.
type scripted struct {
	floats []float64
	ints   []int
}

func (r *scripted) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	f := r.floats[0]
	r.floats = r.floats[1:]
	return f
}

func (r *scripted) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	i := r.ints[0] % n
	r.ints = r.ints[1:]
	return i
}

// quietRules turns off random events and family planning.
func quietRules() Rules {
	r := DefaultRules()
	r.RandomEventChance = 0
	r.FamilyChance = 0
	return r
}

func newSession(p *model.Player, opts ...Option) *Session {
	base := []Option{WithRand(&scripted{}), WithRules(quietRules())}
	return New(p, append(base, opts...)...)
}

func player(age int, cash string) *model.Player {
	return model.NewPlayer("Alex", age, d(cash), 650)
}

func employed(age int, cash string, salary int64) *model.Player {
	p := player(age, cash)
	p.Education = model.HighSchoolGraduate
	p.Employment = &model.Employment{Title: "Clerk", AnnualSalary: decimal.NewFromInt(salary)}
	return p
}

// advanceUntilPaused ticks until the session stops running and returns the result and tick count.
func advanceUntilPaused(t *testing.T, s *Session, limit int) (TickResult, int) {
	t.Helper()
	for i := 1; i <= limit; i++ {
		res, err := s.AdvanceMonth()
		require.NoError(t, err)
		if res.Status != Continued {
			return res, i
		}
	}
	t.Fatalf("session still running after %d ticks", limit)
	return TickResult{}, 0
}
