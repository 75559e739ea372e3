package scheduler

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"MoneySmartz/internal/model"
	"MoneySmartz/internal/notifier"
	"MoneySmartz/internal/recorder"
	"MoneySmartz/internal/sim"
	"MoneySmartz/internal/strategy"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRecorder struct {
	mu        sync.Mutex
	ticks     []recorder.TickRecord
	events    []recorder.EventRecord
	penalties []recorder.PenaltyRecord
	results   []recorder.ResultRecord
}

func (m *memRecorder) RecordTick(r *recorder.TickRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks = append(m.ticks, *r)
	return nil
}

func (m *memRecorder) RecordEvent(r *recorder.EventRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *r)
	return nil
}

func (m *memRecorder) RecordPenalty(r *recorder.PenaltyRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.penalties = append(m.penalties, *r)
	return nil
}

func (m *memRecorder) RecordResult(r *recorder.ResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *r)
	return nil
}

func (m *memRecorder) Close() error { return nil }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestScheduler(t *testing.T, seed int64) (*Scheduler, *memRecorder, *bytes.Buffer) {
	t.Helper()
	p := model.NewPlayer("Alex", 16, decimal.NewFromInt(1000), 650)
	sess := sim.New(p, sim.WithSeed(seed))
	pilot := strategy.NewAutopilot(strategy.Config{CashBuffer: decimal.NewFromInt(500)}, quietLogger())
	var out bytes.Buffer
	rec := &memRecorder{}
	s := NewScheduler(context.Background(), "test-session", sess, pilot, notifier.NewConsoleNotifier(&out, quietLogger()), rec, quietLogger())
	return s, rec, &out
}

func TestRunToCompletion_PlaysAWholeLife(t *testing.T) {
	s, rec, out := newTestScheduler(t, 42)

	require.NoError(t, s.RunToCompletion(context.Background()))

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel not closed")
	}
	assert.Equal(t, sim.Terminal, s.Session.State())
	assert.Equal(t, sim.ReasonRetirement, s.Session.Reason())

	// 49 years from 16 to 65.
	assert.Len(t, rec.ticks, 49*12)
	require.Len(t, rec.results, 1)
	res := rec.results[0]
	assert.Equal(t, "test-session", res.SessionID)
	assert.Equal(t, 65, res.Age)
	assert.NotEmpty(t, res.Rating)

	// The high school graduation is always answered.
	var graduated bool
	for _, e := range rec.events {
		if e.Kind == "high_school_graduation" {
			graduated = true
		}
	}
	assert.True(t, graduated, "graduation event recorded")
	assert.Contains(t, out.String(), "🏁 Game over")
	assert.NotEqual(t, model.HighSchool, s.Session.Snapshot().Education)
}

func TestRunToCompletion_SameSeedSameLife(t *testing.T) {
	a, recA, _ := newTestScheduler(t, 7)
	b, recB, _ := newTestScheduler(t, 7)
	require.NoError(t, a.RunToCompletion(context.Background()))
	require.NoError(t, b.RunToCompletion(context.Background()))

	require.Len(t, recB.results, 1)
	assert.True(t, recA.results[0].NetWorth.Equal(recB.results[0].NetWorth))
	assert.Equal(t, len(recA.events), len(recB.events))
	assert.Equal(t, len(recA.penalties), len(recB.penalties))
}

func TestStep_AfterFinishIsIdempotent(t *testing.T) {
	s, rec, _ := newTestScheduler(t, 1)
	require.NoError(t, s.RunToCompletion(context.Background()))

	status, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, sim.Ended, status)
	assert.Len(t, rec.results, 1)
}

func TestRunToCompletion_Cancelled(t *testing.T) {
	s, rec, _ := newTestScheduler(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.RunToCompletion(ctx), context.Canceled)
	assert.Empty(t, rec.ticks)
}

func TestRegister_InvalidCron(t *testing.T) {
	s, _, _ := newTestScheduler(t, 1)
	assert.Error(t, s.Register("not a cron"))
	assert.NoError(t, s.Register("@every 1s"))
}

func TestHandleCommand(t *testing.T) {
	s, _, _ := newTestScheduler(t, 1)

	tests := []struct {
		command string
		want    string
	}{
		{"status", "Alex | Jan, Year 0 | age 16"},
		{"/networth", "Total:       $1000.00 (Breaking Even)"},
		{"loans", "No outstanding loans"},
		{"assets", "No assets"},
		{"health", "Financial health"},
		{"help", "Available commands"},
	}
	for _, tt := range tests {
		got := s.HandleCommand(tt.command)
		if !strings.Contains(got, tt.want) {
			t.Errorf("HandleCommand(%q) = %q, want it to contain %q", tt.command, got, tt.want)
		}
	}
}
