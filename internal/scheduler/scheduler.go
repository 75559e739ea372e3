package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/fund"
	"MoneySmartz/internal/notifier"
	"MoneySmartz/internal/recorder"
	"MoneySmartz/internal/sim"
	"MoneySmartz/internal/strategy"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler plays one session on a cron cadence: one tick per firing, with the autopilot
// answering events and tidying the ledgers between ticks.
type Scheduler struct {
	Cron     *cron.Cron
	Session  *sim.Session
	Pilot    *strategy.Autopilot
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context
	// ID tags every recorded row.
	ID  string
	Log *logrus.Logger

	mu       sync.Mutex
	done     chan struct{}
	finished bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, id string, sess *sim.Session, pilot *strategy.Autopilot,
	n notifier.Notifier, rec recorder.Recorder, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Session:  sess,
		Pilot:    pilot,
		Notifier: n,
		Recorder: rec,
		Ctx:      ctx,
		ID:       id,
		Log:      log,
		done:     make(chan struct{}),
	}
}

// Register schedules the monthly tick.
func (s *Scheduler) Register(tickCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.WithField("session", s.ID).Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Log.WithField("session", s.ID).Info("scheduler stopped")
}

// Done is closed once the session has ended.
func (s *Scheduler) Done() <-chan struct{} { return s.done }

// RunToCompletion ticks as fast as possible until the session ends or ctx is cancelled.
func (s *Scheduler) RunToCompletion(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		status, err := s.Step()
		if err != nil {
			return err
		}
		if status == sim.Ended {
			return nil
		}
	}
}

func (s *Scheduler) tickTask() {
	if _, err := s.Step(); err != nil {
		s.Log.WithError(err).Error("tick failed")
		s.trySend(fmt.Sprintf("❌ Tick failed: %v", err))
	}
}

// Step housekeeps, advances one month and resolves any event it raised.
func (s *Scheduler) Step() (sim.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return sim.Ended, nil
	}

	s.Pilot.Housekeep(s.Session)

	res, err := s.Session.AdvanceMonth()
	if errors.Is(err, sim.ErrGameOver) {
		s.finish()
		return sim.Ended, nil
	}
	if err != nil {
		return "", fmt.Errorf("advance month: %w", err)
	}

	status := res.Status
	s.recordTick(res.Report, status)
	s.recordPenalties(res.Report)
	if msg := notifier.FormatPenalties(res.Report.Year, res.Report.Month, res.Report.Penalties); msg != "" {
		s.trySend(msg)
	}
	if res.Report.Month == 1 {
		s.trySend(notifier.FormatYearSummary(s.Session.Snapshot(), res.Report.Year, s.Pilot.Assess(s.Session)))
	}

	if status == sim.Paused {
		r, err := s.resolve(res.Event, int(res.Report.Tick))
		if err != nil {
			return "", err
		}
		status = r.Status
	}
	if status == sim.Ended {
		s.finish()
	}
	return status, nil
}

// resolve answers e with the autopilot's choice. When that choice is refused it falls back to
// declining, and for an event without a decline branch to a student-loan financed college.
func (s *Scheduler) resolve(e *event.Event, tick int) (sim.Resolution, error) {
	choice := s.Pilot.Decide(s.Session.Snapshot(), e, s.Pilot.Assess(s.Session))
	candidates := []event.Choice{
		choice,
		{Option: event.OptDecline},
		{Option: event.OptCollege, Source: fund.SourceLoan},
	}

	var lastErr error
	for _, c := range candidates {
		r, err := s.Session.ResolveChoice(e.ID, c)
		if err != nil {
			if !errors.Is(err, sim.ErrInvalidChoice) {
				return sim.Resolution{}, fmt.Errorf("resolve %s: %w", e.Name, err)
			}
			lastErr = err
			s.Log.WithError(err).WithField("event", e.Name).Debug("choice refused")
			continue
		}
		s.recordEvent(r, tick)
		if r.Penalty != nil {
			s.recordPenalty(*r.Penalty, tick)
		}
		s.trySend(notifier.FormatEvent(e, r.Choice))
		return r, nil
	}
	return sim.Resolution{}, fmt.Errorf("resolve %s: %w", e.Name, lastErr)
}

func (s *Scheduler) finish() {
	if s.finished {
		return
	}
	s.finished = true
	p := s.Session.Snapshot()
	nw := calculator.CalculateNetWorth(p)
	if err := s.Recorder.RecordResult(&recorder.ResultRecord{
		SessionID:   s.ID,
		PlayerName:  p.Name,
		Age:         p.Age,
		Years:       s.Session.Year(),
		Reason:      s.Session.Reason(),
		NetWorth:    nw.Value,
		Rating:      nw.Rating,
		CreditScore: p.CreditScore,
	}); err != nil {
		s.Log.WithError(err).Error("record result")
	}
	s.trySend(notifier.FormatFinalReport(p, s.Session.Year(), s.Session.Reason()))
	s.Log.WithFields(logrus.Fields{
		"session":   s.ID,
		"net_worth": nw.Value.StringFixed(2),
		"rating":    nw.Rating,
	}).Info("session finished")
	close(s.done)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.Session.Snapshot()
	switch strings.ToLower(strings.TrimPrefix(command, "/")) {
	case "status":
		return notifier.FormatStatus(p, s.Session.Year(), s.Session.Month())
	case "networth":
		return notifier.FormatNetWorth(p)
	case "loans":
		return notifier.FormatLoans(p)
	case "assets":
		return notifier.FormatAssets(p)
	case "health":
		return notifier.FormatYearSummary(p, s.Session.Year(), s.Pilot.Assess(s.Session))
	default:
		return "Available commands:\n• status\n• networth\n• loans\n• assets\n• health"
	}
}

func (s *Scheduler) recordTick(rep sim.Report, status sim.Status) {
	p := s.Session.Snapshot()
	if err := s.Recorder.RecordTick(&recorder.TickRecord{
		SessionID:      s.ID,
		Tick:           int(rep.Tick),
		Year:           rep.Year,
		Month:          rep.Month,
		Age:            rep.Age,
		Status:         string(status),
		Cash:           p.Cash,
		BankBalance:    p.BankBalance(),
		CreditDebt:     p.CreditDebt(),
		LoanDebt:       p.LoanDebt(),
		AssetValue:     p.AssetValue(),
		NetWorth:       calculator.CalculateNetWorth(p).Value,
		CreditScore:    p.CreditScore,
		Income:         rep.Income,
		LivingExpenses: rep.LivingExpenses,
	}); err != nil {
		s.Log.WithError(err).Error("record tick")
	}
}

func (s *Scheduler) recordPenalties(rep sim.Report) {
	for _, pen := range rep.Penalties {
		s.recordPenalty(pen, int(rep.Tick))
	}
}

func (s *Scheduler) recordPenalty(pen sim.Penalty, tick int) {
	if err := s.Recorder.RecordPenalty(&recorder.PenaltyRecord{
		SessionID: s.ID,
		Tick:      tick,
		Reason:    string(pen.Reason),
		Amount:    pen.Amount,
		Points:    pen.Points,
	}); err != nil {
		s.Log.WithError(err).Error("record penalty")
	}
}

func (s *Scheduler) recordEvent(r sim.Resolution, tick int) {
	if err := s.Recorder.RecordEvent(&recorder.EventRecord{
		SessionID: s.ID,
		Tick:      tick,
		Kind:      string(r.Event.Kind),
		Name:      r.Event.Name,
		CashDelta: r.Event.CashDelta,
		Option:    string(r.Choice.Option),
		Item:      r.Choice.Item,
		Source:    string(r.Choice.Source),
	}); err != nil {
		s.Log.WithError(err).Error("record event")
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.WithError(err).Error("send notification")
	}
}
