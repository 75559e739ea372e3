package sim

import (
	"fmt"
	"io"
	"math/rand"

	"MoneySmartz/internal/calculator"
	"MoneySmartz/internal/event"
	"MoneySmartz/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// State of the monthly tick machine.
type State int

const (
	Running State = iota
	AwaitingChoice
	Terminal
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingChoice:
		return "awaiting_choice"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ReasonRetirement is the only terminal reason the core produces.
const ReasonRetirement = "retirement"

// Session owns one player's life. It is not safe for concurrent use; callers serialize access.
type Session struct {
	player *model.Player
	month  int
	year   int

	state   State
	pending *event.Event
	reason  string
	fired   map[event.Kind]bool
	offers  []JobOffer

	rules    Rules
	registry event.Registry
	rng      event.Rand
	log      *logrus.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the random source used for every draw.
func WithRand(r event.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds a math/rand source.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

func WithLogger(l *logrus.Logger) Option {
	return func(s *Session) { s.log = l }
}

func WithRules(r Rules) Option {
	return func(s *Session) { s.rules = r }
}

// WithRegistry replaces the random event registry.
func WithRegistry(r event.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// New starts a session for p at month 1 of year 0.
func New(p *model.Player, opts ...Option) *Session {
	s := &Session{
		player:   p,
		month:    1,
		state:    Running,
		fired:    make(map[event.Kind]bool),
		rules:    DefaultRules(),
		registry: event.DefaultRegistry,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if s.log == nil {
		s.log = logrus.New()
		s.log.SetOutput(io.Discard)
	}
	s.mustHold()
	return s
}

func (s *Session) State() State { return s.state }

// Pending returns the event awaiting a choice, or nil.
func (s *Session) Pending() *event.Event { return s.pending }

// Reason is why the session ended; empty while it is still running.
func (s *Session) Reason() string { return s.reason }

func (s *Session) Month() int { return s.month }
func (s *Session) Year() int  { return s.year }

// Tick is the logical timestamp stamped on transactions.
func (s *Session) Tick() model.Tick {
	return model.Tick(s.year*12 + s.month - 1)
}

// Snapshot returns a deep copy of the player.
func (s *Session) Snapshot() *model.Player { return s.player.Clone() }

// NetWorth is recomputed from the ledgers on every call.
func (s *Session) NetWorth() calculator.NetWorth {
	return calculator.CalculateNetWorth(s.player)
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules { return s.rules }

func (s *Session) fields() logrus.Fields {
	return logrus.Fields{
		"player": s.player.Name,
		"year":   s.year,
		"month":  s.month,
		"age":    s.player.Age,
	}
}

// mustHold panics when a ledger invariant is broken. That is always a bug in this package.
func (s *Session) mustHold() {
	if err := s.player.CheckInvariants(); err != nil {
		panic(fmt.Sprintf("sim: invariant violated: %v", err))
	}
}

// live guards every command that mutates the player.
func (s *Session) live() error {
	if s.state == Terminal {
		return ErrGameOver
	}
	return nil
}

func (s *Session) end(reason string) {
	s.state = Terminal
	s.reason = reason
	s.pending = nil
	s.log.WithFields(s.fields()).WithField("reason", reason).Info("session ended")
}

func (s *Session) pause(e *event.Event) {
	s.state = AwaitingChoice
	s.pending = e
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"event": e.Name,
		"kind":  e.Kind,
	}).Info("event awaiting choice")
}

// penalize lowers the credit score and returns what was applied.
func (s *Session) penalize(reason PenaltyReason, points int, amount decimal.Decimal) Penalty {
	applied := adjustScore(s.player, -points)
	s.log.WithFields(s.fields()).WithFields(logrus.Fields{
		"reason": reason,
		"amount": amount.StringFixed(2),
		"points": applied,
	}).Warn("payment missed")
	return Penalty{Reason: reason, Amount: amount, Points: applied}
}

func validAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrValidation, amount)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: amount %s exceeds %s", ErrValidation, amount, MaxAmount)
	}
	return nil
}
