package recorder

import "github.com/shopspring/decimal"

// TickRecord is the ledger state after one month.
type TickRecord struct {
	SessionID      string
	Tick           int
	Year           int
	Month          int
	Age            int
	Status         string // "continued", "paused" or "ended"
	Cash           decimal.Decimal
	BankBalance    decimal.Decimal
	CreditDebt     decimal.Decimal
	LoanDebt       decimal.Decimal
	AssetValue     decimal.Decimal
	NetWorth       decimal.Decimal
	CreditScore    int
	Income         decimal.Decimal
	LivingExpenses decimal.Decimal
}

// EventRecord is a resolved event and the answer given.
type EventRecord struct {
	SessionID string
	Tick      int
	Kind      string
	Name      string
	CashDelta decimal.Decimal
	Option    string
	Item      string
	Source    string
}

// PenaltyRecord is one credit-score deduction.
type PenaltyRecord struct {
	SessionID string
	Tick      int
	Reason    string
	Amount    decimal.Decimal
	Points    int
}

// ResultRecord is the final outcome of a life.
type ResultRecord struct {
	SessionID   string
	PlayerName  string
	Age         int
	Years       int
	Reason      string
	NetWorth    decimal.Decimal
	Rating      string
	CreditScore int
}

// Recorder persists simulation history for analysis.
type Recorder interface {
	RecordTick(rec *TickRecord) error
	RecordEvent(rec *EventRecord) error
	RecordPenalty(rec *PenaltyRecord) error
	RecordResult(rec *ResultRecord) error
	Close() error
}
