package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists simulation history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	log *logrus.Logger
	mu  sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while a simulation writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			session_id      TEXT NOT NULL,
			tick            INTEGER,
			year            INTEGER,
			month           INTEGER,
			age             INTEGER,
			status          TEXT,
			cash            REAL,
			bank_balance    REAL,
			credit_debt     REAL,
			loan_debt       REAL,
			asset_value     REAL,
			net_worth       REAL,
			credit_score    INTEGER,
			income          REAL,
			living_expenses REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_session ON ticks(session_id, tick)`,

		`CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			tick        INTEGER,
			kind        TEXT,
			name        TEXT,
			cash_delta  REAL,
			option      TEXT,
			item        TEXT,
			source      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, tick)`,

		`CREATE TABLE IF NOT EXISTS penalties (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			session_id  TEXT NOT NULL,
			tick        INTEGER,
			reason      TEXT,
			amount      REAL,
			points      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_penalties_session ON penalties(session_id, tick)`,

		`CREATE TABLE IF NOT EXISTS results (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			session_id   TEXT NOT NULL,
			player_name  TEXT,
			age          INTEGER,
			years        INTEGER,
			reason       TEXT,
			net_worth    REAL,
			rating       TEXT,
			credit_score INTEGER
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTick(rec *TickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO ticks
		(timestamp, session_id, tick, year, month, age, status,
		 cash, bank_balance, credit_debt, loan_debt, asset_value, net_worth,
		 credit_score, income, living_expenses)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.Tick, rec.Year, rec.Month, rec.Age, rec.Status,
		rec.Cash.InexactFloat64(), rec.BankBalance.InexactFloat64(),
		rec.CreditDebt.InexactFloat64(), rec.LoanDebt.InexactFloat64(),
		rec.AssetValue.InexactFloat64(), rec.NetWorth.InexactFloat64(),
		rec.CreditScore, rec.Income.InexactFloat64(), rec.LivingExpenses.InexactFloat64(),
	)
	return err
}

func (r *SQLiteRecorder) RecordEvent(rec *EventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO events
		(timestamp, session_id, tick, kind, name, cash_delta, option, item, source)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.Tick, rec.Kind, rec.Name,
		rec.CashDelta.InexactFloat64(), rec.Option, rec.Item, rec.Source,
	)
	return err
}

func (r *SQLiteRecorder) RecordPenalty(rec *PenaltyRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO penalties
		(timestamp, session_id, tick, reason, amount, points)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.Tick, rec.Reason,
		rec.Amount.InexactFloat64(), rec.Points,
	)
	return err
}

func (r *SQLiteRecorder) RecordResult(rec *ResultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO results
		(timestamp, session_id, player_name, age, years, reason, net_worth, rating, credit_score)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.SessionID, rec.PlayerName, rec.Age, rec.Years, rec.Reason,
		rec.NetWorth.InexactFloat64(), rec.Rating, rec.CreditScore,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}
