package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"tradedesk/internal/model"
)

// SQLite records analyses into a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at path with WAL mode and the
// analyses schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol      TEXT    NOT NULL,
			interval    TEXT    NOT NULL,
			entry       REAL    NOT NULL,
			stop_loss   REAL    NOT NULL,
			take_profit REAL    NOT NULL,
			risk_reward REAL    NOT NULL,
			alerts      TEXT    NOT NULL,
			computed_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_symbol ON analyses(symbol, computed_at);
	`)
	return err
}

// Record implements Recorder.
func (s *SQLite) Record(res *model.AnalysisResult) error {
	alerts, err := json.Marshal(res.Alerts)
	if err != nil {
		return fmt.Errorf("marshal alerts: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO analyses (symbol, interval, entry, stop_loss, take_profit, risk_reward, alerts, computed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Symbol,
		string(res.Interval),
		res.Setup.Entry,
		res.Setup.StopLoss,
		res.Setup.TakeProfit,
		res.Setup.RiskReward,
		string(alerts),
		res.ComputedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
