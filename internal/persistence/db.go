// Package persistence provides SQLite-based storage of completed simulation
// runs. It consumes the engine's history sequence as plain records; the
// engine itself never touches the database.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/asdm/internal/config"
	"github.com/talgya/asdm/internal/engine"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		run_id TEXT NOT NULL REFERENCES runs(id),
		step INTEGER NOT NULL,
		employment INTEGER NOT NULL,
		consumption REAL NOT NULL,
		tax_revenue REAL NOT NULL,
		ai_profit REAL NOT NULL,
		demand_revenue REAL NOT NULL,
		workers_json TEXT,
		PRIMARY KEY (run_id, step)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunInfo describes a stored run. Seed is the configured seed reinterpreted
// as int64 (SQLite INTEGER); the exact value is preserved in config_json.
type RunInfo struct {
	ID        string `db:"id" json:"id"`
	Seed      int64  `db:"seed" json:"seed"`
	Workers   int    `db:"workers" json:"workers"`
	Steps     int    `db:"steps" json:"steps"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// workerDetail is the JSON shape of a snapshot's optional per-worker vectors.
type workerDetail struct {
	Employment []bool    `json:"employment"`
	Wages      []float64 `json:"wages"`
}

// SaveRun stores a configuration and its full history, returning the new
// run's ID.
func (db *DB) SaveRun(cfg config.Config, hist engine.History) (string, error) {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.Exec(
		"INSERT INTO runs (id, seed, workers, steps, config_json, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, int64(cfg.Seed), cfg.Workers, cfg.Steps, string(cfgJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO snapshots
		(run_id, step, employment, consumption, tax_revenue, ai_profit, demand_revenue, workers_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, snap := range hist {
		var workersJSON *string
		if snap.WorkerEmployment != nil {
			raw, err := json.Marshal(workerDetail{
				Employment: snap.WorkerEmployment,
				Wages:      snap.WorkerWages,
			})
			if err != nil {
				return "", fmt.Errorf("marshal step %d workers: %w", snap.Step, err)
			}
			s := string(raw)
			workersJSON = &s
		}

		_, err := stmt.Exec(
			id, snap.Step, snap.Employment, snap.Consumption,
			snap.TaxRevenue, snap.AIProfit, snap.DemandRevenue, workersJSON,
		)
		if err != nil {
			return "", fmt.Errorf("insert snapshot %d: %w", snap.Step, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run saved", "id", id, "snapshots", len(hist))
	return id, nil
}

// LoadHistory reads back the full snapshot sequence of a stored run in step
// order.
func (db *DB) LoadHistory(runID string) (engine.History, error) {
	rows, err := db.conn.Queryx(`SELECT step, employment, consumption, tax_revenue,
		ai_profit, demand_revenue, workers_json
		FROM snapshots WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var hist engine.History
	for rows.Next() {
		var snap engine.Snapshot
		var workersJSON *string
		if err := rows.Scan(&snap.Step, &snap.Employment, &snap.Consumption,
			&snap.TaxRevenue, &snap.AIProfit, &snap.DemandRevenue, &workersJSON); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if workersJSON != nil {
			var detail workerDetail
			if err := json.Unmarshal([]byte(*workersJSON), &detail); err != nil {
				return nil, fmt.Errorf("unmarshal step %d workers: %w", snap.Step, err)
			}
			snap.WorkerEmployment = detail.Employment
			snap.WorkerWages = detail.Wages
		}
		hist = append(hist, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(hist) == 0 {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	return hist, nil
}

// LoadConfig reads back the configuration a run was executed with.
func (db *DB) LoadConfig(runID string) (config.Config, error) {
	var cfgJSON string
	if err := db.conn.Get(&cfgJSON, "SELECT config_json FROM runs WHERE id = ?", runID); err != nil {
		return config.Config{}, fmt.Errorf("run %s: %w", runID, err)
	}
	var cfg config.Config
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return config.Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ListRuns returns stored runs, most recent first.
func (db *DB) ListRuns() ([]RunInfo, error) {
	var runs []RunInfo
	err := db.conn.Select(&runs,
		"SELECT id, seed, workers, steps, created_at FROM runs ORDER BY created_at DESC")
	return runs, err
}
