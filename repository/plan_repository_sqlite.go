package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"debt-planner/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

const planSchemaSQL = `
CREATE TABLE IF NOT EXISTS plan_runs (
    id                  TEXT PRIMARY KEY,
    strategy            TEXT NOT NULL,
    created_at          TEXT NOT NULL,
    account_count       INTEGER NOT NULL,
    monthly_budget      REAL NOT NULL,
    total_interest      REAL NOT NULL,
    months_to_debt_free INTEGER NOT NULL,
    outcome             TEXT NOT NULL,
    input_json          TEXT NOT NULL,
    result_json         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at);
`

// PlanRepositorySQLite persists plan runs in a SQLite database. Headline
// numbers get their own columns for querying; the full input and ledger are
// stored as JSON blobs.
type PlanRepositorySQLite struct {
	db *sql.DB
}

// OpenPlanRepository opens or creates the plan database at the given path.
func OpenPlanRepository(dbPath string) (*PlanRepositorySQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}

	if _, err := db.Exec(planSchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &PlanRepositorySQLite{db: db}, nil
}

// Close closes the underlying database.
func (r *PlanRepositorySQLite) Close() error {
	return r.db.Close()
}

func (r *PlanRepositorySQLite) Save(ctx context.Context, run domain.PlanRun) error {
	inputJSON, err := json.Marshal(run.Input)
	if err != nil {
		return fmt.Errorf("encoding input: %w", err)
	}
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR REPLACE INTO plan_runs
		(id, strategy, created_at, account_count, monthly_budget,
		 total_interest, months_to_debt_free, outcome, input_json, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, string(run.Strategy), run.CreatedAt.UTC().Format(time.RFC3339),
		len(run.Input.Accounts), run.Input.MonthlyBudget,
		run.Result.TotalInterest, run.Result.MonthsToDebtFree,
		string(run.Result.Outcome), string(inputJSON), string(resultJSON),
	)
	return err
}

func (r *PlanRepositorySQLite) Get(ctx context.Context, id string) (domain.PlanRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, strategy, created_at, input_json, result_json FROM plan_runs WHERE id = ?`, id)
	run, err := scanPlanRun(row)
	if err == sql.ErrNoRows {
		return domain.PlanRun{}, ErrPlanNotFound
	}
	return run, err
}

func (r *PlanRepositorySQLite) List(ctx context.Context, limit int) ([]domain.PlanRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, strategy, created_at, input_json, result_json
		 FROM plan_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.PlanRun
	for rows.Next() {
		run, err := scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlanRun(row rowScanner) (domain.PlanRun, error) {
	var run domain.PlanRun
	var strategy, createdAt, inputJSON, resultJSON string
	if err := row.Scan(&run.ID, &strategy, &createdAt, &inputJSON, &resultJSON); err != nil {
		return domain.PlanRun{}, err
	}
	run.Strategy = domain.Strategy(strategy)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		run.CreatedAt = t
	}
	if err := json.Unmarshal([]byte(inputJSON), &run.Input); err != nil {
		return domain.PlanRun{}, fmt.Errorf("decoding input: %w", err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &run.Result); err != nil {
		return domain.PlanRun{}, fmt.Errorf("decoding result: %w", err)
	}
	return run, nil
}
