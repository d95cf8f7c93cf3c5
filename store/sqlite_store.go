package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/josephgoksu/OpsWing/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements RecordStore on a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens the database at path, creating the schema if needed.
// ":memory:" gives a private in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writers and keeps :memory: a single database.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		assigned_to TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL DEFAULT '',
		priority TEXT NOT NULL DEFAULT 'Medium',
		status TEXT NOT NULL DEFAULT 'To Do',
		estimated_hours INTEGER NOT NULL DEFAULT 0,
		frequency TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		suggested_deadline TEXT NOT NULL DEFAULT '',
		completed_at TEXT
	);

	CREATE TABLE IF NOT EXISTS team_members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT '',
		skills TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS kpis (
		id TEXT PRIMARY KEY,
		entry_date TEXT NOT NULL DEFAULT '',
		employee_name TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		kpi_name TEXT NOT NULL,
		target_value REAL NOT NULL DEFAULT 0,
		actual_value REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT '',
		trend TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS delegations (
		id TEXT PRIMARY KEY,
		task_delegated TEXT NOT NULL,
		person_responsible TEXT NOT NULL,
		deadline TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		feedback TEXT NOT NULL DEFAULT '',
		workload_score REAL NOT NULL DEFAULT 5
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to);
	CREATE INDEX IF NOT EXISTS idx_kpis_name ON kpis(kpi_name);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+teamColumns+` FROM team_members ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, fmt.Errorf("query team members: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.TeamMember{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ListKPIs(ctx context.Context) ([]models.KPIEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+kpiColumns+` FROM kpis ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, fmt.Errorf("query kpis: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.KPIEntry{}
	for rows.Next() {
		k, err := scanKPI(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) ListDelegations(ctx context.Context) ([]models.Delegation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+delegationColumns+` FROM delegations ORDER BY CAST(id AS INTEGER)`)
	if err != nil {
		return nil, fmt.Errorf("query delegations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Delegation{}
	for rows.Next() {
		d, err := scanDelegation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := checkRowsErr(rows); err != nil {
		return nil, err
	}
	return out, nil
}

// insert assigns the next sheet ID and inserts the row in one transaction.
func (s *SQLiteStore) insert(ctx context.Context, table, columns string, args func(id string) []any) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(CAST(id AS INTEGER)), 0) + 1 FROM `+table).Scan(&next); err != nil {
		return "", fmt.Errorf("next %s id: %w", table, err)
	}
	id := fmt.Sprint(next)
	values := args(id)

	placeholders := "?"
	for i := 1; i < len(values); i++ {
		placeholders += ", ?"
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO `+table+` (`+columns+`) VALUES (`+placeholders+`)`, values...); err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) AppendTask(ctx context.Context, task models.Task) (models.Task, error) {
	id, err := s.insert(ctx, "tasks", taskColumns, func(id string) []any {
		task.ID = id
		return taskArgs(task)
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("append task: %w", err)
	}
	task.ID = id
	return task, nil
}

func (s *SQLiteStore) AppendTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, error) {
	id, err := s.insert(ctx, "team_members", teamColumns, func(id string) []any {
		member.ID = id
		return memberArgs(member)
	})
	if err != nil {
		return models.TeamMember{}, fmt.Errorf("append team member: %w", err)
	}
	member.ID = id
	return member, nil
}

func (s *SQLiteStore) AppendKPI(ctx context.Context, entry models.KPIEntry) (models.KPIEntry, error) {
	id, err := s.insert(ctx, "kpis", kpiColumns, func(id string) []any {
		entry.ID = id
		return kpiArgs(entry)
	})
	if err != nil {
		return models.KPIEntry{}, fmt.Errorf("append kpi: %w", err)
	}
	entry.ID = id
	return entry, nil
}

func (s *SQLiteStore) AppendDelegation(ctx context.Context, d models.Delegation) (models.Delegation, error) {
	id, err := s.insert(ctx, "delegations", delegationColumns, func(id string) []any {
		d.ID = id
		return delegationArgs(d)
	})
	if err != nil {
		return models.Delegation{}, fmt.Errorf("append delegation: %w", err)
	}
	d.ID = id
	return d, nil
}

func (s *SQLiteStore) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := scanTask(tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, err
	}
	applyTaskStatus(&t, status, s.now())

	if _, err := tx.ExecContext(ctx, `UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?`,
		string(t.Status), completedValue(t.CompletedAt), id); err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) UpdateDelegationStatus(ctx context.Context, id string, status models.DelegationStatus) (models.Delegation, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE delegations SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return models.Delegation{}, fmt.Errorf("update delegation status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.Delegation{}, fmt.Errorf("delegation %s: %w", id, ErrNotFound)
	}
	return scanDelegation(s.db.QueryRowContext(ctx, `SELECT `+delegationColumns+` FROM delegations WHERE id = ?`, id))
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// checkRowsErr checks for errors that may have occurred during row iteration.
func checkRowsErr(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
