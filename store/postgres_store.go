package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/josephgoksu/OpsWing/models"
)

// PostgresStore implements RecordStore on PostgreSQL through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// NewPostgresStore connects to dsn and creates the schema if needed.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool, now: time.Now}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
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
		target_value DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_value DOUBLE PRECISION NOT NULL DEFAULT 0,
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
		workload_score DOUBLE PRECISION NOT NULL DEFAULT 5
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to);
	CREATE INDEX IF NOT EXISTS idx_kpis_name ON kpis(kpi_name);
	`)
	return err
}

func listPG[T any](ctx context.Context, pool *pgxpool.Pool, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	out, err := listPG(ctx, s.pool, `SELECT `+taskColumns+` FROM tasks ORDER BY id::bigint`, scanTask)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	out, err := listPG(ctx, s.pool, `SELECT `+teamColumns+` FROM team_members ORDER BY id::bigint`, scanMember)
	if err != nil {
		return nil, fmt.Errorf("query team members: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListKPIs(ctx context.Context) ([]models.KPIEntry, error) {
	out, err := listPG(ctx, s.pool, `SELECT `+kpiColumns+` FROM kpis ORDER BY id::bigint`, scanKPI)
	if err != nil {
		return nil, fmt.Errorf("query kpis: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListDelegations(ctx context.Context) ([]models.Delegation, error) {
	out, err := listPG(ctx, s.pool, `SELECT `+delegationColumns+` FROM delegations ORDER BY id::bigint`, scanDelegation)
	if err != nil {
		return nil, fmt.Errorf("query delegations: %w", err)
	}
	return out, nil
}

// insert locks the table so concurrent appends cannot take the same ID.
func (s *PostgresStore) insert(ctx context.Context, table, columns string, args func(id string) []any) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE `+table+` IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return "", fmt.Errorf("lock %s: %w", table, err)
	}
	var next int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id::bigint), 0) + 1 FROM `+table).Scan(&next); err != nil {
		return "", fmt.Errorf("next %s id: %w", table, err)
	}
	id := fmt.Sprint(next)
	values := args(id)

	placeholders := ""
	for i := range values {
		if i > 0 {
			placeholders += ", "
		}
		placeholders += fmt.Sprintf("$%d", i+1)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO `+table+` (`+columns+`) VALUES (`+placeholders+`)`, values...); err != nil {
		return "", fmt.Errorf("insert %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) AppendTask(ctx context.Context, task models.Task) (models.Task, error) {
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

func (s *PostgresStore) AppendTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, error) {
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

func (s *PostgresStore) AppendKPI(ctx context.Context, entry models.KPIEntry) (models.KPIEntry, error) {
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

func (s *PostgresStore) AppendDelegation(ctx context.Context, d models.Delegation) (models.Delegation, error) {
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

func (s *PostgresStore) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Task{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return models.Task{}, err
	}
	applyTaskStatus(&t, status, s.now())

	if _, err := tx.Exec(ctx, `UPDATE tasks SET status = $1, completed_at = $2 WHERE id = $3`,
		string(t.Status), completedValue(t.CompletedAt), id); err != nil {
		return models.Task{}, fmt.Errorf("update task status: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Task{}, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) UpdateDelegationStatus(ctx context.Context, id string, status models.DelegationStatus) (models.Delegation, error) {
	d, err := scanDelegation(s.pool.QueryRow(ctx,
		`UPDATE delegations SET status = $1 WHERE id = $2 RETURNING `+delegationColumns, string(status), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Delegation{}, fmt.Errorf("delegation %s: %w", id, ErrNotFound)
		}
		return models.Delegation{}, err
	}
	return d, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
