package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Workbook is the on-disk layout of a FileStore: one list per sheet.
type Workbook struct {
	Tasks       []models.Task       `json:"tasks" yaml:"tasks"`
	Team        []models.TeamMember `json:"team" yaml:"team"`
	KPIs        []models.KPIEntry   `json:"kpis" yaml:"kpis"`
	Delegations []models.Delegation `json:"delegations" yaml:"delegations"`
}

func (w Workbook) clone() Workbook {
	return Workbook{
		Tasks:       append([]models.Task(nil), w.Tasks...),
		Team:        append([]models.TeamMember(nil), w.Team...),
		KPIs:        append([]models.KPIEntry(nil), w.KPIs...),
		Delegations: append([]models.Delegation(nil), w.Delegations...),
	}
}

// FileStore implements RecordStore on a single JSON or YAML workbook file.
// The workbook is held in memory and rewritten atomically on every change.
type FileStore struct {
	fs     afero.Fs
	path   string
	format string
	now    func() time.Time

	mu sync.RWMutex
	wb Workbook
}

// NewFileStore opens (or creates) the workbook at path. An empty format is
// inferred from the extension, defaulting to JSON.
func NewFileStore(fsys afero.Fs, path, format string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: path is required")
	}
	f, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s := &FileStore{fs: fsys, path: path, format: f, now: time.Now}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func resolveFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			return formatYAML, nil
		default:
			return formatJSON, nil
		}
	}
	switch format {
	case formatJSON, formatYAML:
		return format, nil
	case "yml":
		return formatYAML, nil
	}
	return "", fmt.Errorf("unsupported workbook format: %s. Supported formats are json, yaml", format)
}

// Path returns the workbook location.
func (s *FileStore) Path() string { return s.path }

// Reload replaces the in-memory workbook with the file contents. A missing
// or empty file yields an empty workbook.
func (s *FileStore) Reload() error {
	wb, err := s.read()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.wb = wb
	s.mu.Unlock()
	return nil
}

func (s *FileStore) read() (Workbook, error) {
	var wb Workbook
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return wb, nil
		}
		return wb, fmt.Errorf("failed to read workbook %s: %w", s.path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return wb, nil
	}

	switch s.format {
	case formatYAML:
		err = yaml.Unmarshal(data, &wb)
	default:
		err = json.Unmarshal(data, &wb)
	}
	if err != nil {
		return Workbook{}, fmt.Errorf("failed to unmarshal %s workbook %s: %w", s.format, s.path, err)
	}
	return wb, nil
}

// writeLocked persists wb through a temp file and rename. Caller holds mu.
func (s *FileStore) writeLocked(wb Workbook) error {
	var (
		data []byte
		err  error
	)
	switch s.format {
	case formatYAML:
		data, err = yaml.Marshal(wb)
	default:
		data, err = json.MarshalIndent(wb, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal workbook to %s: %w", s.format, err)
	}

	tmp := s.path + ".tmp"
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary workbook %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmp, s.path, err)
	}
	return nil
}

// mutate applies fn to a copy of the workbook and commits it only when the
// write succeeds.
func (s *FileStore) mutate(ctx context.Context, fn func(*Workbook) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.wb.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.wb = next
	return nil
}

func (s *FileStore) snapshot(ctx context.Context) (Workbook, error) {
	if err := ctx.Err(); err != nil {
		return Workbook{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wb.clone(), nil
}

// ListTasks returns the task sheet in row order.
func (s *FileStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	wb, err := s.snapshot(ctx)
	return orEmpty(wb.Tasks), err
}

// ListTeamMembers returns the team sheet in row order.
func (s *FileStore) ListTeamMembers(ctx context.Context) ([]models.TeamMember, error) {
	wb, err := s.snapshot(ctx)
	return orEmpty(wb.Team), err
}

// ListKPIs returns the KPI sheet in row order.
func (s *FileStore) ListKPIs(ctx context.Context) ([]models.KPIEntry, error) {
	wb, err := s.snapshot(ctx)
	return orEmpty(wb.KPIs), err
}

// ListDelegations returns the delegation sheet in row order.
func (s *FileStore) ListDelegations(ctx context.Context) ([]models.Delegation, error) {
	wb, err := s.snapshot(ctx)
	return orEmpty(wb.Delegations), err
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *FileStore) AppendTask(ctx context.Context, task models.Task) (models.Task, error) {
	err := s.mutate(ctx, func(wb *Workbook) error {
		ids := make([]string, len(wb.Tasks))
		for i, t := range wb.Tasks {
			ids[i] = t.ID
		}
		task.ID = nextID(ids)
		wb.Tasks = append(wb.Tasks, task)
		return nil
	})
	if err != nil {
		return models.Task{}, fmt.Errorf("append task: %w", err)
	}
	slog.Debug("task appended", "id", task.ID, "store", "file")
	return task, nil
}

func (s *FileStore) AppendTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, error) {
	err := s.mutate(ctx, func(wb *Workbook) error {
		ids := make([]string, len(wb.Team))
		for i, m := range wb.Team {
			ids[i] = m.ID
		}
		member.ID = nextID(ids)
		wb.Team = append(wb.Team, member)
		return nil
	})
	if err != nil {
		return models.TeamMember{}, fmt.Errorf("append team member: %w", err)
	}
	return member, nil
}

func (s *FileStore) AppendKPI(ctx context.Context, entry models.KPIEntry) (models.KPIEntry, error) {
	err := s.mutate(ctx, func(wb *Workbook) error {
		ids := make([]string, len(wb.KPIs))
		for i, k := range wb.KPIs {
			ids[i] = k.ID
		}
		entry.ID = nextID(ids)
		wb.KPIs = append(wb.KPIs, entry)
		return nil
	})
	if err != nil {
		return models.KPIEntry{}, fmt.Errorf("append kpi: %w", err)
	}
	return entry, nil
}

func (s *FileStore) AppendDelegation(ctx context.Context, d models.Delegation) (models.Delegation, error) {
	err := s.mutate(ctx, func(wb *Workbook) error {
		ids := make([]string, len(wb.Delegations))
		for i, x := range wb.Delegations {
			ids[i] = x.ID
		}
		d.ID = nextID(ids)
		wb.Delegations = append(wb.Delegations, d)
		return nil
	})
	if err != nil {
		return models.Delegation{}, fmt.Errorf("append delegation: %w", err)
	}
	return d, nil
}

func (s *FileStore) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error) {
	var updated models.Task
	err := s.mutate(ctx, func(wb *Workbook) error {
		for i := range wb.Tasks {
			if wb.Tasks[i].ID != id {
				continue
			}
			applyTaskStatus(&wb.Tasks[i], status, s.now())
			updated = wb.Tasks[i]
			return nil
		}
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

func (s *FileStore) UpdateDelegationStatus(ctx context.Context, id string, status models.DelegationStatus) (models.Delegation, error) {
	var updated models.Delegation
	err := s.mutate(ctx, func(wb *Workbook) error {
		for i := range wb.Delegations {
			if wb.Delegations[i].ID != id {
				continue
			}
			wb.Delegations[i].Status = status
			updated = wb.Delegations[i]
			return nil
		}
		return fmt.Errorf("delegation %s: %w", id, ErrNotFound)
	})
	if err != nil {
		return models.Delegation{}, err
	}
	return updated, nil
}

// Close is a no-op; every change is already on disk.
func (s *FileStore) Close() error { return nil }

// applyTaskStatus sets status, stamping CompletedAt on the transition to Done
// and clearing it when a task is reopened.
func applyTaskStatus(t *models.Task, status models.TaskStatus, now time.Time) {
	t.Status = status
	if status == models.StatusDone {
		if t.CompletedAt == nil {
			ts := now.UTC()
			t.CompletedAt = &ts
		}
		return
	}
	t.CompletedAt = nil
}
