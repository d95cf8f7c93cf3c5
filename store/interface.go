package store

import (
	"context"
	"errors"
	"strconv"

	"github.com/josephgoksu/OpsWing/models"
)

// ErrNotFound is returned when an update names a record that does not exist.
var ErrNotFound = errors.New("record not found")

// RecordStore defines the system of record for the four sheets: tasks,
// team members, KPI entries and delegations.
type RecordStore interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListTeamMembers(ctx context.Context) ([]models.TeamMember, error)
	ListKPIs(ctx context.Context) ([]models.KPIEntry, error)
	ListDelegations(ctx context.Context) ([]models.Delegation, error)

	// Append* assign the next sequential ID of the sheet and return the
	// stored record.
	AppendTask(ctx context.Context, task models.Task) (models.Task, error)
	AppendTeamMember(ctx context.Context, member models.TeamMember) (models.TeamMember, error)
	AppendKPI(ctx context.Context, entry models.KPIEntry) (models.KPIEntry, error)
	AppendDelegation(ctx context.Context, d models.Delegation) (models.Delegation, error)

	// UpdateTaskStatus sets the status; moving to Done stamps CompletedAt.
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (models.Task, error)
	UpdateDelegationStatus(ctx context.Context, id string, status models.DelegationStatus) (models.Delegation, error)

	// Close releases any resources held by the store.
	Close() error
}

// nextID returns max(numeric ids)+1 as a string. Non-numeric ids are ignored.
func nextID(ids []string) string {
	max := 0
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}
