package models

import "time"

// DelegationStatus is the lifecycle state of a delegation.
type DelegationStatus string

const (
	DelegationPending    DelegationStatus = "Pending"
	DelegationInProgress DelegationStatus = "In Progress"
	DelegationComplete   DelegationStatus = "Complete"
)

// DefaultWorkloadScore is recorded when a delegation is created without one.
const DefaultWorkloadScore = 5

// Delegation represents a row of the delegation tracker.
type Delegation struct {
	ID                string           `json:"delegation_id" yaml:"delegation_id"`
	TaskDelegated     string           `json:"task_delegated" yaml:"task_delegated" validate:"required"`
	PersonResponsible string           `json:"person_responsible" yaml:"person_responsible" validate:"required"`
	Deadline          string           `json:"deadline" yaml:"deadline" validate:"required,datetime=2006-01-02"`
	Status            DelegationStatus `json:"status" yaml:"status" validate:"required,oneof=Pending 'In Progress' Complete"`
	Feedback          string           `json:"feedback,omitempty" yaml:"feedback,omitempty"`
	WorkloadScore     float64          `json:"workload_score" yaml:"workload_score" validate:"gte=0,lte=10"`
}

// ParseDelegationStatus reports whether s names a delegation status.
func ParseDelegationStatus(s string) (DelegationStatus, bool) {
	c := canonical(s)
	if c == "Completed" || c == "Done" {
		return DelegationComplete, true
	}
	switch st := DelegationStatus(c); st {
	case DelegationPending, DelegationInProgress, DelegationComplete:
		return st, true
	}
	return "", false
}

// NormalizeDelegationStatus degrades unknown statuses to Pending.
func NormalizeDelegationStatus(s string) DelegationStatus {
	if st, ok := ParseDelegationStatus(s); ok {
		return st
	}
	return DelegationPending
}

// IsOverdue reports whether an open delegation's deadline lies before now's calendar day.
func (d Delegation) IsOverdue(now time.Time) bool {
	if NormalizeDelegationStatus(string(d.Status)) == DelegationComplete {
		return false
	}
	deadline, ok := ParseDate(d.Deadline)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, deadline.Location())
	return deadline.Before(today)
}
