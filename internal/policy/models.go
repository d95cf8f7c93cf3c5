// Package policy evaluates optional Rego guardrails (OPA) that can rule team
// members out of an assignment before it is scored.
package policy

import (
	"encoding/json"
	"time"
)

// Decision represents the outcome of evaluating the policies for one candidate.
type Decision struct {
	DecisionID  string    `json:"decisionId"`
	PolicyPath  string    `json:"policyPath"`
	Result      string    `json:"result"`
	Violations  []string  `json:"violations,omitempty"`
	Warnings    []string  `json:"warnings,omitempty"`
	Candidate   string    `json:"candidate"`
	Input       any       `json:"input"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

// Result constants.
const (
	ResultAllow = "allow"
	ResultDeny  = "deny"
)

// IsAllowed returns true if the decision was "allow".
func (d *Decision) IsAllowed() bool {
	return d.Result == ResultAllow
}

// InputJSON returns the evaluated input as JSON, for logging.
func (d *Decision) InputJSON() string {
	if d.Input == nil {
		return "{}"
	}
	b, err := json.Marshal(d.Input)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Input is what Rego policies receive as `input`.
type Input struct {
	Task      TaskInput      `json:"task"`
	Candidate CandidateInput `json:"candidate"`
}

// TaskInput describes the task being assigned.
type TaskInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Priority       string   `json:"priority"`
	Category       string   `json:"category,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
}

// CandidateInput describes one team member and their current load.
type CandidateInput struct {
	Name              string   `json:"name"`
	Role              string   `json:"role,omitempty"`
	Department        string   `json:"department,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	CurrentTasks      int      `json:"current_tasks"`
	PriorityWeight    int      `json:"priority_weight"`
	CapacityAvailable int      `json:"capacity_available"`
	WorkloadStatus    string   `json:"workload_status"`
}
