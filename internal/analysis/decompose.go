package analysis

import (
	"fmt"
	"math"
)

// Subtask is one step of a decomposed task.
type Subtask struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	EstimatedHours int    `json:"estimated_hours"`
	CanParallel    bool   `json:"can_parallel"`
	DependsOn      []int  `json:"depends_on"`
}

// Dependency is one edge of the subtask chain.
type Dependency struct {
	TaskID         int    `json:"task_id"`
	DependsOn      []int  `json:"depends_on"`
	DependencyType string `json:"dependency_type"`
}

// ExecutionPlan is a rough duration model for a breakdown. It is not a
// critical-path computation.
type ExecutionPlan struct {
	TotalEstimatedHours     int    `json:"total_estimated_hours"`
	SequentialExecutionDays int    `json:"sequential_execution_days"`
	OptimizedExecutionDays  int    `json:"optimized_execution_days"`
	ParallelOpportunities   int    `json:"parallel_opportunities"`
	RecommendedApproach     string `json:"recommended_approach"`
}

// Breakdown is the result of Decompose.
type Breakdown struct {
	OriginalTask        string        `json:"original_task"`
	Category            string        `json:"category"`
	TotalEstimatedHours int           `json:"total_estimated_hours"`
	TeamSize            int           `json:"team_size"`
	Subtasks            []Subtask     `json:"subtasks"`
	ExecutionPlan       ExecutionPlan `json:"execution_plan"`
	Dependencies        []Dependency  `json:"dependencies"`
}

const dependencySequential = "sequential"

// Template returns the subtask template for a category.
func (a *Analyzer) Template(category string) []string {
	if steps, ok := a.cfg.Templates[category]; ok && len(steps) > 0 {
		return steps
	}
	return a.cfg.GenericTemplate
}

// Decompose expands a task into its category template. Hours are split
// evenly and the remainder goes one hour each to the first subtasks, so the
// parts always sum to estimatedHours.
func (a *Analyzer) Decompose(name, description string, estimatedHours, teamSize int) (Breakdown, error) {
	if estimatedHours < 0 {
		return Breakdown{}, fmt.Errorf("estimated hours %d: %w", estimatedHours, ErrInvalidInput)
	}
	if teamSize < 0 {
		return Breakdown{}, fmt.Errorf("team size %d: %w", teamSize, ErrInvalidInput)
	}
	if teamSize == 0 {
		teamSize = 1
	}

	category := a.CategorizeTask(name, description).Label
	steps := a.Template(category)

	n := len(steps)
	base, rem := estimatedHours/n, estimatedHours%n

	subtasks := make([]Subtask, n)
	deps := make([]Dependency, 0, n-1)
	parallel := 0
	for i, step := range steps {
		hours := base
		if i < rem {
			hours++
		}
		st := Subtask{
			ID:             i + 1,
			Name:           fmt.Sprintf("%s - %s", step, name),
			EstimatedHours: hours,
			CanParallel:    i >= 2,
			DependsOn:      []int{},
		}
		if i > 0 {
			st.DependsOn = []int{i}
			deps = append(deps, Dependency{TaskID: i + 1, DependsOn: []int{i}, DependencyType: dependencySequential})
		}
		if st.CanParallel {
			parallel++
		}
		subtasks[i] = st
	}

	sequential := estimatedHours / a.cfg.WorkdayHours
	optimized := int(math.Max(1, math.Floor(float64(sequential)-0.3*float64(parallel))))

	approach := "Sequential execution by a single owner"
	if teamSize > 1 && parallel > 0 {
		approach = "Parallel execution where possible"
	}

	return Breakdown{
		OriginalTask:        name,
		Category:            category,
		TotalEstimatedHours: estimatedHours,
		TeamSize:            teamSize,
		Subtasks:            subtasks,
		ExecutionPlan: ExecutionPlan{
			TotalEstimatedHours:     estimatedHours,
			SequentialExecutionDays: sequential,
			OptimizedExecutionDays:  optimized,
			ParallelOpportunities:   parallel,
			RecommendedApproach:     approach,
		},
		Dependencies: deps,
	}, nil
}
