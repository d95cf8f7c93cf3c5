package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/policy"
	"github.com/josephgoksu/OpsWing/models"
)

// CategorizeTask classifies free text into a category.
func (s *Service) CategorizeTask(name, description string) analysis.Classification {
	s.track("categorize_task", 1)
	return s.analyzer.CategorizeTask(name, description)
}

// SuggestPriority proposes a priority from keywords and the due date.
func (s *Service) SuggestPriority(name, description, dueDate string) analysis.PrioritySuggestion {
	s.track("suggest_priority", 1)
	return s.analyzer.SuggestPriority(name, description, dueDate)
}

// SuggestDeadline proposes a due date relative to today.
func (s *Service) SuggestDeadline(name, description, priority string, estimatedHours *int) (analysis.DeadlineSuggestion, error) {
	s.track("suggest_deadline", 1)
	return s.analyzer.SuggestDeadline(name, description, priority, estimatedHours)
}

// BreakDownTask decomposes a task into its category template.
func (s *Service) BreakDownTask(name, description string, estimatedHours, teamSize int) (analysis.Breakdown, error) {
	s.track("break_down_task", 1)
	return s.analyzer.Decompose(name, description, estimatedHours, teamSize)
}

// AnalyzeWorkload computes per-member load from the current team and tasks.
func (s *Service) AnalyzeWorkload(ctx context.Context) (analysis.WorkloadAnalysis, error) {
	team, tasks, err := s.teamAndTasks(ctx)
	if err != nil {
		return analysis.WorkloadAnalysis{}, err
	}
	s.track("analyze_workload", len(tasks))
	return s.analyzer.AnalyzeWorkload(team, tasks), nil
}

// RecommendAssignment scores the team for a task. When a policy engine is
// configured, members it denies are removed before scoring and its warnings
// are appended to the winner's reasoning.
func (s *Service) RecommendAssignment(ctx context.Context, req analysis.AssignmentRequest) (analysis.AssignmentRecommendation, error) {
	if err := validate(req); err != nil {
		return analysis.AssignmentRecommendation{}, err
	}
	team, tasks, err := s.teamAndTasks(ctx)
	if err != nil {
		return analysis.AssignmentRecommendation{}, err
	}
	s.track("smart_task_assignment", len(team))

	if s.policy == nil || s.policy.PolicyCount() == 0 {
		return s.analyzer.ScoreAssignment(req, team, tasks)
	}

	eligible, excluded, warnings, err := s.applyPolicies(ctx, req, team, tasks)
	if err != nil {
		return analysis.AssignmentRecommendation{}, err
	}
	if len(eligible) == 0 && len(team) > 0 {
		return analysis.AssignmentRecommendation{}, fmt.Errorf("all %d team members excluded by policy: %w", len(team), analysis.ErrInvalidInput)
	}

	rec, err := s.analyzer.ScoreAssignment(req, eligible, tasks)
	if err != nil {
		return analysis.AssignmentRecommendation{}, err
	}
	rec.Excluded = excluded
	rec.Reasoning = append(rec.Reasoning, warnings[rec.RecommendedAssignee]...)
	return rec, nil
}

func (s *Service) applyPolicies(ctx context.Context, req analysis.AssignmentRequest, team []models.TeamMember, tasks []models.Task) ([]models.TeamMember, []string, map[string][]string, error) {
	workload := s.analyzer.AnalyzeWorkload(team, tasks)
	category := s.analyzer.CategorizeTask(req.TaskName, req.TaskDescription)
	taskInput := policy.TaskInput{
		Name:           req.TaskName,
		Description:    req.TaskDescription,
		Priority:       string(models.NormalizePriority(req.Priority)),
		Category:       category.Label,
		RequiredSkills: models.Tokens(req.RequiredSkills),
	}

	eligible := make([]models.TeamMember, 0, len(team))
	var excluded []string
	warnings := map[string][]string{}
	for _, m := range team {
		rec, _ := workload.Lookup(m.Name)
		decision, err := s.policy.Evaluate(ctx, policy.Input{
			Task: taskInput,
			Candidate: policy.CandidateInput{
				Name:              m.Name,
				Role:              m.Role,
				Department:        m.Department,
				Skills:            m.SkillSet(),
				CurrentTasks:      rec.CurrentTasks,
				PriorityWeight:    rec.PriorityWeight,
				CapacityAvailable: rec.CapacityAvailable,
				WorkloadStatus:    string(rec.WorkloadStatus),
			},
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("evaluate policy for %s: %w", m.Name, err)
		}
		if !decision.IsAllowed() {
			slog.Info("candidate excluded by policy", "member", m.Name, "violations", decision.Violations,
				"decision_id", decision.DecisionID, "input", decision.InputJSON())
			excluded = append(excluded, m.Name)
			continue
		}
		for _, w := range decision.Warnings {
			warnings[m.Name] = append(warnings[m.Name], "Policy warning: "+w)
		}
		eligible = append(eligible, m)
	}
	return eligible, excluded, warnings, nil
}

// GenerateInsights summarizes the current tasks and KPIs.
func (s *Service) GenerateInsights(ctx context.Context) (analysis.Insights, error) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return analysis.Insights{}, err
	}
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return analysis.Insights{}, err
	}
	s.track("generate_insights", len(tasks)+len(kpis))
	return s.analyzer.Summarize(tasks, kpis), nil
}

// PredictPerformance projects KPI attainment from the KPI history.
func (s *Service) PredictPerformance(ctx context.Context) (analysis.PerformanceTrend, error) {
	kpis, err := s.store.ListKPIs(ctx)
	if err != nil {
		return analysis.PerformanceTrend{}, err
	}
	s.track("predict_performance", len(kpis))
	return s.analyzer.PredictPerformanceTrend(kpis), nil
}

// OptimizeSchedule orders the given tasks, or every stored task when none are given.
func (s *Service) OptimizeSchedule(ctx context.Context, tasks []models.Task) (analysis.ScheduleOptimization, error) {
	if tasks == nil {
		var err error
		if tasks, err = s.store.ListTasks(ctx); err != nil {
			return analysis.ScheduleOptimization{}, err
		}
	}
	s.track("optimize_schedule", len(tasks))
	return s.analyzer.OptimizeSchedule(tasks), nil
}

func (s *Service) teamAndTasks(ctx context.Context) ([]models.TeamMember, []models.Task, error) {
	team, err := s.store.ListTeamMembers(ctx)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		return nil, nil, err
	}
	return team, tasks, nil
}
