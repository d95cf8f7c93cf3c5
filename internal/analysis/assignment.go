package analysis

import (
	"fmt"
	"sort"

	"github.com/josephgoksu/OpsWing/models"
)

// AssignmentRequest describes the task to place.
type AssignmentRequest struct {
	TaskName        string `json:"task_name" validate:"required"`
	TaskDescription string `json:"task_description,omitempty"`
	RequiredSkills  string `json:"required_skills,omitempty"`
	Priority        string `json:"priority,omitempty"`
}

// CandidateScore is the full scoring breakdown for one member.
type CandidateScore struct {
	Name               string         `json:"name"`
	Score              float64        `json:"score"`
	SkillMatch         float64        `json:"skill_match"`
	Capacity           float64        `json:"capacity"`
	PriorityAdjustment float64        `json:"priority_adjustment"`
	WorkloadStatus     WorkloadStatus `json:"workload_status"`
	CurrentTasks       int            `json:"current_tasks"`
}

// Alternative is a fallback assignee ranked by spare capacity.
type Alternative struct {
	Name              string         `json:"name"`
	WorkloadStatus    WorkloadStatus `json:"workload_status"`
	CurrentTasks      int            `json:"current_tasks"`
	CapacityAvailable int            `json:"capacity_available"`
}

// AssignmentRecommendation is the outcome of ScoreAssignment.
type AssignmentRecommendation struct {
	RecommendedAssignee string            `json:"recommended_assignee"`
	ConfidenceScore     float64           `json:"confidence_score"`
	Reasoning           []string          `json:"assignment_reasoning"`
	Alternatives        []Alternative     `json:"alternative_assignees"`
	Candidates          []CandidateScore  `json:"candidates"`
	TaskAnalysis        Classification    `json:"task_analysis"`
	Strategy            PriorityWeighting `json:"strategy"`
	// Excluded lists members removed by policy before scoring.
	Excluded []string `json:"excluded,omitempty"`
}

const (
	maxAlternatives  = 3
	neutralSkill     = 0.5
	penaltyThreshold = 70
	penaltyFactor    = 0.7
)

// SkillMatch is the share of required skills the member holds, or 0.5 when
// either side is empty.
func SkillMatch(required, have []string) float64 {
	if len(required) == 0 || len(have) == 0 {
		return neutralSkill
	}
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	hit := 0
	for _, r := range required {
		if _, ok := set[r]; ok {
			hit++
		}
	}
	return clamp01(float64(hit) / float64(len(required)))
}

func multiplicativeAdjustment(p models.TaskPriority) float64 {
	switch p {
	case models.PriorityHigh:
		return 1.2
	case models.PriorityLow:
		return 0.8
	default:
		return 1.0
	}
}

// priorityAdjustment applies the configured strategy. The threshold variant
// compares the member's priority-weighted workload score.
func (a *Analyzer) priorityAdjustment(p models.TaskPriority, rec WorkloadRecord) float64 {
	if a.cfg.Weighting == WeightingThresholdPenalty {
		if p == models.PriorityHigh && rec.PriorityWeight > penaltyThreshold {
			return penaltyFactor
		}
		return 1.0
	}
	return multiplicativeAdjustment(p)
}

// ScoreAssignment ranks members for a task. Score is
// (skill*0.6 + capacity*0.4) adjusted for priority; ties keep input order.
// Alternatives are the top members by spare capacity, winner excluded.
func (a *Analyzer) ScoreAssignment(req AssignmentRequest, members []models.TeamMember, currentTasks []models.Task) (AssignmentRecommendation, error) {
	if len(members) == 0 {
		return AssignmentRecommendation{}, fmt.Errorf("team members: none to assign: %w", ErrInvalidInput)
	}

	workload := a.AnalyzeWorkload(members, currentTasks)
	category := a.CategorizeTask(req.TaskName, req.TaskDescription)
	priority := models.NormalizePriority(req.Priority)
	required := models.Tokens(req.RequiredSkills)

	candidates := make([]CandidateScore, 0, len(workload.Members))
	best := -1
	for _, rec := range workload.Members {
		m, _ := models.FindMember(members, rec.MemberName)
		skill := SkillMatch(required, m.SkillSet())
		capacity := float64(rec.CapacityAvailable) / 100
		adj := a.priorityAdjustment(priority, rec)

		c := CandidateScore{
			Name:               rec.MemberName,
			Score:              round2((skill*0.6 + capacity*0.4) * adj),
			SkillMatch:         skill,
			Capacity:           capacity,
			PriorityAdjustment: adj,
			WorkloadStatus:     rec.WorkloadStatus,
			CurrentTasks:       rec.CurrentTasks,
		}
		candidates = append(candidates, c)
		if best < 0 || c.Score > candidates[best].Score {
			best = len(candidates) - 1
		}
	}
	winner := candidates[best]

	return AssignmentRecommendation{
		RecommendedAssignee: winner.Name,
		ConfidenceScore:     clamp01(winner.Score),
		Reasoning: []string{
			fmt.Sprintf("Capacity available: %d%%", int(winner.Capacity*100+0.5)),
			fmt.Sprintf("Skill match: %d%%", int(winner.SkillMatch*100+0.5)),
			fmt.Sprintf("Current workload: %s", winner.WorkloadStatus),
			fmt.Sprintf("Priority adjustment: x%.2f (%s)", winner.PriorityAdjustment, a.cfg.Weighting),
			fmt.Sprintf("Final score: %.2f", winner.Score),
		},
		Alternatives: alternatives(workload.Members, winner.Name),
		Candidates:   candidates,
		TaskAnalysis: category,
		Strategy:     a.cfg.Weighting,
	}, nil
}

func alternatives(records []WorkloadRecord, winner string) []Alternative {
	ranked := make([]WorkloadRecord, len(records))
	copy(ranked, records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CapacityAvailable > ranked[j].CapacityAvailable
	})
	if len(ranked) > maxAlternatives {
		ranked = ranked[:maxAlternatives]
	}

	out := make([]Alternative, 0, len(ranked))
	for _, r := range ranked {
		if r.MemberName == winner {
			continue
		}
		out = append(out, Alternative{
			Name:              r.MemberName,
			WorkloadStatus:    r.WorkloadStatus,
			CurrentTasks:      r.CurrentTasks,
			CapacityAvailable: r.CapacityAvailable,
		})
	}
	return out
}
