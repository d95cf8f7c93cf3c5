package analysis

import (
	"fmt"

	"github.com/josephgoksu/OpsWing/models"
)

// DeadlineSuggestion is a recommended due date.
type DeadlineSuggestion struct {
	SuggestedDeadline string              `json:"suggested_deadline"`
	DaysFromNow       int                 `json:"days_from_now"`
	Priority          models.TaskPriority `json:"priority"`
	Complexity        Complexity          `json:"complexity"`
	Reasoning         []string            `json:"reasoning"`
	Confidence        float64             `json:"confidence"`
}

const deadlineConfidence = 0.8

// Complexity classifies the task difficulty. A High keyword always wins,
// then Low, otherwise Medium.
func (a *Analyzer) Complexity(name, description string) Complexity {
	c := Classify(taskText(name, description), a.cfg.Complexities)
	switch {
	case c.Score(string(ComplexityHigh)) > 0:
		return ComplexityHigh
	case c.Score(string(ComplexityLow)) > 0:
		return ComplexityLow
	default:
		return ComplexityMedium
	}
}

// SuggestDeadline combines priority and complexity into a base offset and
// lets an effort estimate push it later, never earlier. A nil or zero
// estimate is ignored.
func (a *Analyzer) SuggestDeadline(name, description, priority string, estimatedHours *int) (DeadlineSuggestion, error) {
	if estimatedHours != nil && *estimatedHours < 0 {
		return DeadlineSuggestion{}, fmt.Errorf("estimated hours %d: %w", *estimatedHours, ErrInvalidInput)
	}

	p := models.NormalizePriority(priority)
	cx := a.Complexity(name, description)
	days := a.cfg.Deadlines.Days(p, cx)

	reasoning := []string{
		fmt.Sprintf("Priority level: %s", p),
		fmt.Sprintf("Complexity assessment: %s", cx),
	}

	if estimatedHours != nil && *estimatedHours > 0 {
		perDay := a.cfg.ProductiveHoursPerDay
		effort := (*estimatedHours + perDay - 1) / perDay
		if effort > days {
			days = effort
		}
		reasoning = append(reasoning, fmt.Sprintf("Estimated duration: %d hours", *estimatedHours))
	}

	date := a.now().AddDate(0, 0, days)
	reasoning = append(reasoning, fmt.Sprintf("Suggested completion: %s", date.Format("January 02, 2006")))

	return DeadlineSuggestion{
		SuggestedDeadline: date.Format(models.DateLayout),
		DaysFromNow:       days,
		Priority:          p,
		Complexity:        cx,
		Reasoning:         reasoning,
		Confidence:        deadlineConfidence,
	}, nil
}
