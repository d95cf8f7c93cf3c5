package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/josephgoksu/OpsWing/models"
)

// LabelScore is the number of keywords of one label found in the text.
type LabelScore struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

// Classification is the outcome of scoring text against a lexicon.
// Confidence is a bounded match ratio, not a calibrated probability.
type Classification struct {
	Label      string       `json:"label"`
	Confidence float64      `json:"confidence"`
	Scores     []LabelScore `json:"all_scores"`
	Reasoning  string       `json:"reasoning"`
}

// Score returns the score recorded for label.
func (c Classification) Score(label string) int {
	for _, s := range c.Scores {
		if s.Label == label {
			return s.Score
		}
	}
	return 0
}

// Classify counts, per label, the keywords that occur as substrings of the
// case-folded text. The highest score wins; ties go to the label declared
// first. Empty text yields the first label with confidence 0.
func Classify(text string, lex Lexicon) Classification {
	if len(lex) == 0 {
		return Classification{Scores: []LabelScore{}, Reasoning: "No labels configured"}
	}

	folded := strings.ToLower(text)
	scores := make([]LabelScore, len(lex))
	best := 0
	for i, e := range lex {
		n := 0
		for _, kw := range e.Keywords {
			if kw != "" && strings.Contains(folded, strings.ToLower(kw)) {
				n++
			}
		}
		scores[i] = LabelScore{Label: e.Label, Score: n}
		if n > scores[best].Score {
			best = i
		}
	}

	words := len(strings.Fields(folded))
	denom := math.Max(0.1*float64(words), 1)
	top := scores[best]

	return Classification{
		Label:      top.Label,
		Confidence: round2(math.Min(float64(top.Score)/denom, 1)),
		Scores:     scores,
		Reasoning:  fmt.Sprintf("Matched %d keywords for %s", top.Score, top.Label),
	}
}

func taskText(name, description string) string {
	return name + " " + description
}

// CategorizeTask classifies a task against the category lexicon.
func (a *Analyzer) CategorizeTask(name, description string) Classification {
	return Classify(taskText(name, description), a.cfg.Categories)
}

// PrioritySuggestion is a recommended priority with its evidence.
type PrioritySuggestion struct {
	Priority   models.TaskPriority `json:"suggested_priority"`
	Confidence float64             `json:"confidence"`
	Reasoning  []string            `json:"reasoning"`
	Scores     []LabelScore        `json:"all_scores"`
}

// SuggestPriority picks a priority from keywords, falling back to the
// proximity of dueDate when no keyword matches.
func (a *Analyzer) SuggestPriority(name, description, dueDate string) PrioritySuggestion {
	c := Classify(taskText(name, description), a.cfg.Priorities)
	if c.Score(c.Label) > 0 {
		return PrioritySuggestion{
			Priority:   models.NormalizePriority(c.Label),
			Confidence: math.Max(c.Confidence, 0.5),
			Reasoning:  []string{c.Reasoning},
			Scores:     c.Scores,
		}
	}

	due, ok := models.ParseDate(dueDate)
	if !ok {
		return PrioritySuggestion{
			Priority:   models.PriorityMedium,
			Confidence: 0.5,
			Reasoning:  []string{"No priority keywords or due date found, using default priority"},
			Scores:     c.Scores,
		}
	}

	days := daysUntil(a.now(), due)
	p := models.PriorityLow
	switch {
	case days <= 2:
		p = models.PriorityHigh
	case days <= 7:
		p = models.PriorityMedium
	}
	reason := fmt.Sprintf("Due in %d days", days)
	if days < 0 {
		reason = fmt.Sprintf("Overdue by %d days", -days)
	}
	return PrioritySuggestion{
		Priority:   p,
		Confidence: 0.7,
		Reasoning:  []string{"No priority keywords found", reason},
		Scores:     c.Scores,
	}
}

// daysUntil counts calendar days from now's date to due.
func daysUntil(now, due time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, due.Location())
	return int(math.Round(due.Sub(today).Hours() / 24))
}
