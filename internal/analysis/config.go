package analysis

import (
	"fmt"
	"strings"

	"github.com/josephgoksu/OpsWing/models"
	"github.com/spf13/viper"
)

// Complexity is the difficulty tier derived from task text.
type Complexity string

const (
	ComplexityHigh   Complexity = "High"
	ComplexityMedium Complexity = "Medium"
	ComplexityLow    Complexity = "Low"
)

// PriorityWeighting selects how task priority adjusts an assignment score.
type PriorityWeighting string

const (
	// WeightingMultiplicative scales every score by the priority multiplier.
	WeightingMultiplicative PriorityWeighting = "multiplicative"
	// WeightingThresholdPenalty only penalizes loaded members for High tasks.
	WeightingThresholdPenalty PriorityWeighting = "threshold_penalty"
)

// ParseWeighting maps a config string onto a strategy. Empty selects the default.
func ParseWeighting(s string) (PriorityWeighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(WeightingMultiplicative):
		return WeightingMultiplicative, nil
	case string(WeightingThresholdPenalty), "threshold", "penalty":
		return WeightingThresholdPenalty, nil
	}
	return "", fmt.Errorf("unknown priority weighting %q: %w", s, ErrInvalidInput)
}

// DeadlineTable holds base day offsets keyed by priority then complexity.
type DeadlineTable map[models.TaskPriority]map[Complexity]int

// Days returns the offset for the pair, falling back to Medium/Medium.
func (t DeadlineTable) Days(p models.TaskPriority, c Complexity) int {
	if row, ok := t[p]; ok {
		if d, ok := row[c]; ok {
			return d
		}
	}
	if row, ok := t[models.PriorityMedium]; ok {
		if d, ok := row[ComplexityMedium]; ok {
			return d
		}
	}
	return 4
}

func (t DeadlineTable) clone() DeadlineTable {
	out := make(DeadlineTable, len(t))
	for p, row := range t {
		r := make(map[Complexity]int, len(row))
		for c, d := range row {
			r[c] = d
		}
		out[p] = r
	}
	return out
}

// DefaultDeadlineTable returns the base day offsets.
func DefaultDeadlineTable() DeadlineTable {
	return DeadlineTable{
		models.PriorityHigh:   {ComplexityHigh: 1, ComplexityMedium: 2, ComplexityLow: 3},
		models.PriorityMedium: {ComplexityHigh: 2, ComplexityMedium: 4, ComplexityLow: 6},
		models.PriorityLow:    {ComplexityHigh: 3, ComplexityMedium: 7, ComplexityLow: 14},
	}
}

// TemplateEntry is a subtask template list for one category.
type TemplateEntry struct {
	Category string   `json:"category" yaml:"category" mapstructure:"category"`
	Steps    []string `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// DefaultTemplates returns the dedicated decomposition templates.
func DefaultTemplates() map[string][]string {
	return map[string][]string{
		CategoryDevelopment: {
			"Requirements Analysis and Planning",
			"System Design and Architecture",
			"Frontend Development",
			"Backend Development",
			"Database Design and Implementation",
			"Testing and Quality Assurance",
			"Deployment and Documentation",
		},
		CategoryMarketing: {
			"Market Research and Analysis",
			"Strategy Development",
			"Content Creation",
			"Campaign Implementation",
			"Performance Monitoring",
			"Optimization and Reporting",
		},
		CategoryProjectManagement: {
			"Project Planning and Scope Definition",
			"Resource Allocation",
			"Timeline Development",
			"Risk Assessment",
			"Execution Monitoring",
			"Stakeholder Communication",
			"Project Closure and Review",
		},
	}
}

// DefaultGenericTemplate is used for categories without a dedicated template.
func DefaultGenericTemplate() []string {
	return []string{
		"Planning and Analysis",
		"Implementation Phase 1",
		"Implementation Phase 2",
		"Review and Testing",
		"Finalization and Documentation",
	}
}

// Default tuning values.
const (
	defaultProductiveHoursPerDay = 6
	defaultWorkdayHours          = 8
)

// Config is the immutable vocabulary and tuning of an Analyzer.
type Config struct {
	Categories   Lexicon
	Priorities   Lexicon
	Complexities Lexicon

	Deadlines DeadlineTable
	// ProductiveHoursPerDay converts effort estimates into deadline days.
	ProductiveHoursPerDay int
	// WorkdayHours converts decomposed effort into execution days.
	WorkdayHours int

	Templates       map[string][]string
	GenericTemplate []string

	Weighting PriorityWeighting
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Categories:            DefaultCategoryLexicon(),
		Priorities:            DefaultPriorityLexicon(),
		Complexities:          DefaultComplexityLexicon(),
		Deadlines:             DefaultDeadlineTable(),
		ProductiveHoursPerDay: defaultProductiveHoursPerDay,
		WorkdayHours:          defaultWorkdayHours,
		Templates:             DefaultTemplates(),
		GenericTemplate:       DefaultGenericTemplate(),
		Weighting:             WeightingMultiplicative,
	}
}

func (c Config) clone() Config {
	out := c
	out.Categories = c.Categories.Clone()
	out.Priorities = c.Priorities.Clone()
	out.Complexities = c.Complexities.Clone()
	out.Deadlines = c.Deadlines.clone()
	out.Templates = make(map[string][]string, len(c.Templates))
	for k, v := range c.Templates {
		out.Templates[k] = append([]string(nil), v...)
	}
	out.GenericTemplate = append([]string(nil), c.GenericTemplate...)
	return out
}

// withDefaults fills zero fields so a partially built Config stays usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.Categories) == 0 {
		c.Categories = d.Categories
	}
	if len(c.Priorities) == 0 {
		c.Priorities = d.Priorities
	}
	if len(c.Complexities) == 0 {
		c.Complexities = d.Complexities
	}
	if len(c.Deadlines) == 0 {
		c.Deadlines = d.Deadlines
	}
	if c.ProductiveHoursPerDay <= 0 {
		c.ProductiveHoursPerDay = d.ProductiveHoursPerDay
	}
	if c.WorkdayHours <= 0 {
		c.WorkdayHours = d.WorkdayHours
	}
	if c.Templates == nil {
		c.Templates = d.Templates
	}
	if len(c.GenericTemplate) == 0 {
		c.GenericTemplate = d.GenericTemplate
	}
	if c.Weighting == "" {
		c.Weighting = d.Weighting
	}
	return c
}

// LoadConfig builds a Config from the analysis section of v, merging
// overrides over the defaults. A project can customize it in .opswing.yaml:
//
//	analysis:
//	  weighting: threshold_penalty
//	  categories:
//	    - label: Development
//	      keywords: [code, golang, kubernetes]
//	    - label: Finance
//	      keywords: [invoice, budget, payroll]
//	  templates:
//	    - category: Finance
//	      steps: [Gather Figures, Reconcile, Sign-off]
//
// Lists are used rather than maps so label order, which breaks ties, survives.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()
	if v == nil {
		return cfg, nil
	}

	w, err := ParseWeighting(v.GetString("analysis.weighting"))
	if err != nil {
		return cfg, err
	}
	cfg.Weighting = w

	for key, lex := range map[string]*Lexicon{
		"analysis.categories":   &cfg.Categories,
		"analysis.priorities":   &cfg.Priorities,
		"analysis.complexities": &cfg.Complexities,
	} {
		if !v.IsSet(key) {
			continue
		}
		var entries []LexiconEntry
		if err := v.UnmarshalKey(key, &entries); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", key, err)
		}
		*lex = lex.Merge(entries)
	}

	if v.IsSet("analysis.templates") {
		var entries []TemplateEntry
		if err := v.UnmarshalKey("analysis.templates", &entries); err != nil {
			return cfg, fmt.Errorf("failed to parse analysis.templates: %w", err)
		}
		for _, e := range entries {
			if e.Category != "" && len(e.Steps) > 0 {
				cfg.Templates[e.Category] = append([]string(nil), e.Steps...)
			}
		}
	}

	if h := v.GetInt("analysis.productiveHoursPerDay"); h > 0 {
		cfg.ProductiveHoursPerDay = h
	}
	if h := v.GetInt("analysis.workdayHours"); h > 0 {
		cfg.WorkdayHours = h
	}
	return cfg, nil
}
