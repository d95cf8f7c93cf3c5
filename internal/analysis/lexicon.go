package analysis

import "strings"

// LexiconEntry maps one label to the keyword substrings that vote for it.
type LexiconEntry struct {
	Label    string   `json:"label" yaml:"label" mapstructure:"label"`
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`
}

// Lexicon is an ordered label → keyword table. Declaration order breaks ties.
type Lexicon []LexiconEntry

// Labels returns the labels in declaration order.
func (l Lexicon) Labels() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Label
	}
	return out
}

// Keywords returns the keywords declared for label.
func (l Lexicon) Keywords(label string) []string {
	for _, e := range l {
		if e.Label == label {
			return e.Keywords
		}
	}
	return nil
}

// Clone returns a deep copy.
func (l Lexicon) Clone() Lexicon {
	out := make(Lexicon, len(l))
	for i, e := range l {
		out[i] = LexiconEntry{Label: e.Label, Keywords: append([]string(nil), e.Keywords...)}
	}
	return out
}

// Merge overlays entries onto l. A matching label (case-insensitive) has its
// keywords replaced in place; unknown labels are appended in the given order.
// Keywords are lower-cased since matching runs against case-folded text.
func (l Lexicon) Merge(entries []LexiconEntry) Lexicon {
	out := l.Clone()
	for _, e := range entries {
		label := strings.TrimSpace(e.Label)
		if label == "" {
			continue
		}
		kws := make([]string, 0, len(e.Keywords))
		for _, k := range e.Keywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				kws = append(kws, k)
			}
		}
		replaced := false
		for i := range out {
			if strings.EqualFold(out[i].Label, label) {
				out[i].Keywords = kws
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, LexiconEntry{Label: label, Keywords: kws})
		}
	}
	return out
}

// DefaultCategoryLexicon returns the task category table.
func DefaultCategoryLexicon() Lexicon {
	return Lexicon{
		{Label: CategoryDevelopment, Keywords: []string{"code", "develop", "build", "implement", "program", "software", "app", "website", "api", "database", "frontend", "backend", "react", "javascript", "python", "feature"}},
		{Label: CategoryMarketing, Keywords: []string{"marketing", "campaign", "social", "content", "brand", "promotion", "advertising", "seo", "email", "newsletter"}},
		{Label: CategoryOperations, Keywords: []string{"operations", "process", "workflow", "procedure", "system", "infrastructure", "deployment", "maintenance"}},
		{Label: CategoryResearch, Keywords: []string{"research", "analyze", "study", "investigate", "survey", "data", "report", "findings"}},
		{Label: CategoryProjectManagement, Keywords: []string{"project", "manage", "coordinate", "plan", "schedule", "timeline", "milestone", "meeting"}},
		{Label: CategoryQualityAssurance, Keywords: []string{"test", "quality", "bug", "review", "validation", "verification", "qa"}},
		{Label: CategoryContentManagement, Keywords: []string{"content", "write", "edit", "publish", "documentation", "manual", "guide"}},
		{Label: CategoryAnalysis, Keywords: []string{"analysis", "metrics", "performance", "statistics", "dashboard", "kpi", "insights"}},
	}
}

// DefaultPriorityLexicon returns the priority keyword table.
func DefaultPriorityLexicon() Lexicon {
	return Lexicon{
		{Label: "High", Keywords: []string{"urgent", "critical", "asap", "emergency", "important", "priority"}},
		{Label: "Medium", Keywords: []string{"moderate", "normal", "standard", "regular"}},
		{Label: "Low", Keywords: []string{"minor", "low", "optional", "nice to have", "when possible"}},
	}
}

// DefaultComplexityLexicon returns the complexity keyword table.
func DefaultComplexityLexicon() Lexicon {
	return Lexicon{
		{Label: string(ComplexityHigh), Keywords: []string{"complex", "advanced", "sophisticated", "comprehensive", "full-scale", "enterprise"}},
		{Label: string(ComplexityMedium), Keywords: []string{"moderate", "standard", "typical", "regular"}},
		{Label: string(ComplexityLow), Keywords: []string{"simple", "basic", "quick", "minor", "small"}},
	}
}

// Category labels of the default lexicon.
const (
	CategoryDevelopment       = "Development"
	CategoryMarketing         = "Marketing"
	CategoryOperations        = "Operations"
	CategoryResearch          = "Research"
	CategoryProjectManagement = "Project Management"
	CategoryQualityAssurance  = "Quality Assurance"
	CategoryContentManagement = "Content Management"
	CategoryAnalysis          = "Analysis"
)
