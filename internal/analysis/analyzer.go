// Package analysis implements the rule-based task analysis engine:
// keyword classification, deadline estimation, workload balancing,
// decomposition, assignment scoring and reporting.
//
// Every operation is a pure function of its arguments and the Analyzer's
// configuration. Nothing is cached between calls.
package analysis

import (
	"math"
	"time"
)

// Analyzer runs the heuristics over caller-supplied snapshots.
// It is immutable after New and safe for concurrent use.
type Analyzer struct {
	cfg Config
	now func() time.Time
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the time source used for deadlines and overdue checks.
func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		if now != nil {
			a.now = now
		}
	}
}

// New returns an Analyzer over a private copy of cfg.
func New(cfg Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg: cfg.withDefaults().clone(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Weighting reports the configured assignment strategy.
func (a *Analyzer) Weighting() PriorityWeighting {
	return a.cfg.Weighting
}

// Categories returns the category labels in tie-break order.
func (a *Analyzer) Categories() []string {
	return a.cfg.Categories.Labels()
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
