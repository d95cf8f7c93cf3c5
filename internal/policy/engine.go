package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/open-policy-agent/opa/v1/rego"
	"github.com/spf13/afero"
)

// DefaultPolicyPackage is the Rego package queried for assignment guardrails.
const DefaultPolicyPackage = "opswing.assignment"

// Engine wraps OPA for evaluating assignment guardrails.
// All evaluation happens locally without external network calls.
// An Engine is safe for concurrent use once constructed.
type Engine struct {
	policies      []*PolicyFile
	policyPackage string

	deny rego.PreparedEvalQuery
	warn rego.PreparedEvalQuery
}

// EngineConfig holds configuration for creating an Engine.
type EngineConfig struct {
	// PoliciesDir is the directory containing .rego policy files.
	// Empty means no policies: every candidate is allowed.
	PoliciesDir string

	// PolicyPackage is the Rego package to query.
	// If empty, defaults to "opswing.assignment"
	PolicyPackage string

	// Fs is the filesystem to use for loading policies.
	// If nil, uses the OS filesystem.
	Fs afero.Fs
}

// NewEngine loads the policies from the configured directory and prepares
// the deny and warn queries.
func NewEngine(ctx context.Context, cfg EngineConfig) (*Engine, error) {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	policies, err := NewLoader(cfg.Fs, cfg.PoliciesDir).LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load policies: %w", err)
	}
	return NewEngineWithPolicies(ctx, cfg.PolicyPackage, policies)
}

// NewEngineWithPolicies creates an engine with explicitly provided policies.
func NewEngineWithPolicies(ctx context.Context, pkg string, policies []*PolicyFile) (*Engine, error) {
	if pkg == "" {
		pkg = DefaultPolicyPackage
	}
	e := &Engine{policies: policies, policyPackage: pkg}
	if len(policies) == 0 {
		return e, nil
	}

	modules := make([]func(*rego.Rego), len(policies))
	for i, p := range policies {
		modules[i] = rego.Module(p.Path, p.Content)
	}

	var err error
	if e.deny, err = prepare(ctx, "data."+pkg+".deny", modules); err != nil {
		return nil, fmt.Errorf("prepare deny rules: %w", err)
	}
	if e.warn, err = prepare(ctx, "data."+pkg+".warn", modules); err != nil {
		return nil, fmt.Errorf("prepare warn rules: %w", err)
	}
	return e, nil
}

func prepare(ctx context.Context, query string, modules []func(*rego.Rego)) (rego.PreparedEvalQuery, error) {
	opts := append([]func(*rego.Rego){rego.Query(query)}, modules...)
	return rego.New(opts...).PrepareForEval(ctx)
}

// PolicyCount returns the number of loaded policies.
func (e *Engine) PolicyCount() int {
	return len(e.policies)
}

// PolicyNames returns the names of all loaded policies.
func (e *Engine) PolicyNames() []string {
	names := make([]string, len(e.policies))
	for i, p := range e.policies {
		names[i] = p.Name
	}
	return names
}

// Evaluate runs the loaded policies against one candidate.
// Strings produced by "deny" rules become violations that exclude the
// candidate; strings from "warn" rules are reported but do not block.
func (e *Engine) Evaluate(ctx context.Context, input Input) (*Decision, error) {
	decision := &Decision{
		DecisionID:  uuid.New().String(),
		PolicyPath:  e.policyPackage,
		Result:      ResultAllow,
		Candidate:   input.Candidate.Name,
		Input:       input,
		EvaluatedAt: time.Now().UTC(),
	}
	if len(e.policies) == 0 {
		return decision, nil
	}

	violations, err := querySet(ctx, e.deny, input)
	if err != nil {
		return nil, fmt.Errorf("query deny rules: %w", err)
	}
	warnings, err := querySet(ctx, e.warn, input)
	if err != nil {
		return nil, fmt.Errorf("query warn rules: %w", err)
	}

	decision.Warnings = warnings
	if len(violations) > 0 {
		decision.Result = ResultDeny
		decision.Violations = violations
	}

	slog.Debug("policy evaluated",
		"decision_id", decision.DecisionID,
		"candidate", decision.Candidate,
		"result", decision.Result,
		"violations", len(violations))
	return decision, nil
}

// querySet evaluates a set-generating rule and returns its string members.
// An undefined rule yields nothing.
func querySet(ctx context.Context, q rego.PreparedEvalQuery, input Input) ([]string, error) {
	rs, err := q.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return nil, err
	}

	var results []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			set, ok := expr.Value.([]any)
			if !ok {
				continue
			}
			for _, item := range set {
				if s, ok := item.(string); ok {
					results = append(results, s)
				}
			}
		}
	}
	return results, nil
}

// ValidatePolicy checks if a policy has valid Rego syntax.
func ValidatePolicy(ctx context.Context, content string) error {
	_, err := rego.New(
		rego.Query("data"),
		rego.Module("validation.rego", content),
	).PrepareForEval(ctx)
	if err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}
	return nil
}
