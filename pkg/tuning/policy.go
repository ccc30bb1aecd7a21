package tuning

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"
)

// PolicyQuery is the rule a tuning policy must define. Each element of the
// deny set is a message explaining why the run must not proceed.
const PolicyQuery = "data.ruletune.deny"

// Transition is one planned level change.
type Transition struct {
	ID   string
	Path string
	From string
	To   string
}

// Policy is a prepared Rego policy that vets planned transitions.
type Policy struct {
	query rego.PreparedEvalQuery
}

// LoadPolicy reads and compiles a Rego module from path.
func LoadPolicy(ctx context.Context, path string) (*Policy, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return NewPolicy(ctx, filepath.Base(path), string(src))
}

// NewPolicy compiles a Rego module given as source text.
func NewPolicy(ctx context.Context, name, module string) (*Policy, error) {
	query, err := rego.New(
		rego.Query(PolicyQuery),
		rego.Module(name, module),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile policy %s: %w", name, err)
	}
	return &Policy{query: query}, nil
}

// Check evaluates the policy over all transitions at once. It returns an
// error listing every denial message, sorted, when the deny set is not empty.
func (p *Policy) Check(ctx context.Context, transitions []Transition) error {
	items := make([]interface{}, 0, len(transitions))
	for _, t := range transitions {
		items = append(items, map[string]interface{}{
			"id":   t.ID,
			"path": t.Path,
			"from": t.From,
			"to":   t.To,
		})
	}
	input := map[string]interface{}{"transitions": items}

	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return fmt.Errorf("policy evaluation failed: %w", err)
	}

	var denials []string
	for _, r := range rs {
		for _, expr := range r.Expressions {
			values, ok := expr.Value.([]interface{})
			if !ok {
				continue
			}
			for _, v := range values {
				denials = append(denials, fmt.Sprint(v))
			}
		}
	}
	if len(denials) == 0 {
		return nil
	}
	sort.Strings(denials)
	return fmt.Errorf("tuning denied by policy:\n  %s", strings.Join(denials, "\n  "))
}
