// Package tuning applies level overrides from a tuning file to a rule corpus.
package tuning

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fulmenhq/ruletune/pkg/logger"
	"github.com/fulmenhq/ruletune/pkg/rule"
	"github.com/fulmenhq/ruletune/pkg/safeio"
	"github.com/fulmenhq/ruletune/pkg/severity"
)

// CorpusLoader scans a rule corpus.
type CorpusLoader interface {
	Load(root string, minLevel severity.Level, exclusions rule.Exclusions) (*rule.Corpus, error)
}

// Reporter receives per-file status lines. Implementations must not fail
// the run.
type Reporter interface {
	Path(path string)
	Transition(from, to string)
	Blank()
}

// Match is a rule joined with the override that applies to it.
type Match struct {
	Rule     rule.Rule
	Override Override
}

// Transition returns the level change the match plans.
func (m Match) Transition() Transition {
	return Transition{ID: m.Rule.ID, Path: m.Rule.Path, From: m.Rule.Level, To: m.Override.Level.String()}
}

// Join returns the rules that have an override, in the order of rules.
func Join(mapping Mapping, rules []rule.Rule) []Match {
	var matches []Match
	for _, r := range rules {
		if o, ok := mapping.Lookup(r.ID); ok {
			matches = append(matches, Match{Rule: r, Override: o})
		}
	}
	return matches
}

// Engine runs level tuning. It is not safe for concurrent use.
type Engine struct {
	Loader   CorpusLoader
	Reporter Reporter
	// Policy, when set, must allow every planned transition before any file is written.
	Policy *Policy
	// PolicyFile names a Rego module compiled into Policy once the tuning
	// file has parsed. Ignored when Policy is already set.
	PolicyFile string
	// HasHeader skips the first row of the tuning file.
	HasHeader bool
	// NoOp reports transitions without writing files.
	NoOp bool
}

// Run parses the tuning file at mappingPath, scans rulesRoot and rewrites
// the level line of every rule with an override. Any error stops the run
// immediately; files rewritten before the failure stay rewritten.
func (e *Engine) Run(ctx context.Context, mappingPath, rulesRoot string) error {
	mapping, err := ParseMapping(mappingPath, ParseOptions{HasHeader: e.HasHeader})
	if err != nil {
		return &Error{Kind: KindMapping, Err: err}
	}
	logger.Debug("Level tuning file parsed", logger.String("file", mappingPath), logger.Int("overrides", len(mapping)))

	// Noisy and excluded rules are tuning targets too, so nothing is filtered.
	corpus, err := e.Loader.Load(rulesRoot, severity.Informational, rule.Exclusions{})
	if err != nil {
		return &Error{Kind: KindCorpus, Err: err}
	}
	for _, d := range corpus.Diagnostics {
		logger.Warn("Skipping unusable rule file", logger.String("path", d.Path), logger.Err(d.Err))
	}

	matches := Join(mapping, corpus.Rules)
	logger.Debug("Rules matched", logger.Int("rules", corpus.Len()), logger.Int("matched", len(matches)))

	if e.Policy == nil && e.PolicyFile != "" {
		policy, err := LoadPolicy(ctx, e.PolicyFile)
		if err != nil {
			return &Error{Kind: KindPolicy, Err: err}
		}
		e.Policy = policy
	}
	if e.Policy != nil {
		transitions := make([]Transition, len(matches))
		for i, m := range matches {
			transitions[i] = m.Transition()
		}
		if err := e.Policy.Check(ctx, transitions); err != nil {
			return &Error{Kind: KindPolicy, Err: err}
		}
	}

	base := rulesRoot
	if info, err := os.Stat(rulesRoot); err == nil && !info.IsDir() {
		base = filepath.Dir(rulesRoot)
	}

	for _, m := range matches {
		e.Reporter.Path(m.Rule.Path)
		if err := e.apply(base, m); err != nil {
			return &Error{Kind: KindIO, Err: err}
		}
		e.Reporter.Transition(m.Rule.Level, m.Override.Spec)
	}
	e.Reporter.Blank()

	logger.Info("Level tuning finished", logger.Int("updated", len(matches)), logger.Bool("no_op", e.NoOp))
	return nil
}

func (e *Engine) apply(base string, m Match) error {
	content, err := safeio.ReadFileContained(base, m.Rule.Path)
	if err != nil {
		return err
	}
	text := string(content)

	oldLine := LevelLine(m.Rule.Level)
	if !strings.Contains(text, oldLine) {
		logger.Warn("Level line not found, file left unchanged",
			logger.String("path", m.Rule.Path), logger.String("expected", oldLine))
	}
	updated := Rewrite(text, oldLine, m.Override.Level)

	if e.NoOp {
		logger.Debug("Skipping write", logger.String("path", m.Rule.Path))
		return nil
	}
	return safeio.OverwriteFile(m.Rule.Path, []byte(updated))
}
