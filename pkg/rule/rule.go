// Package rule discovers detection-rule files and exposes the identity and
// severity of each one.
package rule

import (
	"fmt"

	"github.com/fulmenhq/ruletune/pkg/severity"
)

// Rule is the loader's read-only view of one rule file.
type Rule struct {
	Path  string
	ID    string
	Level string
	Title string
}

// Severity returns the rule level as a severity.Level. The result may be
// invalid when the file carries a non-canonical value.
func (r Rule) Severity() severity.Level {
	return severity.Level(r.Level)
}

// Diagnostic records a rule file that could not be used.
type Diagnostic struct {
	Path string
	Err  error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %v", d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Corpus is the result of one loader scan.
type Corpus struct {
	Rules       []Rule
	Diagnostics []Diagnostic
	// Skipped counts rules dropped by the level floor or exclusions.
	Skipped int
}

// Len returns the number of usable rules
func (c *Corpus) Len() int {
	return len(c.Rules)
}
