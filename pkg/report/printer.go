// Package report prints per-file tuning results to the console.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/charmbracelet/lipgloss"
	"github.com/fulmenhq/ruletune/pkg/severity"
)

// Default line templates. Triple braces keep paths from being HTML escaped.
const (
	DefaultPathTemplate       = "path: {{{path}}}"
	DefaultTransitionTemplate = "level: {{{from}}} -> {{{to}}}"
)

// Options configures a Printer.
type Options struct {
	// Color enables lipgloss styling; the terminal profile still decides
	// whether escape codes are emitted.
	Color              bool
	PathTemplate       string
	TransitionTemplate string
}

// Printer writes status lines. Write failures are ignored: reporting never
// changes the outcome of a run.
type Printer struct {
	out        io.Writer
	color      bool
	renderer   *lipgloss.Renderer
	path       *raymond.Template
	transition *raymond.Template
}

// New parses the configured templates and returns a Printer writing to out.
func New(out io.Writer, opts Options) (*Printer, error) {
	pathSrc := opts.PathTemplate
	if pathSrc == "" {
		pathSrc = DefaultPathTemplate
	}
	transitionSrc := opts.TransitionTemplate
	if transitionSrc == "" {
		transitionSrc = DefaultTransitionTemplate
	}

	pathTpl, err := raymond.Parse(pathSrc)
	if err != nil {
		return nil, fmt.Errorf("invalid path template: %w", err)
	}
	transitionTpl, err := raymond.Parse(transitionSrc)
	if err != nil {
		return nil, fmt.Errorf("invalid transition template: %w", err)
	}

	return &Printer{
		out:        out,
		color:      opts.Color,
		renderer:   lipgloss.NewRenderer(out),
		path:       pathTpl,
		transition: transitionTpl,
	}, nil
}

// PrintLine writes text, followed by a newline when newline is set.
func (p *Printer) PrintLine(text string, newline bool) {
	if newline {
		_, _ = fmt.Fprintln(p.out, text)
		return
	}
	_, _ = fmt.Fprint(p.out, text)
}

// Path announces the rule file about to be tuned.
func (p *Printer) Path(path string) {
	line := p.exec(p.path, map[string]string{"path": path}, "path: "+path)
	if p.color {
		line = pathStyle(p.renderer).Render(line)
	}
	p.PrintLine(line, true)
}

// Transition reports a level change. to is printed as given in the tuning
// file and colored by the level it starts with.
func (p *Printer) Transition(from, to string) {
	line := p.exec(p.transition, map[string]string{"from": from, "to": to}, "level: "+from+" -> "+to)
	if p.color {
		if l, ok := severity.FromPrefix(strings.TrimSpace(to)); ok {
			line = levelStyle(p.renderer, l).Render(line)
		}
	}
	p.PrintLine(line, true)
}

// Blank writes the separator line that closes a run.
func (p *Printer) Blank() {
	p.PrintLine("", true)
}

// Level renders a level name in its color.
func (p *Printer) Level(level string) string {
	if !p.color {
		return level
	}
	return levelStyle(p.renderer, severity.Level(level)).Render(level)
}

func (p *Printer) exec(tpl *raymond.Template, ctx map[string]string, fallback string) string {
	out, err := tpl.Exec(ctx)
	if err != nil {
		return fallback
	}
	return out
}
