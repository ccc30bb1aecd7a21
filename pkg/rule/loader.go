package rule

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/ruletune/pkg/severity"
	"gopkg.in/yaml.v3"
)

// DefaultInclude matches rule files anywhere below the corpus root.
var DefaultInclude = []string{"**/*.yml", "**/*.yaml"}

var (
	ErrEmptyRule    = errors.New("empty rule file")
	ErrMissingID    = errors.New("rule has no id")
	ErrMissingLevel = errors.New("rule has no level")
)

// Ignorer decides whether a path below the corpus root is skipped.
type Ignorer interface {
	Ignored(path string, isDir bool) bool
}

// Loader discovers rule files below a root and parses the fields ruletune
// needs from each one.
type Loader struct {
	// Include holds doublestar patterns relative to the root. Empty means DefaultInclude.
	Include []string
	// Ignore, when set, prunes files and directories from the walk.
	Ignore Ignorer
	// Strict turns the first per-file diagnostic into a load error.
	Strict bool
}

// ruleDocument is the subset of a rule file the loader reads.
type ruleDocument struct {
	ID    string `yaml:"id"`
	Level string `yaml:"level"`
	Title string `yaml:"title"`
}

// Load scans root, which may be a directory or a single rule file. Rules
// below minLevel and rules whose id is in exclusions are not returned.
// Traversal and read errors are fatal; malformed rules are reported as
// diagnostics unless the loader is strict.
func (l *Loader) Load(root string, minLevel severity.Level, exclusions Exclusions) (*Corpus, error) {
	if !minLevel.Valid() {
		return nil, fmt.Errorf("invalid minimum level %q, must be in %s", minLevel, severity.Names())
	}
	patterns := l.Include
	if len(patterns) == 0 {
		patterns = DefaultInclude
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read rules path %s: %w", root, err)
	}

	var files []string
	if info.IsDir() {
		files, err = l.discover(root, patterns)
		if err != nil {
			return nil, err
		}
	} else {
		files = []string{root}
	}

	corpus := &Corpus{}
	for _, path := range files {
		r, err := parseFile(path)
		if err != nil {
			var diag Diagnostic
			if !errors.As(err, &diag) {
				return nil, err
			}
			if l.Strict {
				return nil, diag
			}
			corpus.Diagnostics = append(corpus.Diagnostics, diag)
			continue
		}
		if !r.Severity().AtLeast(minLevel) || exclusions.Has(r.ID) {
			corpus.Skipped++
			continue
		}
		corpus.Rules = append(corpus.Rules, r)
	}

	sort.Slice(corpus.Rules, func(i, j int) bool {
		return corpus.Rules[i].Path < corpus.Rules[j].Path
	})
	return corpus, nil
}

func (l *Loader) discover(root string, patterns []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			if l.Ignore != nil && l.Ignore.Ignored(path, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if l.Ignore != nil && l.Ignore.Ignored(path, false) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, rel); ok {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// parseFile returns a Diagnostic for content problems and a plain error for
// I/O failures.
func parseFile(path string) (Rule, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the corpus walk
	if err != nil {
		return Rule{}, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	var doc ruleDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptyRule
		}
		return Rule{}, Diagnostic{Path: path, Err: err}
	}
	if doc.ID == "" {
		return Rule{}, Diagnostic{Path: path, Err: ErrMissingID}
	}
	if doc.Level == "" {
		return Rule{}, Diagnostic{Path: path, Err: ErrMissingLevel}
	}

	return Rule{
		Path:  path,
		ID:    doc.ID,
		Level: doc.Level,
		Title: doc.Title,
	}, nil
}
