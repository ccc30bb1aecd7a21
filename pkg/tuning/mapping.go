package tuning

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fulmenhq/ruletune/pkg/rule"
	"github.com/fulmenhq/ruletune/pkg/severity"
)

// Override is one validated row of a level tuning file.
type Override struct {
	ID string
	// Level is the canonical level the level field starts with.
	Level severity.Level
	// Spec is the level field as written, cut at the first '#'.
	Spec string
}

// Mapping associates rule ids with their override. When a file lists an id
// more than once the last row wins.
type Mapping map[string]Override

// Lookup returns the override for id, if any
func (m Mapping) Lookup(id string) (Override, bool) {
	o, ok := m[id]
	return o, ok
}

// ParseOptions controls how a level tuning file is read.
type ParseOptions struct {
	// HasHeader skips the first row, as in the id,new_level files shipped
	// with public rule sets.
	HasHeader bool
}

// OpenError reports a level tuning file that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Cannot open file. [file:%s]", e.Path)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ErrInvalidLevel is returned for a level field that does not start with a
// canonical level name.
var ErrInvalidLevel = errors.New("level tuning file's level must be in " + severity.Names())

// ParseMapping reads a level tuning file of "<id>,<level>[#comment]" rows.
// Any invalid row fails the whole parse; no partial mapping is returned.
func ParseMapping(path string, opts ParseOptions) (Mapping, error) {
	f, err := os.Open(path) // #nosec G304 -- operator supplied tuning file
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	mapping := Mapping{}
	first := true
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read level tuning file %s: %w", path, err)
		}
		if first {
			first = false
			if opts.HasHeader {
				continue
			}
		}
		line, _ := r.FieldPos(0)

		o, err := parseRow(path, record)
		if err != nil {
			var rowErr *rowError
			if errors.As(err, &rowErr) {
				return nil, fmt.Errorf("level tuning file %s line %d: %s", path, line, rowErr.msg)
			}
			return nil, err
		}
		mapping[o.ID] = o
	}
	return mapping, nil
}

type rowError struct{ msg string }

func (e *rowError) Error() string { return e.msg }

func parseRow(path string, record []string) (Override, error) {
	if len(record) < 1 || record[0] == "" {
		return Override{}, &rowError{msg: "missing id field"}
	}
	id := record[0]
	if !rule.IsValidID(id) {
		return Override{}, fmt.Errorf("Failed to read level tuning file [file:%s]. %s is not correct id format, fix it.", path, id)
	}

	if len(record) < 2 || record[1] == "" {
		return Override{}, &rowError{msg: "missing level field"}
	}
	field := record[1]
	level, ok := severity.FromPrefix(field)
	if !ok {
		return Override{}, ErrInvalidLevel
	}
	spec, _, _ := strings.Cut(field, "#")

	return Override{ID: id, Level: level, Spec: spec}, nil
}
