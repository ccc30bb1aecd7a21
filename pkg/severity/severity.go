// Package severity defines the ordered rule levels used across ruletune.
package severity

import "strings"

// Level is a rule severity. The zero value is not a valid level.
type Level string

const (
	Informational Level = "informational"
	Low           Level = "low"
	Medium        Level = "medium"
	High          Level = "high"
	Critical      Level = "critical"
)

// All lists the levels from least to most severe.
var All = []Level{Informational, Low, Medium, High, Critical}

// String returns the canonical name of the level
func (l Level) String() string {
	return string(l)
}

// Rank returns the position of the level in All, or -1 when unknown.
func (l Level) Rank() int {
	for i, lv := range All {
		if lv == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is one of the five canonical levels
func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// AtLeast reports whether l is as severe as floor. Unknown levels rank as
// informational so that a permissive floor never drops them.
func (l Level) AtLeast(floor Level) bool {
	r := l.Rank()
	if r < 0 {
		r = 0
	}
	return r >= floor.Rank()
}

// Parse returns the level whose canonical name equals s exactly.
func Parse(s string) (Level, bool) {
	l := Level(s)
	return l, l.Valid()
}

// FromPrefix returns the canonical level that s starts with. Matching is
// case-sensitive and anything after the level name is tolerated, so
// "high # noisy on DCs" yields High.
func FromPrefix(s string) (Level, bool) {
	for _, l := range All {
		if strings.HasPrefix(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Names returns the canonical names joined for use in messages.
func Names() string {
	names := make([]string, len(All))
	for i, l := range All {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
