package rule

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Exclusions is a set of rule ids left out of a corpus scan. A nil set
// excludes nothing.
type Exclusions map[string]struct{}

// Has reports whether id is excluded
func (e Exclusions) Has(id string) bool {
	_, ok := e[id]
	return ok
}

// Add inserts ids into the set.
func (e Exclusions) Add(ids ...string) {
	for _, id := range ids {
		e[id] = struct{}{}
	}
}

// LoadExclusions reads line-oriented id lists such as exclude_rules.txt and
// noisy_rules.txt. Text after '#' is a comment. Paths that do not exist are
// skipped so optional lists can be configured unconditionally.
func LoadExclusions(paths ...string) (Exclusions, error) {
	set := Exclusions{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := readExclusionFile(path, set); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
	}
	return set, nil
}

func readExclusionFile(path string, set Exclusions) error {
	f, err := os.Open(path) // #nosec G304 -- operator supplied list
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		id := strings.TrimSpace(line)
		if id == "" {
			continue
		}
		if !IsValidID(id) {
			return fmt.Errorf("%s:%d: %s is not correct id format", path, lineNo, id)
		}
		set.Add(id)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}
