package tuning

import (
	"strings"

	"github.com/fulmenhq/ruletune/pkg/severity"
)

const levelKey = "level: "

// LevelLine returns the "level: <level>" text a rule file is expected to
// contain for the given level value.
func LevelLine(level string) string {
	return levelKey + level
}

// Rewrite replaces every occurrence of oldLevelLine in original with the
// level line for target. Nothing else in the text changes. When
// oldLevelLine is absent the text is returned as is.
func Rewrite(original, oldLevelLine string, target severity.Level) string {
	if oldLevelLine == "" {
		return original
	}
	return strings.ReplaceAll(original, oldLevelLine, LevelLine(target.String()))
}
