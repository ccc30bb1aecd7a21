package tuning

import (
	"testing"

	"github.com/fulmenhq/ruletune/pkg/severity"
	"github.com/stretchr/testify/assert"
)

func TestLevelLine(t *testing.T) {
	assert.Equal(t, "level: medium", LevelLine("medium"))
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		name     string
		original string
		oldLine  string
		target   severity.Level
		expected string
	}{
		{
			name:     "single level line",
			original: "title: Test\nid: x\nlevel: informational\nstatus: stable\n",
			oldLine:  "level: informational",
			target:   severity.High,
			expected: "title: Test\nid: x\nlevel: high\nstatus: stable\n",
		},
		{
			name:     "comments and spacing preserved",
			original: "# header comment\nlevel: low   # tuned\r\ntags:\n    - attack.t1059\n",
			oldLine:  "level: low",
			target:   severity.Critical,
			expected: "# header comment\nlevel: critical   # tuned\r\ntags:\n    - attack.t1059\n",
		},
		{
			name:     "every occurrence replaced",
			original: "description: raised from level: medium\nlevel: medium\n",
			oldLine:  "level: medium",
			target:   severity.Low,
			expected: "description: raised from level: low\nlevel: low\n",
		},
		{
			name:     "quoted level left alone",
			original: "level: 'medium'\n",
			oldLine:  "level: medium",
			target:   severity.High,
			expected: "level: 'medium'\n",
		},
		{
			name:     "same level",
			original: "level: high\n",
			oldLine:  "level: high",
			target:   severity.High,
			expected: "level: high\n",
		},
		{
			name:     "empty anchor",
			original: "level: high\n",
			oldLine:  "",
			target:   severity.Low,
			expected: "level: high\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Rewrite(tt.original, tt.oldLine, tt.target))
		})
	}
}
