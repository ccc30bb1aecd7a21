package config

import (
	"strings"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  string
		wantErr string
	}{
		{name: "empty yaml", data: "", format: "yaml"},
		{name: "full yaml", format: "yml", data: `rules:
  path: ./rules
  include: ["**/*.yml"]
  strict: false
  respect_ignore: true
  exclude_file: ./rules/config/exclude_rules.txt
  noisy_file: ./rules/config/noisy_rules.txt
tuning:
  file: ./rules/config/level_tuning.txt
  header: true
  policy: ""
report:
  path_template: "path: {{{path}}}"
  transition_template: "level: {{{from}}} -> {{{to}}}"
`},
		{name: "json", data: `{"rules": {"path": "./r"}}`, format: "json"},
		{name: "unknown top-level key", data: "format:\n  go: {}\n", format: "yaml", wantErr: "configuration validation failed"},
		{name: "wrong type", data: "rules:\n  strict: maybe\n", format: "yaml", wantErr: "configuration validation failed"},
		{name: "empty path", data: "rules:\n  path: \"\"\n", format: "yaml", wantErr: "configuration validation failed"},
		{name: "broken yaml", data: "rules: [", format: "yaml", wantErr: "failed to parse config as YAML"},
		{name: "broken json", data: "{", format: "json", wantErr: "failed to parse config as JSON"},
		{name: "toml", format: "toml", data: `[rules]
path = "./sigma"
strict = true

[tuning]
header = true
`},
		{name: "toml wrong type", data: "[tuning]\nheader = \"yes\"\n", format: "toml", wantErr: "configuration validation failed"},
		{name: "broken toml", data: "[rules", format: "toml", wantErr: "failed to parse config as TOML"},
		{name: "unsupported format", data: "<rules/>", format: "xml", wantErr: "unsupported config format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfig([]byte(tt.data), tt.format)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateConfig() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateConfig() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateConfig() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]string{
		"ruletune.yaml":    "yaml",
		".ruletune.YML":    "yml",
		"/etc/rt/cfg.json": "json",
		"ruletune.toml":    "toml",
		"noext":            "",
	}
	for in, want := range cases {
		if got := FormatOf(in); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", in, got, want)
		}
	}
}
