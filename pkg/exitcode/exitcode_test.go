package exitcode

import (
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	codes := map[string]int{
		"Success":         Success,
		"GeneralError":    GeneralError,
		"ConfigError":     ConfigError,
		"MappingError":    MappingError,
		"CorpusError":     CorpusError,
		"FileSystemError": FileSystemError,
		"PolicyError":     PolicyError,
	}
	expected := map[string]int{
		"Success":         0,
		"GeneralError":    1,
		"ConfigError":     2,
		"MappingError":    3,
		"CorpusError":     4,
		"FileSystemError": 5,
		"PolicyError":     6,
	}
	for name, code := range codes {
		if code != expected[name] {
			t.Errorf("%s = %v, expected %v", name, code, expected[name])
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{ConfigError, "Configuration error"},
		{MappingError, "Level tuning file error"},
		{CorpusError, "Rule corpus error"},
		{FileSystemError, "File system error"},
		{PolicyError, "Denied by policy"},
		{999, "Unknown error"},
	}

	for _, test := range tests {
		if result := String(test.code); result != test.expected {
			t.Errorf("String(%d) = %v, expected %v", test.code, result, test.expected)
		}
	}
}
