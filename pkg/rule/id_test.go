package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{name: "canonical", id: "12345678-1234-1234-1234-123456789012", valid: true},
		{name: "lowercase hex", id: "e1a3f2b4-0c2d-4e5f-8a9b-0123456789ab", valid: true},
		{name: "lowercase non-hex letters", id: "zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz", valid: true},
		{name: "truncated last group", id: "12345678-1234-1234-1234-12", valid: false},
		{name: "uppercase", id: "E1A3F2B4-0C2D-4E5F-8A9B-0123456789AB", valid: false},
		{name: "braces", id: "{12345678-1234-1234-1234-123456789012}", valid: false},
		{name: "dash misplaced", id: "1234567-81234-1234-1234-123456789012", valid: false},
		{name: "no dashes", id: "123456781234123412341234567890123456", valid: false},
		{name: "trailing space", id: "12345678-1234-1234-1234-12345678901 ", valid: false},
		{name: "empty", id: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidID(tt.id))
		})
	}
}
