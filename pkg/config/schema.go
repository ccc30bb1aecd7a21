package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/ruletune-config-v1.json
var configSchemaV1 []byte

// ValidateConfig validates a configuration document against the embedded
// schema. format is the file extension without the dot ("yaml", "yml",
// "json" or "toml").
func ValidateConfig(data []byte, format string) error {
	doc, err := decodeDocument(data, format)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(configSchemaV1),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// FormatOf returns the document format implied by a config file name.
func FormatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func decodeDocument(data []byte, format string) (interface{}, error) {
	var doc interface{}
	switch format {
	case "yaml", "yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return map[string]interface{}{}, nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config as YAML: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config as JSON: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config as TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %q", format)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}
