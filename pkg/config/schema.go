package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "keys": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "forward":  {"type": "string", "minLength": 1},
        "backward": {"type": "string", "minLength": 1},
        "reset":    {"type": "string", "minLength": 1}
      }
    },
    "mode": {"type": "string", "enum": ["normal", "insert", "global"]}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(schema)

// validateSchema checks a decoded YAML document and reports every violation
func validateSchema(doc interface{}) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
	}

	return nil
}
