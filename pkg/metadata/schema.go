package metadata

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Schema describes a well-formed sidecar document. Read is more lenient than
// this: it accepts anything that decodes, so the schema is only used to report
// problems to the user.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["folders"],
  "properties": {
    "folders": {
      "type": "object"
    },
    "pinnedNotes": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "folderOrder": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    },
    "settings": {}
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(Schema)

// Validate checks a raw sidecar document against Schema.
//
// It returns the list of schema violations, empty when the document is valid.
// The error is set only when the document cannot be checked at all, for
// example because it is not JSON.
func Validate(data []byte) ([]string, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues, nil
}
