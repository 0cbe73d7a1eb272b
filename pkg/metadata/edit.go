package metadata

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// SetField returns a copy of md with the JSON value raw stored at path.
//
// Paths use the gjson dot syntax: "settings.theme" sets a nested key,
// "pinnedNotes.-1" appends to the pinned list. md itself is not modified.
func SetField(md AppMetadata, path, raw string) (AppMetadata, error) {
	if path == "" {
		return md, fmt.Errorf("field path cannot be empty")
	}
	if !gjson.Valid(raw) {
		return md, fmt.Errorf("invalid JSON value for %s: %s", path, raw)
	}

	doc, err := encode(md)
	if err != nil {
		return md, err
	}

	// Null members are dropped so sjson creates them as objects when a
	// path runs through them
	for _, key := range []string{"folderOrder", "settings"} {
		if gjson.GetBytes(doc, key).Type == gjson.Null {
			if doc, err = sjson.DeleteBytes(doc, key); err != nil {
				return md, fmt.Errorf("failed to prepare metadata: %w", err)
			}
		}
	}

	updated, err := sjson.SetRawBytes(doc, path, []byte(raw))
	if err != nil {
		return md, fmt.Errorf("failed to set %s: %w", path, err)
	}

	result, err := decode(updated)
	if err != nil {
		return md, fmt.Errorf("value for %s does not fit the metadata document: %w", path, err)
	}
	return result, nil
}

// EncodeJSON renders md as the indented JSON document Save writes
func EncodeJSON(md AppMetadata) ([]byte, error) {
	return encode(md)
}

// DecodeJSON parses a document and fills in defaults for missing fields
func DecodeJSON(data []byte) (AppMetadata, error) {
	return decode(data)
}

// EncodeYAML renders md as YAML, for display
func EncodeYAML(md AppMetadata) ([]byte, error) {
	doc, err := encode(md)
	if err != nil {
		return nil, err
	}

	// YAML is a superset of JSON, so the node tree can be built from the
	// JSON text directly and re-emitted in block style
	var node yaml.Node
	if err := yaml.Unmarshal(doc, &node); err != nil {
		return nil, fmt.Errorf("failed to convert metadata: %w", err)
	}
	clearStyle(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode metadata as YAML: %w", err)
	}
	return out, nil
}

// clearStyle drops the flow and quoting styles inherited from JSON. Strings
// get an explicit tag so the encoder still quotes values like "true" or "1".
func clearStyle(node *yaml.Node) {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		node.Tag = "!!str"
	}
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
