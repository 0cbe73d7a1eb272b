package metadata

import (
	"bytes"
	"encoding/json"
)

const (
	// ConfigFileName is the current sidecar file in the root directory
	ConfigFileName = "notizapp-config.json"

	// LegacyFileName is the sidecar written by older releases, read only for migration
	LegacyFileName = ".notizapp-metadata.json"
)

// AppMetadata is the sidecar document of one root directory.
//
// Folders and Settings are owned by the application and kept as raw JSON so
// they round-trip unmodified.
type AppMetadata struct {
	Folders     json.RawMessage `json:"folders"`
	PinnedNotes []string        `json:"pinnedNotes"`
	FolderOrder []string        `json:"folderOrder"` // nil means no explicit order
	Settings    json.RawMessage `json:"settings"`    // nil means no settings
}

// Default returns the empty document
func Default() AppMetadata {
	return AppMetadata{
		Folders:     json.RawMessage(`{}`),
		PinnedNotes: []string{},
	}
}

// normalize replaces absent values with their defaults
func (m *AppMetadata) normalize() {
	if isNull(m.Folders) {
		m.Folders = json.RawMessage(`{}`)
	}
	if m.PinnedNotes == nil {
		m.PinnedNotes = []string{}
	}
	if isNull(m.Settings) {
		m.Settings = nil
	}
}

// isNull reports whether raw is empty or the JSON literal null
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
