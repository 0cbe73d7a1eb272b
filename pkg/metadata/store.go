package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// MigrationFunc is called after every migration attempt. err is nil when the
// legacy file was copied.
type MigrationFunc func(root string, err error)

// StoreConfig holds configuration for the metadata store
type StoreConfig struct {
	Logger    zerolog.Logger
	OnMigrate MigrationFunc // Optional
}

// Store reads, migrates and writes the sidecar document
type Store struct {
	logger    zerolog.Logger
	onMigrate MigrationFunc
}

// NewStore creates a new metadata store
func NewStore(config StoreConfig) *Store {
	return &Store{
		logger:    config.Logger.With().Str("component", "metadata").Logger(),
		onMigrate: config.OnMigrate,
	}
}

// Paths returns the current and legacy sidecar paths of a root
func Paths(root string) (current, legacy string) {
	return filepath.Join(root, ConfigFileName), filepath.Join(root, LegacyFileName)
}

// Read returns the document of root, migrating the legacy file first when
// needed. It never fails: any problem yields Default().
func (s *Store) Read(root string) AppMetadata {
	configPath, legacyPath := Paths(root)

	if s.needsMigration(configPath, legacyPath) {
		s.migrate(root, configPath, legacyPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().
				Err(err).
				Str("path", configPath).
				Msg("Failed to read metadata, using defaults")
		}
		return Default()
	}

	md, err := decode(data)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("path", configPath).
			Msg("Failed to parse metadata, using defaults")
		return Default()
	}

	return md
}

// Save replaces the current sidecar file of root with md
func (s *Store) Save(root string, md AppMetadata) error {
	data, err := encode(md)
	if err != nil {
		return err
	}

	configPath, _ := Paths(root)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	s.logger.Debug().
		Str("path", configPath).
		Int("pinned", len(md.PinnedNotes)).
		Msg("Saved metadata")

	return nil
}

// needsMigration decides whether the legacy file should replace the current one.
//
// It does when the current file is missing, or when it parses but carries no
// usable folder groupings (field absent, not an object, or empty).
func (s *Store) needsMigration(configPath, legacyPath string) bool {
	if !fileExists(legacyPath) {
		return false
	}
	if !fileExists(configPath) {
		return true
	}

	data, err := os.ReadFile(configPath)
	if err != nil || !gjson.ValidBytes(data) {
		return false
	}

	folders := gjson.GetBytes(data, "folders")
	if !folders.Exists() || !folders.IsObject() {
		return true
	}
	return len(folders.Map()) == 0
}

// migrate copies the legacy file over the current one. Failures are logged
// and otherwise ignored, the next read retries.
func (s *Store) migrate(root, configPath, legacyPath string) {
	err := copyFile(legacyPath, configPath)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("legacy", legacyPath).
			Msg("Failed to migrate legacy metadata")
	} else {
		s.logger.Info().
			Str("legacy", legacyPath).
			Str("path", configPath).
			Msg("Migrated legacy metadata")
	}

	if s.onMigrate != nil {
		s.onMigrate(root, err)
	}
}

// copyFile writes the raw bytes of src to dst
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read legacy metadata: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// fileExists reports whether path can be stat'ed
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// decode parses a sidecar document and fills in defaults
func decode(data []byte) (AppMetadata, error) {
	var md AppMetadata
	if err := json.Unmarshal(data, &md); err != nil {
		return AppMetadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	md.normalize()
	return md, nil
}

// encode renders md as indented JSON
func encode(md AppMetadata) ([]byte, error) {
	md.normalize()

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(md); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	return buf.Bytes(), nil
}
