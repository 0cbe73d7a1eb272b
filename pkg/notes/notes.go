package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NoteRepository reads and writes note files below a root directory
type NoteRepository struct {
	logger zerolog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(logger zerolog.Logger) *NoteRepository {
	return &NoteRepository{
		logger: logger.With().Str("component", "notes").Logger(),
	}
}

// ListNotes loads every note below root.
//
// The call is all-or-nothing: the first file that cannot be read or stat'ed
// aborts the listing.
func (r *NoteRepository) ListNotes(root string) ([]Note, error) {
	if root == "" {
		return nil, ErrEmptyPath
	}

	notes := make([]Note, 0)
	for _, path := range Walk(root) {
		if !isNote(path) {
			continue
		}

		note, err := r.loadNote(root, path)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	r.logger.Debug().
		Str("root", root).
		Int("count", len(notes)).
		Msg("Listed notes")

	return notes, nil
}

// loadNote reads one note file
func (r *NoteRepository) loadNote(root, path string) (Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Note{}, fmt.Errorf("failed to read note %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return Note{}, fmt.Errorf("failed to stat note %s: %w", path, err)
	}

	folder, err := folderOf(root, path)
	if err != nil {
		return Note{}, err
	}

	updatedAt := info.ModTime()
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	return Note{
		Filename:  filepath.Base(path),
		Folder:    folder,
		Content:   string(content),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

// SaveNote writes content to filename below root, replacing any existing file.
// The filename may contain folders ("sub/dir/file.md"); missing ones are created.
func (r *NoteRepository) SaveNote(root, filename, content string) error {
	path, err := resolve(root, filename)
	if err != nil {
		return err
	}

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create note directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}

	r.logger.Debug().
		Str("path", path).
		Int("size", len(content)).
		Msg("Saved note")

	return nil
}

// DeleteNote removes a note file. Deleting a missing note is an error.
func (r *NoteRepository) DeleteNote(root, filename string) error {
	path, err := resolve(root, filename)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("Deleted note")
	return nil
}

// RenameNote moves a note to a new name below the same root.
// The destination folder must already exist.
func (r *NoteRepository) RenameNote(root, oldFilename, newFilename string) error {
	oldPath, err := resolve(root, oldFilename)
	if err != nil {
		return err
	}
	newPath, err := resolve(root, newFilename)
	if err != nil {
		return err
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename note: %w", err)
	}

	r.logger.Debug().
		Str("from", oldPath).
		Str("to", newPath).
		Msg("Renamed note")

	return nil
}
