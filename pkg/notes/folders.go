package notes

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// FolderRepository manages the directories that group notes
type FolderRepository struct {
	logger zerolog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(logger zerolog.Logger) *FolderRepository {
	return &FolderRepository{
		logger: logger.With().Str("component", "folders").Logger(),
	}
}

// ListFolders returns the names of the immediate subdirectories of root,
// skipping hidden ones
func (r *FolderRepository) ListFolders(root string) ([]string, error) {
	if root == "" {
		return nil, ErrEmptyPath
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory: %w", err)
	}

	folders := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), hiddenPrefix) {
			continue
		}
		folders = append(folders, entry.Name())
	}

	return folders, nil
}

// CreateFolder creates a directory and any missing parents.
// An existing directory is not an error.
func (r *FolderRepository) CreateFolder(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("Created folder")
	return nil
}

// RenameFolder renames a folder below root
func (r *FolderRepository) RenameFolder(root, oldName, newName string) error {
	oldPath, err := resolve(root, oldName)
	if err != nil {
		return err
	}
	newPath, err := resolve(root, newName)
	if err != nil {
		return err
	}
	if oldPath == filepath.Clean(root) || newPath == filepath.Clean(root) {
		return ErrFolderIsRoot
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename folder: %w", err)
	}

	r.logger.Debug().
		Str("from", oldPath).
		Str("to", newPath).
		Msg("Renamed folder")

	return nil
}

// DeleteFolderRecursive removes a folder and everything beneath it
func (r *FolderRepository) DeleteFolderRecursive(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if _, err := os.Lstat(path); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	r.logger.Debug().Str("path", path).Msg("Deleted folder")
	return nil
}

// DeleteFolderMoveContents moves every note below folderPath into rootPath and
// then deletes folderPath.
//
// Notes are moved one at a time in walk order. A note whose name is taken in
// rootPath gets the first free "_N" suffix before its extension, checked
// against the root as it is at that moment. Files that are not notes are
// deleted with the folder. A failed move aborts the call; notes moved before
// the failure stay in the root.
//
// Nothing guards against other processes changing rootPath meanwhile.
func (r *FolderRepository) DeleteFolderMoveContents(folderPath, rootPath string) error {
	if folderPath == "" || rootPath == "" {
		return ErrEmptyPath
	}
	if filepath.Clean(folderPath) == filepath.Clean(rootPath) {
		return ErrFolderIsRoot
	}

	if _, err := os.Lstat(folderPath); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	moved := 0
	for _, file := range Walk(folderPath) {
		if !isNote(file) {
			continue
		}

		target := freeTarget(rootPath, filepath.Base(file))
		if err := os.Rename(file, target); err != nil {
			return fmt.Errorf("failed to move note %s: %w", file, err)
		}

		r.logger.Debug().
			Str("from", file).
			Str("to", target).
			Msg("Moved note out of folder")
		moved++
	}

	if err := os.RemoveAll(folderPath); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	r.logger.Debug().
		Str("path", folderPath).
		Int("moved", moved).
		Msg("Deleted folder after moving notes")

	return nil
}

// freeTarget returns root/base, or root/<stem>_N<ext> for the smallest N >= 1
// that does not exist yet
func freeTarget(root, base string) string {
	target := filepath.Join(root, base)
	if !exists(target) {
		return target
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for counter := 1; ; counter++ {
		target = filepath.Join(root, stem+"_"+strconv.Itoa(counter)+ext)
		if !exists(target) {
			return target
		}
	}
}

// exists reports whether anything is present at path
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
