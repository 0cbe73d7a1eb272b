package notes

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolve joins a slash-separated name onto root, refusing names that would
// leave the root
func resolve(root, name string) (string, error) {
	if root == "" || name == "" {
		return "", ErrEmptyPath
	}

	local := filepath.FromSlash(name)
	if filepath.IsAbs(local) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, name)
	}

	cleanPath := filepath.Clean(local)
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapesRoot, name)
	}

	return filepath.Join(root, cleanPath), nil
}

// folderOf derives the slash-separated folder of a file relative to root
func folderOf(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}

	dir := filepath.Dir(rel)
	if dir == "." {
		return "", nil
	}
	return filepath.ToSlash(dir), nil
}
