package notes

import (
	"os"
	"path/filepath"
)

// walkEntry is a pending item on the traversal stack
type walkEntry struct {
	path  string
	isDir bool
}

// Walk returns every non-directory entry below root in depth-first order.
//
// Entries of one directory are visited in lexicographic order, and a
// subdirectory is fully traversed before its later siblings. Unreadable
// directories are skipped silently. Symbolic links are returned as entries and
// never followed, so the traversal cannot cycle.
//
// The traversal uses an explicit stack, so deep trees do not grow the
// goroutine stack.
func Walk(root string) []string {
	var files []string

	stack := []walkEntry{{path: root, isDir: true}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !top.isDir {
			files = append(files, top.path)
			continue
		}

		entries, err := os.ReadDir(top.path)
		if err != nil {
			continue
		}

		// Push in reverse so the smallest name is popped first
		for i := len(entries) - 1; i >= 0; i-- {
			stack = append(stack, walkEntry{
				path:  filepath.Join(top.path, entries[i].Name()),
				isDir: entries[i].IsDir(),
			})
		}
	}

	return files
}

// isNote reports whether a path carries the note extension. A bare ".md"
// has no stem and is a dotfile, not a note.
func isNote(path string) bool {
	base := filepath.Base(path)
	return filepath.Ext(base) == NoteExtension && len(base) > len(NoteExtension)
}
