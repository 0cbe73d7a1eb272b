package notes

import (
	"errors"
	"time"
)

// NoteExtension marks a file as a note
const NoteExtension = ".md"

// hiddenPrefix marks folders that are never listed
const hiddenPrefix = "."

var (
	// ErrEmptyPath is returned when a required path or name is empty
	ErrEmptyPath = errors.New("path cannot be empty")

	// ErrPathEscapesRoot is returned when a relative name resolves outside the root
	ErrPathEscapesRoot = errors.New("path escapes root directory")

	// ErrFolderIsRoot is returned when a folder operation targets the root itself
	ErrFolderIsRoot = errors.New("folder is the root directory")
)

// Note represents one markdown file on disk
type Note struct {
	Filename  string    `json:"filename"`  // Base name including extension
	Folder    string    `json:"folder"`    // Slash-separated path relative to the root, "" for the root
	Content   string    `json:"content"`   // Full file content
	UpdatedAt time.Time `json:"updatedAt"` // File modification time
}

// Path returns the slash-separated path of the note relative to the root
func (n Note) Path() string {
	if n.Folder == "" {
		return n.Filename
	}
	return n.Folder + "/" + n.Filename
}
