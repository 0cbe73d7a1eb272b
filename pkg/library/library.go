// Package library wires the note, folder, metadata and watch components
// behind one facade. Every operation is logged and measured.
package library

import (
	"errors"
	"fmt"
	"time"

	"github.com/harun/notiz/pkg/metadata"
	"github.com/harun/notiz/pkg/notes"
	"github.com/harun/notiz/pkg/watch"
	"github.com/rs/zerolog"
)

// Operation names used in logs and metrics
const (
	OpListNotes                = "listNotes"
	OpListFolders              = "listFolders"
	OpSaveNote                 = "saveNote"
	OpDeleteNote               = "deleteNote"
	OpRenameNote               = "renameNote"
	OpReadMetadata             = "readMetadata"
	OpSaveMetadata             = "saveMetadata"
	OpCreateFolder             = "createFolder"
	OpRenameFolder             = "renameFolder"
	OpDeleteFolderRecursive    = "deleteFolderRecursive"
	OpDeleteFolderMoveContents = "deleteFolderMoveContents"
	OpStartWatch               = "startWatch"
)

// ErrClosed is returned by operations on a closed library
var ErrClosed = errors.New("library is closed")

// Config holds configuration for the library
type Config struct {
	Logger       zerolog.Logger
	Recorder     Recorder // Optional
	IgnoreHidden bool     // Drop watch events for dot-prefixed paths
}

// Library is the main facade that coordinates all storage components
type Library struct {
	logger   zerolog.Logger
	recorder Recorder

	notes    *notes.NoteRepository
	folders  *notes.FolderRepository
	metadata *metadata.Store
	watcher  *watch.Service
}

// New creates a new library
func New(config Config) *Library {
	recorder := config.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	l := &Library{
		logger:   config.Logger.With().Str("component", "library").Logger(),
		recorder: recorder,
		notes:    notes.NewNoteRepository(config.Logger),
		folders:  notes.NewFolderRepository(config.Logger),
		watcher: watch.NewService(watch.Config{
			IgnoreHidden: config.IgnoreHidden,
			Logger:       config.Logger,
			OnReplace: func(old, current watch.Session) {
				recorder.IncWatchRestart()
			},
		}),
	}

	l.metadata = metadata.NewStore(metadata.StoreConfig{
		Logger:    config.Logger,
		OnMigrate: l.handleMigration,
	})

	l.watcher.Subscribe(func(event watch.ChangeEvent) {
		l.recorder.IncWatchEvent(string(event.Kind))
	})

	return l
}

// observe logs and records the outcome of one operation
func (l *Library) observe(op string, start time.Time, err error) {
	l.recorder.ObserveOperation(op, start, err)

	if err != nil {
		l.logger.Error().
			Err(err).
			Str("op", op).
			Msg("Operation failed")
		return
	}

	l.logger.Debug().
		Str("op", op).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

func (l *Library) handleMigration(root string, err error) {
	if err != nil {
		l.recorder.IncMigration(MigrationFailed)
		return
	}
	l.recorder.IncMigration(MigrationSucceeded)
}

// ListNotes returns every note below root
func (l *Library) ListNotes(root string) (result []notes.Note, err error) {
	defer func(start time.Time) { l.observe(OpListNotes, start, err) }(time.Now())
	return l.notes.ListNotes(root)
}

// ListFolders returns the visible top-level folders of root
func (l *Library) ListFolders(root string) (result []string, err error) {
	defer func(start time.Time) { l.observe(OpListFolders, start, err) }(time.Now())
	return l.folders.ListFolders(root)
}

// SaveNote creates or overwrites a note
func (l *Library) SaveNote(root, filename, content string) (err error) {
	defer func(start time.Time) { l.observe(OpSaveNote, start, err) }(time.Now())
	return l.notes.SaveNote(root, filename, content)
}

// DeleteNote removes a note
func (l *Library) DeleteNote(root, filename string) (err error) {
	defer func(start time.Time) { l.observe(OpDeleteNote, start, err) }(time.Now())
	return l.notes.DeleteNote(root, filename)
}

// RenameNote moves a note within root
func (l *Library) RenameNote(root, oldFilename, newFilename string) (err error) {
	defer func(start time.Time) { l.observe(OpRenameNote, start, err) }(time.Now())
	return l.notes.RenameNote(root, oldFilename, newFilename)
}

// ReadMetadata returns the metadata of root. It never fails; unreadable
// documents yield the defaults.
func (l *Library) ReadMetadata(root string) metadata.AppMetadata {
	defer func(start time.Time) { l.observe(OpReadMetadata, start, nil) }(time.Now())
	return l.metadata.Read(root)
}

// SaveMetadata writes the metadata of root
func (l *Library) SaveMetadata(root string, md metadata.AppMetadata) (err error) {
	defer func(start time.Time) { l.observe(OpSaveMetadata, start, err) }(time.Now())
	return l.metadata.Save(root, md)
}

// CreateFolder creates a folder and any missing parents
func (l *Library) CreateFolder(path string) (err error) {
	defer func(start time.Time) { l.observe(OpCreateFolder, start, err) }(time.Now())
	return l.folders.CreateFolder(path)
}

// RenameFolder moves a folder within root
func (l *Library) RenameFolder(root, oldName, newName string) (err error) {
	defer func(start time.Time) { l.observe(OpRenameFolder, start, err) }(time.Now())
	return l.folders.RenameFolder(root, oldName, newName)
}

// DeleteFolderRecursive removes a folder and everything in it
func (l *Library) DeleteFolderRecursive(path string) (err error) {
	defer func(start time.Time) { l.observe(OpDeleteFolderRecursive, start, err) }(time.Now())
	return l.folders.DeleteFolderRecursive(path)
}

// DeleteFolderMoveContents moves the notes of a folder to root, then removes
// the folder
func (l *Library) DeleteFolderMoveContents(folderPath, rootPath string) (err error) {
	defer func(start time.Time) { l.observe(OpDeleteFolderMoveContents, start, err) }(time.Now())
	return l.folders.DeleteFolderMoveContents(folderPath, rootPath)
}

// StartWatch watches path, replacing any active watch
func (l *Library) StartWatch(path string) (err error) {
	defer func(start time.Time) { l.observe(OpStartWatch, start, err) }(time.Now())

	if err := l.watcher.StartWatch(path); err != nil {
		if errors.Is(err, watch.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("failed to start watch: %w", err)
	}
	return nil
}

// StopWatch stops the active watch, if any
func (l *Library) StopWatch() error {
	return l.watcher.Stop()
}

// ActiveWatch describes the active watch
func (l *Library) ActiveWatch() (watch.Session, bool) {
	return l.watcher.Active()
}

// Subscribe registers a handler for change events and returns a function
// that unregisters it
func (l *Library) Subscribe(handler watch.Handler) func() {
	return l.watcher.Subscribe(handler)
}

// Close stops the watch and releases subscribers
func (l *Library) Close() error {
	return l.watcher.Close()
}
