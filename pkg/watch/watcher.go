package watch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// watcherConfig holds configuration for one watch session
type watcherConfig struct {
	Path         string
	IgnoreHidden bool
	Emit         func(ChangeEvent)
	Logger       zerolog.Logger
}

// watcher watches one directory tree. fsnotify only watches single
// directories, so every subdirectory is registered on its own and new ones
// are added as their create events arrive.
type watcher struct {
	fsw          *fsnotify.Watcher
	session      Session
	ignoreHidden bool
	emit         func(ChangeEvent)
	logger       zerolog.Logger

	running  bool
	done     chan struct{}
	loopDone chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// newWatcher creates a watcher; call start to begin delivering events
func newWatcher(config watcherConfig) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	id := uuid.NewString()
	return &watcher{
		fsw: fsw,
		session: Session{
			ID:        id,
			Path:      config.Path,
			StartedAt: time.Now(),
		},
		ignoreHidden: config.IgnoreHidden,
		emit:         config.Emit,
		logger:       config.Logger.With().Str("watch_id", id).Logger(),
		done:         make(chan struct{}),
		loopDone:     make(chan struct{}),
	}, nil
}

// start registers the tree and starts the event loop
func (w *watcher) start() error {
	info, err := os.Stat(w.session.Path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.session.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("failed to watch %s: not a directory", w.session.Path)
	}

	if err := w.addRecursive(w.session.Path, true); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.session.Path, err)
	}

	w.running = true
	go w.eventLoop()

	w.logger.Info().
		Str("path", w.session.Path).
		Msg("Watch started")

	return nil
}

// stop closes the watcher and waits for the event loop to exit. No event is
// emitted once stop returns. Safe to call more than once.
func (w *watcher) stop() error {
	w.stopOnce.Do(func() {
		close(w.done)
		if err := w.fsw.Close(); err != nil {
			w.stopErr = fmt.Errorf("failed to close watcher: %w", err)
		}
	})

	if w.running {
		<-w.loopDone
		w.logger.Info().Msg("Watch stopped")
	}
	return w.stopErr
}

// eventLoop processes file system events
func (w *watcher) eventLoop() {
	defer close(w.loopDone)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Runtime failures do not end the watch
			w.logger.Error().Err(err).Msg("Watcher error")

		case <-w.done:
			return
		}
	}
}

// handleEvent turns one fsnotify event into a change notification
func (w *watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	kind := kindOf(event.Op)

	// New directories need their own registration
	if kind == EventAdd {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name, false); err != nil {
				w.logger.Warn().
					Err(err).
					Str("path", event.Name).
					Msg("Failed to watch new directory")
			}
		}
	}

	select {
	case <-w.done:
		return
	default:
	}

	w.logger.Debug().
		Str("path", event.Name).
		Str("op", event.Op.String()).
		Msg("File change detected")

	w.emit(ChangeEvent{
		Kind:      kind,
		Path:      event.Name,
		WatchID:   w.session.ID,
		Timestamp: time.Now(),
	})
}

// addRecursive registers a directory and all its subdirectories. Failures
// below the top directory are logged and skipped; a failure on the top
// directory is returned only when strict is set.
func (w *watcher) addRecursive(path string, strict bool) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if walkPath == path && strict {
				return err
			}
			w.logger.Warn().
				Err(err).
				Str("path", walkPath).
				Msg("Error walking path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}

		// Prune ignored directories early to avoid walking them
		if w.shouldIgnore(walkPath) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(walkPath); err != nil {
			if walkPath == path && strict {
				return err
			}
			w.logger.Warn().
				Err(err).
				Str("path", walkPath).
				Msg("Failed to watch path")
		}

		return nil
	})
}

// shouldIgnore reports whether an event path is filtered out. Only path
// components below the watched directory are considered.
func (w *watcher) shouldIgnore(path string) bool {
	if !w.ignoreHidden {
		return false
	}

	rel, err := filepath.Rel(w.session.Path, path)
	if err != nil || rel == "." {
		return false
	}

	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if len(part) > 0 && part[0] == '.' && part != ".." {
			return true
		}
	}
	return false
}
