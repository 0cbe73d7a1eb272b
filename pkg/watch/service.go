package watch

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Config holds configuration for the watch service
type Config struct {
	IgnoreHidden bool // Drop events for dot-prefixed files and directories
	Logger       zerolog.Logger

	// OnReplace is called, with the slot lock held, when StartWatch installs
	// a watch in place of an active one. Optional.
	OnReplace func(old, current Session)
}

// Service owns at most one active watch and forwards its change events to
// subscribers.
//
// The slot is guarded by a mutex held for the whole stop-then-install
// sequence of StartWatch, so two watches are never registered at once and no
// caller observes a half-replaced watch.
type Service struct {
	config  Config
	logger  zerolog.Logger
	emitter *emitter

	mu      sync.Mutex
	current *watcher
	closed  bool
}

// NewService creates a new watch service in the idle state
func NewService(config Config) *Service {
	return &Service{
		config:  config,
		logger:  config.Logger.With().Str("component", "watch").Logger(),
		emitter: newEmitter(),
	}
}

// Subscribe registers a handler for change events and returns a function
// that unregisters it. Handlers run on their own goroutines; delivery is
// at-most-once and unordered.
func (s *Service) Subscribe(handler Handler) func() {
	return s.emitter.on(handler)
}

// StartWatch watches path recursively, replacing any active watch.
//
// The previous watch is stopped first and its stop errors are ignored. If the
// new watch cannot be set up the error is returned and the service is idle.
func (s *Service) StartWatch(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if path == "" {
		return fmt.Errorf("watch path cannot be empty")
	}

	old := s.current
	if old != nil {
		s.current = nil
		if err := old.stop(); err != nil {
			s.logger.Debug().
				Err(err).
				Str("path", old.session.Path).
				Msg("Ignoring error while stopping previous watch")
		}
	}

	w, err := newWatcher(watcherConfig{
		Path:         path,
		IgnoreHidden: s.config.IgnoreHidden,
		Emit:         s.emitter.emit,
		Logger:       s.logger,
	})
	if err != nil {
		return err
	}

	if err := w.start(); err != nil {
		_ = w.stop()
		return err
	}

	s.current = w
	if old != nil && s.config.OnReplace != nil {
		s.config.OnReplace(old.session, w.session)
	}
	return nil
}

// Stop stops the active watch, if any, and returns to the idle state
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopLocked()
}

// stopLocked stops the active watch; s.mu must be held
func (s *Service) stopLocked() error {
	if s.current == nil {
		return nil
	}

	w := s.current
	s.current = nil
	return w.stop()
}

// Active returns the active watch session
func (s *Service) Active() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return Session{}, false
	}
	return s.current.session, true
}

// Close stops the active watch and removes all subscribers. A closed service
// refuses new watches.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	err := s.stopLocked()
	s.emitter.removeAll()

	s.logger.Info().Msg("Watch service closed")
	return err
}
