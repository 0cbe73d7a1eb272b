package watch

import "sync"

// emitter broadcasts change events to subscribers
type emitter struct {
	mu        sync.RWMutex
	listeners map[uint64]Handler
	nextID    uint64
}

// newEmitter creates a new event emitter
func newEmitter() *emitter {
	return &emitter{
		listeners: make(map[uint64]Handler),
	}
}

// on registers a handler and returns a function that removes it
func (e *emitter) on(handler Handler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.listeners[id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.listeners, id)
		})
	}
}

// emit delivers an event to every handler, each on its own goroutine.
// Nothing is buffered: handlers registered later never see the event.
func (e *emitter) emit(event ChangeEvent) {
	e.mu.RLock()
	handlers := make([]Handler, 0, len(e.listeners))
	for _, handler := range e.listeners {
		handlers = append(handlers, handler)
	}
	e.mu.RUnlock()

	for _, handler := range handlers {
		go handler(event)
	}
}

// count returns the number of registered handlers
func (e *emitter) count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// removeAll removes all handlers
func (e *emitter) removeAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = make(map[uint64]Handler)
}
