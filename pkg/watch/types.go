package watch

import (
	"errors"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventKind classifies a change notification
type EventKind string

const (
	EventAdd    EventKind = "add"    // File or directory created
	EventChange EventKind = "change" // File content written
	EventUnlink EventKind = "unlink" // File removed or renamed away
	EventOther  EventKind = "other"  // Attribute changes and anything else
)

// ErrClosed is returned when starting a watch on a closed service
var ErrClosed = errors.New("watch service is closed")

// ChangeEvent signals that something changed below the watched directory.
// Subscribers that only care that a change happened can ignore every field.
type ChangeEvent struct {
	Kind      EventKind `json:"type"`
	Path      string    `json:"path"`
	WatchID   string    `json:"watchId"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler receives change notifications
type Handler func(event ChangeEvent)

// Session describes the active watch
type Session struct {
	ID        string
	Path      string
	StartedAt time.Time
}

// kindOf maps an fsnotify operation to an event kind
func kindOf(op fsnotify.Op) EventKind {
	switch {
	case op.Has(fsnotify.Create):
		return EventAdd
	case op.Has(fsnotify.Write):
		return EventChange
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		// Rename reports the old name; the new name arrives as a create
		return EventUnlink
	default:
		return EventOther
	}
}
