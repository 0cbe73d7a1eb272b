package library

import "time"

// Recorder receives operation measurements. internal/metrics implements it
// with Prometheus collectors.
type Recorder interface {
	ObserveOperation(op string, start time.Time, err error)
	IncWatchEvent(kind string)
	IncWatchRestart()
	IncMigration(result string)
}

// Migration result labels
const (
	MigrationSucceeded = "success"
	MigrationFailed    = "error"
)

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, time.Time, error) {}
func (nopRecorder) IncWatchEvent(string)                      {}
func (nopRecorder) IncWatchRestart()                          {}
func (nopRecorder) IncMigration(string)                       {}
