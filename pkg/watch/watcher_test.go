package watch

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want EventKind
	}{
		{op: fsnotify.Create, want: EventAdd},
		{op: fsnotify.Write, want: EventChange},
		{op: fsnotify.Remove, want: EventUnlink},
		{op: fsnotify.Rename, want: EventUnlink},
		{op: fsnotify.Chmod, want: EventOther},
		{op: fsnotify.Create | fsnotify.Write, want: EventAdd},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, kindOf(tt.op))
		})
	}
}

func TestWatcher_ShouldIgnore(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "home", ".config", "notes")
	w := &watcher{
		session:      Session{Path: root},
		ignoreHidden: true,
	}

	assert.False(t, w.shouldIgnore(root))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "a.md")))
	assert.False(t, w.shouldIgnore(filepath.Join(root, "work", "a.md")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, ".notizapp-metadata.json")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, ".git", "HEAD")))
	assert.True(t, w.shouldIgnore(filepath.Join(root, "work", ".trash", "a.md")))

	w.ignoreHidden = false
	assert.False(t, w.shouldIgnore(filepath.Join(root, ".git", "HEAD")))
}
