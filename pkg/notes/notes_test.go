package notes

import (
	"errors"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/harun/notiz/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortNotes(notes []Note) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Path() < notes[j].Path()
	})
}

func TestNoteRepository_SaveAndList(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		folder   string
		content  string
	}{
		{name: "root note", filename: "f.md", folder: "", content: "# Hello"},
		{name: "nested note", filename: "work/f.md", folder: "work", content: "line 1\nline 2\n"},
		{name: "deeply nested", filename: "a/b/c/f.md", folder: "a/b/c", content: "ünïcødé ✓"},
		{name: "empty content", filename: "x/f.md", folder: "x", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := testutil.CreateTempRoot(t, nil)
			repo := NewNoteRepository(zerolog.Nop())

			require.NoError(t, repo.SaveNote(root.Path, tt.filename, tt.content))

			notes, err := repo.ListNotes(root.Path)
			require.NoError(t, err)
			require.Len(t, notes, 1)

			assert.Equal(t, "f.md", notes[0].Filename)
			assert.Equal(t, tt.folder, notes[0].Folder)
			assert.Equal(t, tt.content, notes[0].Content)
			assert.WithinDuration(t, time.Now(), notes[0].UpdatedAt, time.Minute)
		})
	}
}

func TestNoteRepository_ListIgnoresOtherFiles(t *testing.T) {
	root := testutil.CreateTempRoot(t, map[string]string{
		"a.md":                 "a",
		"notizapp-config.json": "{}",
		"img/photo.png":        "png",
		"img/caption.md":       "caption",
		"readme.MD":            "upper-case extension",
	})
	repo := NewNoteRepository(zerolog.Nop())

	notes, err := repo.ListNotes(root.Path)
	require.NoError(t, err)
	sortNotes(notes)

	require.Len(t, notes, 2)
	assert.Equal(t, "a.md", notes[0].Path())
	assert.Equal(t, "img/caption.md", notes[1].Path())

	// Non-note files stay untouched
	assert.Equal(t, "png", root.ReadFile(t, "img/photo.png"))
}

func TestNoteRepository_ListEmptyRoot(t *testing.T) {
	root := testutil.CreateTempRoot(t, nil)
	repo := NewNoteRepository(zerolog.Nop())

	notes, err := repo.ListNotes(root.Path)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestNoteRepository_ListAbortsOnUnreadableNote(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	root := testutil.CreateTempRoot(t, map[string]string{
		"a.md": "a",
		"b.md": "b",
	})
	require.NoError(t, os.Chmod(root.Join("b.md"), 0000))

	repo := NewNoteRepository(zerolog.Nop())
	notes, err := repo.ListNotes(root.Path)

	require.Error(t, err)
	assert.Nil(t, notes)
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestNoteRepository_SaveOverwrites(t *testing.T) {
	root := testutil.CreateTempRoot(t, map[string]string{"a.md": "a much longer original body"})
	repo := NewNoteRepository(zerolog.Nop())

	require.NoError(t, repo.SaveNote(root.Path, "a.md", "short"))
	assert.Equal(t, "short", root.ReadFile(t, "a.md"))
}

func TestNoteRepository_RejectsEscapingNames(t *testing.T) {
	root := testutil.CreateTempRoot(t, nil)
	repo := NewNoteRepository(zerolog.Nop())

	for _, name := range []string{"../outside.md", "a/../../outside.md", "/etc/passwd"} {
		err := repo.SaveNote(root.Path, name, "x")
		assert.ErrorIs(t, err, ErrPathEscapesRoot, name)
	}

	assert.ErrorIs(t, repo.SaveNote(root.Path, "", "x"), ErrEmptyPath)
	assert.ErrorIs(t, repo.SaveNote("", "a.md", "x"), ErrEmptyPath)
}

func TestNoteRepository_Delete(t *testing.T) {
	root := testutil.CreateTempRoot(t, map[string]string{"sub/a.md": "a"})
	repo := NewNoteRepository(zerolog.Nop())

	require.NoError(t, repo.DeleteNote(root.Path, "sub/a.md"))
	assert.False(t, root.Exists("sub/a.md"))
	assert.True(t, root.Exists("sub"))

	err := repo.DeleteNote(root.Path, "sub/a.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNoteRepository_Rename(t *testing.T) {
	t.Run("within folder", func(t *testing.T) {
		root := testutil.CreateTempRoot(t, map[string]string{"a.md": "body"})
		repo := NewNoteRepository(zerolog.Nop())

		require.NoError(t, repo.RenameNote(root.Path, "a.md", "b.md"))
		assert.False(t, root.Exists("a.md"))
		assert.Equal(t, "body", root.ReadFile(t, "b.md"))
	})

	t.Run("into existing folder", func(t *testing.T) {
		root := testutil.CreateTempRoot(t, map[string]string{
			"a.md":  "body",
			"dest/": "",
		})
		repo := NewNoteRepository(zerolog.Nop())

		require.NoError(t, repo.RenameNote(root.Path, "a.md", "dest/a.md"))
		assert.Equal(t, "body", root.ReadFile(t, "dest/a.md"))
	})

	t.Run("missing source", func(t *testing.T) {
		root := testutil.CreateTempRoot(t, nil)
		repo := NewNoteRepository(zerolog.Nop())

		err := repo.RenameNote(root.Path, "missing.md", "b.md")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("missing destination folder", func(t *testing.T) {
		root := testutil.CreateTempRoot(t, map[string]string{"a.md": "body"})
		repo := NewNoteRepository(zerolog.Nop())

		err := repo.RenameNote(root.Path, "a.md", "nowhere/a.md")
		require.Error(t, err)
		assert.True(t, root.Exists("a.md"))
	})
}
