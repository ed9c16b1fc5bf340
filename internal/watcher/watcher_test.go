package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key_map.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	var hits atomic.Int32
	w := New(path, func(fsnotify.Event) { hits.Add(1) })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`[{"action":"play","keys":["P"]}]`), 0o644))

	assert.Eventually(t, func() bool { return hits.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_ReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key_map.json")

	var hits atomic.Int32
	w := New(path, func(fsnotify.Event) { hits.Add(1) })
	require.NoError(t, w.Start())
	defer w.Stop()

	tmp := filepath.Join(dir, "key_map.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[]"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return hits.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key_map.json")

	var hits atomic.Int32
	w := New(path, func(fsnotify.Event) { hits.Add(1) })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{}"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, hits.Load())
}

func TestWatcher_StopIsSynchronous(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key_map.json")

	var hits atomic.Int32
	w := New(path, func(fsnotify.Event) { hits.Add(1) })
	require.NoError(t, w.Start())
	assert.True(t, w.Running())

	w.Stop()
	assert.False(t, w.Running())

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, hits.Load())

	// Second stop is a no-op.
	w.Stop()
}

func TestWatcher_StartTwice(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "key_map.json"), func(fsnotify.Event) {})
	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	w.Stop()
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "key_map.json"), func(fsnotify.Event) {})
	assert.Error(t, w.Start())
	assert.False(t, w.Running())
}

func TestWatcher_Matches(t *testing.T) {
	w := New("/cfg/key_map.json", nil)

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: "/cfg/key_map.json", Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: "/cfg/key_map.json", Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: "/cfg/key_map.json", Op: fsnotify.Rename}, true},
		{"remove", fsnotify.Event{Name: "/cfg/key_map.json", Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: "/cfg/key_map.json", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/cfg/settings.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.matches(tt.ev))
		})
	}
}
