package world

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

// waitForReload drains reloads until one satisfies match. A truncating write can
// surface an intermediate empty file first.
func waitForReload(t *testing.T, w *Watcher, match func(Reload) bool) Reload {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case r := <-w.Reloads:
			if match(r) {
				return r
			}
		case <-timeout:
			t.Fatal("no matching reload delivered")
			return Reload{}
		}
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sky.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"objects": []}`), 0o644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(path, []byte(siriusJSON), 0o644))

	r := waitForReload(t, w, func(r Reload) bool {
		return r.Err == nil && r.Payload != nil && len(r.Payload.Objects) == 2
	})
	assert.Equal(t, w.Path, r.Path)
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sky.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("objects: [unterminated"), 0o644))

	r := waitForReload(t, w, func(r Reload) bool { return r.Err != nil })
	assert.Nil(t, r.Payload)
}

func TestWatcher_StopClosesReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "sky.toml")
	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	w.Stop()

	_, open := <-w.Reloads
	assert.False(t, open)
}
