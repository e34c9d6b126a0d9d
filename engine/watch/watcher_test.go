package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollDeliversWriteEvent(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.AddRecursive(dir))

	path := filepath.Join(dir, "texture.nbrtexture")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	deadline := time.Now().Add(2 * time.Second)
	var got Event
	for time.Now().Before(deadline) {
		found := false
		w.Poll(func(e Event) {
			if e.Path == path {
				got = e
				found = true
			}
		})
		if found {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.Equal(t, path, got.Path)
}
