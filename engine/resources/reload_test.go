package resources

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
	"github.com/spaghettifunk/nbrengine/engine/graphics/mock"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
	"github.com/spaghettifunk/nbrengine/engine/watch"
)

// TestHotReloadPreservesHandleAndUpdatesDimensions drives the hot
// reload scenario by hand: push a texture, rewrite the underlying file with
// new dimensions, call HandleReload directly (bypassing the filesystem
// watcher, whose delivery timing is exercised separately in engine/watch),
// and assert the id is unchanged while the backend sees the new size.
func TestHotReloadPreservesHandleAndUpdatesDimensions(t *testing.T) {
	backend := mock.New()
	require.NoError(t, backend.ContextCreate(graphics.ContextDesc{}))
	m, err := NewManager(backend, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	groupID, err := m.CreateGroup("level1", dir)
	require.NoError(t, err)

	path := writeTexture(t, dir, "brick", 16, 16)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)

	before, err := m.GetTexture(id)
	require.NoError(t, err)
	beforeHandle := before.Handle

	require.NoError(t, nbr.Save(path, &nbr.Texture{
		Width: 32, Height: 32, Channels: 4, Format: nbr.PixelFormatRGBA8,
		Pixels: make([]byte, 32*32*4),
	}))

	m.HandleReload(watch.Event{Status: watch.StatusModified, Path: path})

	after, err := m.GetTexture(id)
	require.NoError(t, err)
	require.Equal(t, beforeHandle, after.Handle, "reload must preserve the backend handle")
	require.EqualValues(t, 32, after.Width)
	require.EqualValues(t, 32, after.Height)
}

func TestHotReloadIgnoresNonModifiedEvents(t *testing.T) {
	backend := mock.New()
	require.NoError(t, backend.ContextCreate(graphics.ContextDesc{}))
	m, err := NewManager(backend, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	groupID, err := m.CreateGroup("level1", dir)
	require.NoError(t, err)
	path := writeTexture(t, dir, "brick", 16, 16)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)
	before, err := m.GetTexture(id)
	require.NoError(t, err)

	m.HandleReload(watch.Event{Status: watch.StatusCreated, Path: path})

	after, err := m.GetTexture(id)
	require.NoError(t, err)
	require.Equal(t, *before, *after)
}

func TestHotReloadIgnoresUnknownPath(t *testing.T) {
	backend := mock.New()
	require.NoError(t, backend.ContextCreate(graphics.ContextDesc{}))
	m, err := NewManager(backend, nil)
	require.NoError(t, err)
	dir := t.TempDir()
	_, err = m.CreateGroup("level1", dir)
	require.NoError(t, err)

	require.NotPanics(t, func() {
		m.HandleReload(watch.Event{Status: watch.StatusModified, Path: dir + "/nonexistent.nbrtexture"})
	})
}

func TestPollReloadsDrivesWatcherEndToEnd(t *testing.T) {
	dir := t.TempDir()
	w, err := watch.New()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.AddRecursive(dir))

	backend := mock.New()
	require.NoError(t, backend.ContextCreate(graphics.ContextDesc{}))
	m, err := NewManager(backend, w)
	require.NoError(t, err)

	groupID, err := m.CreateGroup("level1", dir)
	require.NoError(t, err)
	path := writeTexture(t, dir, "brick", 4, 4)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)

	require.NoError(t, nbr.Save(path, &nbr.Texture{
		Width: 9, Height: 9, Channels: 4, Format: nbr.PixelFormatRGBA8,
		Pixels: make([]byte, 9*9*4),
	}))

	require.Eventually(t, func() bool {
		m.PollReloads()
		entry, err := m.GetTexture(id)
		return err == nil && entry.Width == 9
	}, 2*time.Second, 10*time.Millisecond)
}
