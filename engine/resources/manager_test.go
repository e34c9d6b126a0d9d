package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
	"github.com/spaghettifunk/nbrengine/engine/graphics/mock"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

func newTestManager(t *testing.T) (*Manager, *mock.Backend) {
	t.Helper()
	backend := mock.New()
	require.NoError(t, backend.ContextCreate(graphics.ContextDesc{}))
	m, err := NewManager(backend, nil)
	require.NoError(t, err)
	return m, backend
}

func writeTexture(t *testing.T, dir, name string, width, height uint32) string {
	t.Helper()
	path := filepath.Join(dir, name+".nbrtexture")
	tex := &nbr.Texture{
		Width:    width,
		Height:   height,
		Channels: 4,
		Format:   nbr.PixelFormatRGBA8,
		Pixels:   make([]byte, width*height*4),
	}
	require.NoError(t, nbr.Save(path, tex))
	return path
}

// TestCreateGroupPushTextureGetID covers create_group -> push_texture ->
// get_id -> get_texture, asserting the looked-up width/height round-trip.
func TestCreateGroupPushTextureGetID(t *testing.T) {
	m, _ := newTestManager(t)
	dir := t.TempDir()

	groupID, err := m.CreateGroup("level1", dir)
	require.NoError(t, err)

	path := writeTexture(t, dir, "brick", 64, 32)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)
	require.Equal(t, nbr.ResourceTypeTexture, id.Type)

	gotID := m.GetID(groupID, "brick")
	require.Equal(t, id, gotID)

	entry, err := m.GetTexture(gotID)
	require.NoError(t, err)
	require.EqualValues(t, 64, entry.Width)
	require.EqualValues(t, 32, entry.Height)
}

func TestGetIDUnknownNameReturnsInvalid(t *testing.T) {
	m, _ := newTestManager(t)
	groupID, err := m.CreateGroup("g", t.TempDir())
	require.NoError(t, err)
	require.True(t, m.GetID(groupID, "nope").IsInvalid())
}

func TestGetTextureWrongFamilyPanics(t *testing.T) {
	m, _ := newTestManager(t)
	dir := t.TempDir()
	groupID, err := m.CreateGroup("g", dir)
	require.NoError(t, err)
	path := writeTexture(t, dir, "brick", 4, 4)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)

	require.Panics(t, func() {
		_, _ = m.GetShader(id)
	})
}

func TestDestroyGroupInvalidatesIDs(t *testing.T) {
	m, _ := newTestManager(t)
	dir := t.TempDir()
	groupID, err := m.CreateGroup("g", dir)
	require.NoError(t, err)
	path := writeTexture(t, dir, "brick", 4, 4)
	id, err := m.PushTextureFile(groupID, path)
	require.NoError(t, err)
	require.True(t, m.Valid(id))

	require.NoError(t, m.DestroyGroup(groupID))

	groupID2, err := m.CreateGroup("g2", dir)
	require.NoError(t, err)
	require.Equal(t, groupID, groupID2)
	require.False(t, m.Valid(id))
}

func TestPushDirClassifiesByExtension(t *testing.T) {
	m, _ := newTestManager(t)
	root := t.TempDir()
	sub := filepath.Join(root, "textures")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeTexture(t, sub, "a", 4, 4)
	writeTexture(t, sub, "b", 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("ignore me"), 0o644))

	groupID, err := m.CreateGroup("g", root)
	require.NoError(t, err)
	require.NoError(t, m.PushDir(groupID, "textures", 0))

	require.False(t, m.GetID(groupID, "a").IsInvalid())
	require.False(t, m.GetID(groupID, "b").IsInvalid())
}
