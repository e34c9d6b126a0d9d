package resources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/graphics"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
	"github.com/spaghettifunk/nbrengine/engine/watch"
)

// CacheGroupID is the reserved group id for engine-wide defaults: it
// lives as long as the process and is the documented exception to the
// "groups must not reference each other" ownership rule.
const CacheGroupID uint32 = 0

// Manager is the grouped resource manager: it owns every Group, dispatches
// push/get operations against them, and drives the hot-reload protocol
// from a Watcher's buffered events. Every method here runs synchronously
// to completion, keeping the core single-threaded and cooperative; there
// is no suspension point anywhere in this file.
type Manager struct {
	backend graphics.Backend
	ids     *core.FreeList
	groups  map[uint32]*Group
	watcher *watch.Watcher
}

// NewManager wires a backend (and, optionally, a Watcher for hot-reload;
// nil disables it, useful for headless tooling) into a fresh Manager and
// runs the defaults bootstrap.
func NewManager(backend graphics.Backend, watcher *watch.Watcher) (*Manager, error) {
	m := &Manager{
		backend: backend,
		ids:     core.NewFreeList(),
		groups:  make(map[uint32]*Group),
		watcher: watcher,
	}

	cache := newGroup(CacheGroupID, "cache", "", 0)
	m.groups[CacheGroupID] = cache
	slot, gen := m.ids.Acquire(cache)
	if slot != CacheGroupID {
		return nil, fmt.Errorf("resources: cache group did not receive slot 0 (got %d)", slot)
	}
	cache.Generation = gen

	cache.register("default_texture", ID{Type: nbr.ResourceTypeTexture, Slot: uint32(len(cache.Textures)), Group: CacheGroupID, Generation: gen})
	cache.Textures = append(cache.Textures, TextureEntry{Handle: backend.DefaultTexture(), Width: 1, Height: 1, Channels: 4, Format: nbr.PixelFormatRGBA8})

	cache.register("matrix_buffer", ID{Type: nbr.ResourceTypeBuffer, Slot: uint32(len(cache.Buffers)), Group: CacheGroupID, Generation: gen})
	cache.Buffers = append(cache.Buffers, BufferEntry{Handle: backend.DefaultUniformBuffer(), Kind: graphics.BufferKindUniform})

	return m, nil
}

// CreateGroup allocates a new group with a fresh unused id, seeds it,
// and registers parentDir with the file watcher so its contents can
// hot-reload.
func (m *Manager) CreateGroup(name, parentDir string) (uint32, error) {
	g := &Group{}
	slot, gen := m.ids.Acquire(g)
	*g = *newGroup(slot, name, parentDir, gen)
	m.groups[slot] = g

	if m.watcher != nil && parentDir != "" {
		if err := m.watcher.AddRecursive(parentDir); err != nil {
			core.LogWarn("resources: failed to watch %s for group %q: %v", parentDir, name, err)
		}
	}
	return slot, nil
}

func (m *Manager) group(groupID uint32) (*Group, error) {
	g, ok := m.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("resources: unknown group %d", groupID)
	}
	return g, nil
}

// ClearGroup empties every family array and the name map without
// destroying backend handles, used to reset logical bindings. Existing
// IDs into this group become stale because the arrays they indexed are
// gone even though the generation hasn't changed; callers must not hold
// IDs across a ClearGroup.
func (m *Manager) ClearGroup(groupID uint32) error {
	g, err := m.group(groupID)
	if err != nil {
		return err
	}
	g.clear()
	return nil
}

// DestroyGroup runs backend destructors on every handle in the group,
// erases it, and releases its id back to the free list (bumping its
// generation, so any surviving ID referencing it is now detectably
// stale). Safe on the cache group, but doing so invalidates engine
// defaults.
func (m *Manager) DestroyGroup(groupID uint32) error {
	g, err := m.group(groupID)
	if err != nil {
		return err
	}
	if groupID == CacheGroupID {
		core.LogWarn("resources: destroying the cache group invalidates engine defaults")
	}

	for _, t := range g.Textures {
		m.backend.TextureDestroy(t.Handle)
	}
	for _, c := range g.Cubemaps {
		m.backend.CubemapDestroy(c.Handle)
	}
	for _, s := range g.Shaders {
		m.backend.ShaderDestroy(s.Handle)
	}
	for _, mesh := range g.Meshes {
		m.backend.BufferDestroy(mesh.VertexBuffer)
		m.backend.BufferDestroy(mesh.IndexBuffer)
		m.backend.PipelineDestroy(mesh.Pipeline)
	}
	for _, f := range g.Fonts {
		for _, glyph := range f.Glyphs {
			m.backend.TextureDestroy(glyph.Texture)
		}
	}
	for _, b := range g.Buffers {
		m.backend.BufferDestroy(b.Handle)
	}

	delete(m.groups, groupID)
	if err := m.ids.Release(groupID); err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	return nil
}

// Valid reports whether id still refers to a live resource: its group
// must exist and its generation must match the group's current
// generation, core.FreeList.Valid applied at the group level.
func (m *Manager) Valid(id ID) bool {
	if id.IsInvalid() {
		return false
	}
	return m.ids.Valid(id.Group, id.Generation)
}

// GetID returns the stored id for name in groupID, or Invalid if either
// the group or the name is unknown. It never returns an error.
func (m *Manager) GetID(groupID uint32, name string) ID {
	g, err := m.group(groupID)
	if err != nil {
		return Invalid
	}
	return g.GetID(name)
}

func (m *Manager) requireFamily(id ID, want nbr.ResourceType) (*Group, error) {
	core.Precondition(id.Type == want, "resources: id family %s does not match requested %s", id.Type, want)
	g, err := m.group(id.Group)
	if err != nil {
		return nil, err
	}
	if !m.Valid(id) {
		return nil, fmt.Errorf("resources: %w: id %+v is stale", core.ErrUnknown, id)
	}
	return g, nil
}

// GetTexture is a bounds-checked direct index into id.Group's texture
// array. A mismatched family tag is a fatal precondition violation.
func (m *Manager) GetTexture(id ID) (*TextureEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeTexture)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Textures) {
		return nil, fmt.Errorf("resources: texture slot %d out of range (len=%d)", id.Slot, len(g.Textures))
	}
	return &g.Textures[id.Slot], nil
}

func (m *Manager) GetCubemap(id ID) (*CubemapEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeCubemap)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Cubemaps) {
		return nil, fmt.Errorf("resources: cubemap slot %d out of range", id.Slot)
	}
	return &g.Cubemaps[id.Slot], nil
}

func (m *Manager) GetShader(id ID) (*ShaderEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeShader)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Shaders) {
		return nil, fmt.Errorf("resources: shader slot %d out of range", id.Slot)
	}
	return &g.Shaders[id.Slot], nil
}

func (m *Manager) GetMaterial(id ID) (*MaterialEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeMaterial)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Materials) {
		return nil, fmt.Errorf("resources: material slot %d out of range", id.Slot)
	}
	return &g.Materials[id.Slot], nil
}

func (m *Manager) GetMesh(id ID) (*MeshEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeMesh)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Meshes) {
		return nil, fmt.Errorf("resources: mesh slot %d out of range", id.Slot)
	}
	return &g.Meshes[id.Slot], nil
}

func (m *Manager) GetModel(id ID) (*ModelEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeModel)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Models) {
		return nil, fmt.Errorf("resources: model slot %d out of range", id.Slot)
	}
	return &g.Models[id.Slot], nil
}

func (m *Manager) GetFont(id ID) (*FontEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeFont)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Fonts) {
		return nil, fmt.Errorf("resources: font slot %d out of range", id.Slot)
	}
	return &g.Fonts[id.Slot], nil
}

func (m *Manager) GetAudio(id ID) (*AudioEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeAudio)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Audios) {
		return nil, fmt.Errorf("resources: audio slot %d out of range", id.Slot)
	}
	return &g.Audios[id.Slot], nil
}

func (m *Manager) GetBuffer(id ID) (*BufferEntry, error) {
	g, err := m.requireFamily(id, nbr.ResourceTypeBuffer)
	if err != nil {
		return nil, err
	}
	if int(id.Slot) >= len(g.Buffers) {
		return nil, fmt.Errorf("resources: buffer slot %d out of range", id.Slot)
	}
	return &g.Buffers[id.Slot], nil
}

// PushTexture creates the backend resource from desc, appends it to
// groupID's texture array, and returns its ID.
func (m *Manager) PushTexture(groupID uint32, desc graphics.TextureDesc, name string) (ID, error) {
	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}
	handle, err := m.backend.TextureCreate(desc)
	if err != nil {
		return Invalid, err
	}
	id := ID{Type: nbr.ResourceTypeTexture, Slot: uint32(len(g.Textures)), Group: groupID, Generation: g.Generation}
	g.Textures = append(g.Textures, TextureEntry{Handle: handle, Width: desc.Width, Height: desc.Height, Channels: desc.Channels, Format: nbr.PixelFormat(desc.Format)})
	g.register(name, id)
	return id, nil
}

// PushTextureFile loads the .nbrtexture, validates the expected type, runs
// the runtime importer, then delegates to PushTexture, registering the
// resource under the file's stem.
func (m *Manager) PushTextureFile(groupID uint32, path string) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeTexture)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	tex := f.Payload.(*nbr.Texture)
	return m.PushTexture(groupID, textureDescFromNBR(tex), stem(path))
}

func (m *Manager) PushCubemapFile(groupID uint32, path string) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeCubemap)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	cm := f.Payload.(*nbr.Cubemap)

	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}
	handle, err := m.backend.CubemapCreate(cubemapDescFromNBR(cm))
	if err != nil {
		return Invalid, err
	}
	id := ID{Type: nbr.ResourceTypeCubemap, Slot: uint32(len(g.Cubemaps)), Group: groupID, Generation: g.Generation}
	g.Cubemaps = append(g.Cubemaps, CubemapEntry{Handle: handle})
	g.register(stem(path), id)
	return id, nil
}

func (m *Manager) PushShaderFile(groupID uint32, path string) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeShader)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	sh := f.Payload.(*nbr.Shader)

	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}
	handle, err := m.backend.ShaderCreate(shaderDescFromNBR(sh))
	if err != nil {
		return Invalid, err
	}
	id := ID{Type: nbr.ResourceTypeShader, Slot: uint32(len(g.Shaders)), Group: groupID, Generation: g.Generation}
	g.Shaders = append(g.Shaders, ShaderEntry{Handle: handle})
	g.register(stem(path), id)
	return id, nil
}

// PushMesh creates the vertex and index buffers plus the pipeline for a
// single NBRMesh.
func (m *Manager) PushMesh(groupID uint32, mesh *nbr.Mesh, materialID ID, shader graphics.Shader, name string) (ID, error) {
	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}

	vbuf, err := m.backend.BufferCreate(graphics.BufferDesc{Kind: graphics.BufferKindVertex, Size: uint64(len(mesh.Vertices) * 4), Data: mesh.Vertices})
	if err != nil {
		return Invalid, err
	}
	ibuf, err := m.backend.BufferCreate(graphics.BufferDesc{Kind: graphics.BufferKindIndex, Size: uint64(len(mesh.Indices) * 4), Data: mesh.Indices})
	if err != nil {
		m.backend.BufferDestroy(vbuf)
		return Invalid, err
	}
	pipeline, err := m.backend.PipelineCreate(pipelineDescFromMesh(mesh.VertexComponentBits, shader))
	if err != nil {
		m.backend.BufferDestroy(vbuf)
		m.backend.BufferDestroy(ibuf)
		return Invalid, err
	}

	id := ID{Type: nbr.ResourceTypeMesh, Slot: uint32(len(g.Meshes)), Group: groupID, Generation: g.Generation}
	g.Meshes = append(g.Meshes, MeshEntry{VertexBuffer: vbuf, IndexBuffer: ibuf, Pipeline: pipeline, IndexCount: mesh.IndicesCount, MaterialID: materialID})
	g.register(name, id)
	return id, nil
}

// PushModelFile loads an NBRModel, pushes every embedded texture, then
// every material (resolving texture indices to the IDs just created),
// then every mesh (recording its material index). It validates model
// index bounds before pushing anything.
func (m *Manager) PushModelFile(groupID uint32, path string, shader graphics.Shader) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeModel)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	model := f.Payload.(*nbr.Model)

	if err := validateModelIndices(model); err != nil {
		return Invalid, fmt.Errorf("resources: %w: %v", core.ErrCorruptContainer, err)
	}

	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}

	entry := ModelEntry{}
	for i := range model.Textures {
		id, err := m.PushTexture(groupID, textureDescFromNBR(&model.Textures[i]), "")
		if err != nil {
			return Invalid, err
		}
		entry.TextureIDs = append(entry.TextureIDs, id)
	}
	for i := range model.Materials {
		nm := &model.Materials[i]
		matID := ID{Type: nbr.ResourceTypeMaterial, Slot: uint32(len(g.Materials)), Group: groupID, Generation: g.Generation}
		g.Materials = append(g.Materials, MaterialEntry{
			Color:       nm.Color,
			Metallic:    nm.Metallic,
			Roughness:   nm.Roughness,
			AlbedoID:    textureIDAt(entry.TextureIDs, nm.AlbedoIndex),
			MetallicID:  textureIDAt(entry.TextureIDs, nm.MetallicIndex),
			RoughnessID: textureIDAt(entry.TextureIDs, nm.RoughnessIndex),
			NormalID:    textureIDAt(entry.TextureIDs, nm.NormalIndex),
		})
		entry.MaterialIDs = append(entry.MaterialIDs, matID)
	}
	for i := range model.Meshes {
		nm := &model.Meshes[i]
		matID := entry.MaterialIDs[nm.MaterialIndex]
		meshID, err := m.PushMesh(groupID, nm, matID, shader, "")
		if err != nil {
			return Invalid, err
		}
		entry.MeshIDs = append(entry.MeshIDs, meshID)
	}

	id := ID{Type: nbr.ResourceTypeModel, Slot: uint32(len(g.Models)), Group: groupID, Generation: g.Generation}
	g.Models = append(g.Models, entry)
	g.register(stem(path), id)
	return id, nil
}

// PushFontFile bakes every non-zero-size glyph into its own single-channel
// texture.
func (m *Manager) PushFontFile(groupID uint32, path string) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeFont)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	font := f.Payload.(*nbr.Font)

	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}

	entry := FontEntry{Ascent: font.Ascent, Descent: font.Descent, LineGap: font.LineGap, Glyphs: make(map[rune]GlyphEntry)}
	for _, glyph := range font.Glyphs {
		if glyph.Width == 0 || glyph.Height == 0 {
			continue
		}
		handle, err := m.backend.TextureCreate(graphics.TextureDesc{
			Width: uint32(glyph.Width), Height: uint32(glyph.Height), Channels: 1,
			Format: graphics.PixelFormatR8, Target: graphics.TextureTarget2D, Data: glyph.Pixels,
		})
		if err != nil {
			return Invalid, err
		}
		entry.Glyphs[rune(glyph.Unicode)] = GlyphEntry{
			Texture: handle, Width: glyph.Width, Height: glyph.Height,
			OffsetX: glyph.OffsetX, OffsetY: glyph.OffsetY, AdvanceX: glyph.AdvanceX, LeftBearing: glyph.LeftBearing,
		}
	}

	id := ID{Type: nbr.ResourceTypeFont, Slot: uint32(len(g.Fonts)), Group: groupID, Generation: g.Generation}
	g.Fonts = append(g.Fonts, entry)
	g.register(stem(path), id)
	return id, nil
}

func (m *Manager) PushAudioFile(groupID uint32, path string) (ID, error) {
	f, err := nbr.LoadExpect(path, nbr.ResourceTypeAudio)
	if err != nil {
		return Invalid, err
	}
	defer nbr.Unload(f)
	audio := f.Payload.(*nbr.Audio)

	g, err := m.group(groupID)
	if err != nil {
		return Invalid, err
	}
	id := ID{Type: nbr.ResourceTypeAudio, Slot: uint32(len(g.Audios)), Group: groupID, Generation: g.Generation}
	g.Audios = append(g.Audios, audioEntryFromNBR(audio))
	g.register(stem(path), id)
	return id, nil
}

// PushDir iterates parentDir/subdir (non-recursive), classifies each entry
// by extension, and calls the matching push function for that family.
// Unknown extensions are logged and skipped.
func (m *Manager) PushDir(groupID uint32, subdir string, shader graphics.Shader) error {
	g, err := m.group(groupID)
	if err != nil {
		return err
	}
	dir := filepath.Join(g.ParentDir, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, ok := nbr.TypeForExtension(filepath.Ext(e.Name()))
		if !ok {
			core.LogWarn("resources: PushDir skipping unrecognized file %s", path)
			continue
		}

		var pushErr error
		switch t {
		case nbr.ResourceTypeTexture:
			_, pushErr = m.PushTextureFile(groupID, path)
		case nbr.ResourceTypeCubemap:
			_, pushErr = m.PushCubemapFile(groupID, path)
		case nbr.ResourceTypeShader:
			_, pushErr = m.PushShaderFile(groupID, path)
		case nbr.ResourceTypeModel:
			_, pushErr = m.PushModelFile(groupID, path, shader)
		case nbr.ResourceTypeFont:
			_, pushErr = m.PushFontFile(groupID, path)
		case nbr.ResourceTypeAudio:
			_, pushErr = m.PushAudioFile(groupID, path)
		default:
			core.LogWarn("resources: PushDir has no handler for %s (%s)", t, path)
			continue
		}
		if pushErr != nil {
			core.LogError("resources: PushDir failed on %s: %v", path, pushErr)
		}
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
