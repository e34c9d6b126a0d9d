package resources

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// TextureEntry is a pushed texture: a live backend handle plus the NBR
// channel/format metadata callers commonly need without a round trip
// through the backend.
type TextureEntry struct {
	Handle   graphics.Texture
	Width    uint32
	Height   uint32
	Channels uint8
	Format   nbr.PixelFormat
}

type CubemapEntry struct {
	Handle graphics.Cubemap
}

// BufferEntry is a pushed raw GPU buffer (vertex/index/uniform), not tied
// to an NBR file, such as the cache group's default uniform buffer.
type BufferEntry struct {
	Handle graphics.Buffer
	Kind   graphics.BufferKind
}

type ShaderEntry struct {
	Handle graphics.Shader
}

// MaterialEntry mirrors NBRMaterial's fields but resolves texture indices
// to resource IDs within the same group, connecting its albedo and,
// where present, metallic/roughness/normal maps to the already-pushed
// texture identifiers that produced them.
type MaterialEntry struct {
	Color      [3]float32
	Metallic   float32
	Roughness  float32
	AlbedoID   ID
	MetallicID ID
	RoughnessID ID
	NormalID   ID
}

// MeshEntry is a compound resource: its own vertex/index buffers plus the
// pipeline assembled from the vertex-component bitmask.
type MeshEntry struct {
	VertexBuffer graphics.Buffer
	IndexBuffer  graphics.Buffer
	Pipeline     graphics.Pipeline
	IndexCount   uint32
	MaterialID   ID
}

// ModelEntry collects the IDs of the meshes, materials, and textures a
// single NBRModel import produced within the same group.
type ModelEntry struct {
	MeshIDs     []ID
	MaterialIDs []ID
	TextureIDs  []ID
}

// GlyphEntry is one baked glyph: its own single-channel texture plus the
// bounding/advance metrics needed to lay out text.
type GlyphEntry struct {
	Texture     graphics.Texture
	Width       uint16
	Height      uint16
	OffsetX     int16
	OffsetY     int16
	AdvanceX    int16
	LeftBearing int16
}

// FontEntry is a baked font: scalar metrics plus a unicode-to-glyph map.
type FontEntry struct {
	Ascent  int16
	Descent int16
	LineGap int16
	Glyphs  map[rune]GlyphEntry
}

// AudioEntry mirrors NBRAudio's descriptor fields; the engine has no
// mixing subsystem in scope, so this is data-only storage for whatever
// playback layer a host builds on top.
type AudioEntry struct {
	Format     nbr.AudioFormat
	SampleRate uint32
	Channels   uint8
	Data       []byte
}

// Group is a named registry of pushed resources: one dense array per
// family plus a name→ID map, collapsing what would otherwise be a
// separate per-system registry for each resource family into a single
// generic container.
type Group struct {
	ID         uint32
	Name       string
	ParentDir  string
	Generation uint16
	// DebugID distinguishes groups sharing a recycled slot in log output,
	// since ID alone is ambiguous across a destroy/create cycle until the
	// generation is printed alongside it.
	DebugID uuid.UUID

	Textures  []TextureEntry
	Cubemaps  []CubemapEntry
	Shaders   []ShaderEntry
	Materials []MaterialEntry
	Meshes    []MeshEntry
	Models    []ModelEntry
	Fonts     []FontEntry
	Audios    []AudioEntry
	Buffers   []BufferEntry

	nameToID map[string]ID
}

func newGroup(id uint32, name, parentDir string, generation uint16) *Group {
	return &Group{
		ID:         id,
		Name:       name,
		ParentDir:  parentDir,
		Generation: generation,
		DebugID:    uuid.New(),
		nameToID:   map[string]ID{"invalid": Invalid},
	}
}

func (g *Group) clear() {
	g.Textures = nil
	g.Cubemaps = nil
	g.Shaders = nil
	g.Materials = nil
	g.Meshes = nil
	g.Models = nil
	g.Fonts = nil
	g.Audios = nil
	g.Buffers = nil
	g.nameToID = map[string]ID{"invalid": Invalid}
}

func (g *Group) register(name string, id ID) {
	if name != "" {
		g.nameToID[name] = id
	}
}

// GetID returns the stored id for name, or Invalid if not found. It
// never returns an error.
func (g *Group) GetID(name string) ID {
	if id, ok := g.nameToID[name]; ok {
		return id
	}
	return Invalid
}
