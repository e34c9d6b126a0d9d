// Package nbr implements the NBR container format: header validation,
// per-type dispatch, and save/load/unload.
package nbr

// ResourceType discriminates the NBR payload families via the header's
// resource_type field. Numeric values are part of the on-disk format and
// must not be renumbered once shipped.
type ResourceType uint16

const (
	ResourceTypeTexture ResourceType = iota
	ResourceTypeCubemap
	ResourceTypeShader
	ResourceTypeMaterial
	ResourceTypeMesh
	ResourceTypeModel
	ResourceTypeAnimation
	ResourceTypeFont
	ResourceTypeAudio
	// ResourceTypeBuffer tags raw GPU buffer resources (e.g. the cache
	// group's default uniform buffer). It never round-trips through an NBR
	// file, so it has no Extension and no extensionToType entry.
	ResourceTypeBuffer
)

// Extension returns the fixed, type-only extension for t
// (".nbrtexture", ".nbrcubemap", ...).
func (t ResourceType) Extension() string {
	switch t {
	case ResourceTypeTexture:
		return ".nbrtexture"
	case ResourceTypeCubemap:
		return ".nbrcubemap"
	case ResourceTypeShader:
		return ".nbrshader"
	case ResourceTypeMaterial:
		return ".nbrmaterial"
	case ResourceTypeMesh:
		return ".nbrmesh"
	case ResourceTypeModel:
		return ".nbrmodel"
	case ResourceTypeAnimation:
		return ".nbranimation"
	case ResourceTypeFont:
		return ".nbrfont"
	case ResourceTypeAudio:
		return ".nbraudio"
	default:
		return ""
	}
}

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeTexture:
		return "texture"
	case ResourceTypeCubemap:
		return "cubemap"
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeModel:
		return "model"
	case ResourceTypeAnimation:
		return "animation"
	case ResourceTypeFont:
		return "font"
	case ResourceTypeAudio:
		return "audio"
	case ResourceTypeBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// extensionToType is the inverse of ResourceType.Extension, used by
// ValidExtension and Load to classify a path independent of the header's
// declared type.
var extensionToType = map[string]ResourceType{
	".nbrtexture":   ResourceTypeTexture,
	".nbrcubemap":   ResourceTypeCubemap,
	".nbrshader":    ResourceTypeShader,
	".nbrmaterial":  ResourceTypeMaterial,
	".nbrmesh":      ResourceTypeMesh,
	".nbrmodel":     ResourceTypeModel,
	".nbranimation": ResourceTypeAnimation,
	".nbrfont":      ResourceTypeFont,
	".nbraudio":     ResourceTypeAudio,
}

// TypeForExtension is the exported half of extensionToType, used by
// engine/resources.Manager.PushDir to classify directory entries the same
// way ValidExtension does.
func TypeForExtension(ext string) (ResourceType, bool) {
	t, ok := extensionToType[ext]
	return t, ok
}

// HeaderSentinel is the fixed identifier byte: (‘n’+‘b’+‘r’)/3 = 107.
const HeaderSentinel uint8 = 107

// CurrentMajorVersion/CurrentMinorVersion are the producer/consumer versions
// that must match exactly; a mismatch is a fatal load error.
const (
	CurrentMajorVersion int16 = 1
	CurrentMinorVersion int16 = 0
)

// Header is the fixed 7-byte, little-endian, tightly packed NBR header.
type Header struct {
	Identifier   uint8
	MajorVersion int16
	MinorVersion int16
	ResourceType uint16
}

// PixelFormat enumerates the texture/cubemap pixel encodings: 8-bit
// integer formats and half-float RGBA.
type PixelFormat uint8

const (
	PixelFormatR8 PixelFormat = iota
	PixelFormatRG8
	PixelFormatRGB8
	PixelFormatRGBA8
	PixelFormatRGBA16F
)

// BytesPerPixel returns the per-channel byte width: 1 for 8-bit formats, 4
// for half-float RGBA.
func (f PixelFormat) BytesPerPixel() int {
	if f == PixelFormatRGBA16F {
		return 4
	}
	return 1
}

// Channels returns the channel count implied by format, used to forbid the
// channels/format mismatch Save rejects.
func (f PixelFormat) Channels() int {
	switch f {
	case PixelFormatR8:
		return 1
	case PixelFormatRG8:
		return 2
	case PixelFormatRGB8:
		return 3
	case PixelFormatRGBA8, PixelFormatRGBA16F:
		return 4
	default:
		return 0
	}
}

// Texture is the NBRTexture payload.
type Texture struct {
	Width    uint32
	Height   uint32
	Channels int8
	Format   PixelFormat
	Pixels   []byte
}

// Cubemap is the NBRCubemap payload: a texture header shape plus six (or
// FacesCount) face pixel arrays.
type Cubemap struct {
	Width      uint32
	Height     uint32
	Channels   int8
	Format     PixelFormat
	FacesCount uint8
	Faces      [][]byte
}

// Shader is the NBRShader payload. Either Compute is set (ComputeSource
// non-empty) or Vertex/Pixel are both set.
type Shader struct {
	ComputeSource string
	VertexSource  string
	PixelSource   string
}

// Material is the NBRMaterial payload. Texture indices are -1 when absent,
// otherwise an index into the containing model's embedded texture array.
type Material struct {
	Color         [3]float32
	Metallic      float32
	Roughness     float32
	AlbedoIndex   int8
	MetallicIndex int8
	RoughnessIndex int8
	NormalIndex   int8
}

// VertexComponent is a bit in Mesh.VertexComponentBits selecting which
// per-vertex channel is present. The bitfield is authoritative: stride and
// offsets are always derived from it, never stored separately.
type VertexComponent uint8

const (
	VertexComponentPosition VertexComponent = 1 << iota
	VertexComponentNormal
	VertexComponentTangent
	VertexComponentColor0
	VertexComponentColor1
	VertexComponentUV
)

// componentFloats gives the number of float32s contributed by one vertex
// component, used to derive stride from the bitfield.
var componentFloats = map[VertexComponent]int{
	VertexComponentPosition: 3,
	VertexComponentNormal:   3,
	VertexComponentTangent:  3,
	VertexComponentColor0:   4,
	VertexComponentColor1:   4,
	VertexComponentUV:       2,
}

// orderedComponents fixes attribute order within the vertex stride: this
// order, applied consistently by both the mesh writer and the runtime
// importer, is what keeps stride/offset derivation deterministic.
var orderedComponents = []VertexComponent{
	VertexComponentPosition,
	VertexComponentNormal,
	VertexComponentTangent,
	VertexComponentColor0,
	VertexComponentColor1,
	VertexComponentUV,
}

// Stride returns the number of float32s per vertex implied by bits.
func Stride(bits VertexComponent) int {
	n := 0
	for _, c := range orderedComponents {
		if bits&c != 0 {
			n += componentFloats[c]
		}
	}
	return n
}

// Has reports whether bits selects component c.
func (bits VertexComponent) Has(c VertexComponent) bool { return bits&c != 0 }

// Offset returns the float32 offset of component c within one vertex, or -1
// if c is not present in bits.
func Offset(bits VertexComponent, c VertexComponent) int {
	if bits&c == 0 {
		return -1
	}
	off := 0
	for _, oc := range orderedComponents {
		if oc == c {
			return off
		}
		if bits&oc != 0 {
			off += componentFloats[oc]
		}
	}
	return -1
}

// Mesh is the NBRMesh payload.
type Mesh struct {
	VertexComponentBits VertexComponent
	VerticesCount       uint32
	Vertices            []float32
	IndicesCount        uint32
	Indices             []uint32
	MaterialIndex       uint8
}

// Model is the NBRModel payload: meshes and materials, with their own
// embedded textures (not referenced by path).
type Model struct {
	Meshes    []Mesh
	Materials []Material
	Textures  []Texture
}

// JointSample is one keyed (x,y,z[,w],time) tuple in a joint track.
type JointSample struct {
	X, Y, Z, W float32
	Time       float32
}

// Joint is one entry of an NBRAnimation's skeleton.
type Joint struct {
	ParentIndex     int16
	InverseBindPose [16]float32
	Positions       []JointSample
	Rotations       []JointSample
	Scales          []JointSample
}

// Animation is the NBRAnimation payload.
type Animation struct {
	Joints    []Joint
	Duration  float32
	FrameRate float32
}

// Glyph is one entry of an NBRFont's glyph table.
type Glyph struct {
	Unicode     int8
	Width       uint16
	Height      uint16
	Left        int16
	Right       int16
	Top         int16
	Bottom      int16
	OffsetX     int16
	OffsetY     int16
	AdvanceX    int16
	Kern        int16
	LeftBearing int16
	Pixels      []byte
}

// Font is the NBRFont payload.
type Font struct {
	Glyphs   []Glyph
	Ascent   int16
	Descent  int16
	LineGap  int16
}

// AudioFormat is the per-sample PCM encoding of an NBRAudio payload.
type AudioFormat uint8

const (
	AudioFormatU8 AudioFormat = iota
	AudioFormatI16
	AudioFormatF32
)

// BytesPerSample returns the sample width implied by format.
func (f AudioFormat) BytesPerSample() int {
	switch f {
	case AudioFormatU8:
		return 1
	case AudioFormatI16:
		return 2
	case AudioFormatF32:
		return 4
	default:
		return 0
	}
}

// Audio is the NBRAudio payload.
type Audio struct {
	Format     AudioFormat
	SampleRate uint32
	Channels   uint8
	Size       uint32
	Samples    []byte
}
