// Package graphics defines the backend-agnostic resource abstraction the
// core consumes: opaque handles, creation descriptors, and the Backend
// contract. Nothing in this package touches a GPU; a concrete backend
// lives in the sibling mock package, or in whatever real GPU package a
// host application supplies.
package graphics

// Buffer, Texture, Cubemap, Shader, and Pipeline are opaque handles a
// Backend hands back from its Create* calls. Their identity is stable
// across Update calls: a texture re-created from a new descriptor keeps
// the same handle, which is what makes hot-reload possible without the
// resource manager rewriting every reference to it.
type (
	Buffer   uint32
	Texture  uint32
	Cubemap  uint32
	Shader   uint32
	Pipeline uint32
)

// InvalidHandle is returned by a failed Create call; callers must check
// against it before storing a handle.
const InvalidHandle = 0

// StateBit is one bit of the context creation bitmask: depth, stencil,
// blend, MSAA, and backface culling.
type StateBit uint32

const (
	StateDepthTest StateBit = 1 << iota
	StateStencilTest
	StateBlend
	StateMSAA
	StateCullBackface
)

// ContextDesc configures Context creation: the window handle (opaque to
// this package, a platform-specific pointer/handle the concrete backend
// knows how to interpret) plus the enabled pipeline states.
type ContextDesc struct {
	Window     interface{}
	States     StateBit
	MSAASamples uint8
}

// BufferKind distinguishes vertex/index/uniform buffers so a backend can
// pick the right memory flags and binding point.
type BufferKind uint8

const (
	BufferKindVertex BufferKind = iota
	BufferKindIndex
	BufferKindUniform
)

// BufferDesc describes a Buffer creation call.
type BufferDesc struct {
	Kind  BufferKind
	Size  uint64
	Data  interface{} // aliases the caller's slice for the duration of Create; not retained
}

// TextureTarget distinguishes 2D textures from cubemap faces at the
// backend level (cubemaps additionally carry FacesCount in CubemapDesc).
type TextureTarget uint8

const (
	TextureTarget2D TextureTarget = iota
	TextureTargetCube
)

// TextureDesc describes a Texture creation or update call: width/height/
// format inherited from the NBR payload, depth always 0, mips always 1.
type TextureDesc struct {
	Width    uint32
	Height   uint32
	Depth    uint32
	Mips     uint32
	Channels uint8
	Format   PixelFormat
	Target   TextureTarget
	Data     []byte // aliases the NBR pixel buffer for the duration of Create/Update
}

// PixelFormat mirrors nbr.PixelFormat's channel/byte-width semantics at
// the graphics layer, kept as a distinct type so this package has no
// import-time dependency on engine/nbr.
type PixelFormat uint8

const (
	PixelFormatR8 PixelFormat = iota
	PixelFormatRG8
	PixelFormatRGB8
	PixelFormatRGBA8
	PixelFormatRGBA16F
)

// CubemapDesc describes a Cubemap creation call: six (or FacesCount) face
// data pointers.
type CubemapDesc struct {
	Width      uint32
	Height     uint32
	Format     PixelFormat
	FacesCount uint8
	Faces      [][]byte
}

// ShaderDesc describes a Shader creation or update call. Exactly one of
// ComputeSource or the Vertex/Pixel pair is set, mirroring NBRShader.
// Update must replace source without changing the handle identity.
type ShaderDesc struct {
	ComputeSource string
	VertexSource  string
	PixelSource   string
}

// VertexAttribute is one entry of a Pipeline's vertex layout, derived from
// an NBRMesh's component bitmask.
type VertexAttribute struct {
	Name       string
	FloatCount int
	Offset     int // float32 offset within one vertex
}

// Topology selects the primitive assembly mode a Pipeline draws with.
type Topology uint8

const (
	TopologyTriangleList Topology = iota
	TopologyLineList
)

// PipelineDesc describes a Pipeline creation call: vertex layout, stride,
// and topology, assembled by the runtime mesh importer from an NBRMesh's
// VertexComponentBits.
type PipelineDesc struct {
	Attributes []VertexAttribute
	StrideFloats int
	Topology   Topology
	Shader     Shader
}
