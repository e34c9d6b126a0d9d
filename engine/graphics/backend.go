package graphics

// Backend is the narrowed surface the core requires of its graphics
// dependency: create/destroy/update/get_desc for each resource family,
// plus frame bracketing and context lifecycle. It has no render-pass,
// render-target, or shader-uniform-binding surface, since those belong to
// the rendering pipeline the core does not own.
//
// A Backend is a black box: only its contracts matter here.
type Backend interface {
	ContextCreate(desc ContextDesc) error
	ContextDestroy() error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error

	BufferCreate(desc BufferDesc) (Buffer, error)
	BufferDestroy(b Buffer)
	BufferUpdate(b Buffer, desc BufferDesc) error
	BufferDesc(b Buffer) (BufferDesc, error)

	TextureCreate(desc TextureDesc) (Texture, error)
	TextureDestroy(t Texture)
	TextureUpdate(t Texture, desc TextureDesc) error
	TextureDesc(t Texture) (TextureDesc, error)

	CubemapCreate(desc CubemapDesc) (Cubemap, error)
	CubemapDestroy(c Cubemap)
	CubemapUpdate(c Cubemap, desc CubemapDesc) error
	CubemapDesc(c Cubemap) (CubemapDesc, error)

	ShaderCreate(desc ShaderDesc) (Shader, error)
	ShaderDestroy(s Shader)
	ShaderUpdate(s Shader, desc ShaderDesc) error
	ShaderDesc(s Shader) (ShaderDesc, error)

	PipelineCreate(desc PipelineDesc) (Pipeline, error)
	PipelineDestroy(p Pipeline)
	PipelineDesc(p Pipeline) (PipelineDesc, error)

	DefaultTexture() Texture
	DefaultUniformBuffer() Buffer
}
