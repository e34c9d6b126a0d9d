// Package mock implements an in-memory graphics.Backend used by tests, so
// engine/resources can be exercised without a GPU or windowing system. A real GPU backend
// implements the same Backend interface in its place.
package mock

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
)

// Backend is a graphics.Backend that allocates sequential handles and
// keeps every descriptor in memory, so callers can assert on what was
// created/updated without a real device.
type Backend struct {
	mu sync.Mutex

	nextHandle uint32
	buffers    map[graphics.Buffer]graphics.BufferDesc
	textures   map[graphics.Texture]graphics.TextureDesc
	cubemaps   map[graphics.Cubemap]graphics.CubemapDesc
	shaders    map[graphics.Shader]graphics.ShaderDesc
	pipelines  map[graphics.Pipeline]graphics.PipelineDesc

	defaultTexture graphics.Texture
	defaultUniform graphics.Buffer

	FrameCount int
}

// New returns a ready-to-use mock backend. ContextCreate still must be
// called before use, matching the real backend's lifecycle.
func New() *Backend {
	return &Backend{
		buffers:   make(map[graphics.Buffer]graphics.BufferDesc),
		textures:  make(map[graphics.Texture]graphics.TextureDesc),
		cubemaps:  make(map[graphics.Cubemap]graphics.CubemapDesc),
		shaders:   make(map[graphics.Shader]graphics.ShaderDesc),
		pipelines: make(map[graphics.Pipeline]graphics.PipelineDesc),
	}
}

func (b *Backend) allocate() uint32 {
	b.nextHandle++
	return b.nextHandle
}

func (b *Backend) ContextCreate(desc graphics.ContextDesc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	// The resource manager's defaults bootstrap expects the backend to
	// already expose a default texture and uniform buffer.
	b.defaultTexture, _ = b.textureCreateLocked(graphics.TextureDesc{Width: 1, Height: 1, Channels: 4, Format: graphics.PixelFormatRGBA8, Data: []byte{255, 0, 255, 255}})
	b.defaultUniform, _ = b.bufferCreateLocked(graphics.BufferDesc{Kind: graphics.BufferKindUniform, Size: 256})
	return nil
}

func (b *Backend) ContextDestroy() error { return nil }

func (b *Backend) BeginFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.FrameCount++
	return nil
}

func (b *Backend) EndFrame(deltaTime float64) error { return nil }

func (b *Backend) bufferCreateLocked(desc graphics.BufferDesc) (graphics.Buffer, error) {
	h := graphics.Buffer(b.allocate())
	b.buffers[h] = desc
	return h, nil
}

func (b *Backend) BufferCreate(desc graphics.BufferDesc) (graphics.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bufferCreateLocked(desc)
}

func (b *Backend) BufferDestroy(h graphics.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.buffers, h)
}

func (b *Backend) BufferUpdate(h graphics.Buffer, desc graphics.BufferDesc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.buffers[h]; !ok {
		return fmt.Errorf("mock: update of unknown buffer %d", h)
	}
	b.buffers[h] = desc
	return nil
}

func (b *Backend) BufferDesc(h graphics.Buffer) (graphics.BufferDesc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.buffers[h]
	if !ok {
		return graphics.BufferDesc{}, fmt.Errorf("mock: no such buffer %d", h)
	}
	return d, nil
}

func (b *Backend) textureCreateLocked(desc graphics.TextureDesc) (graphics.Texture, error) {
	h := graphics.Texture(b.allocate())
	b.textures[h] = desc
	return h, nil
}

func (b *Backend) TextureCreate(desc graphics.TextureDesc) (graphics.Texture, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.textureCreateLocked(desc)
}

func (b *Backend) TextureDestroy(h graphics.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.textures, h)
}

// TextureUpdate keeps h's identity and swaps its descriptor in place,
// which is what makes hot-reload possible without re-registering the id.
func (b *Backend) TextureUpdate(h graphics.Texture, desc graphics.TextureDesc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.textures[h]; !ok {
		return fmt.Errorf("mock: update of unknown texture %d", h)
	}
	b.textures[h] = desc
	return nil
}

func (b *Backend) TextureDesc(h graphics.Texture) (graphics.TextureDesc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.textures[h]
	if !ok {
		return graphics.TextureDesc{}, fmt.Errorf("mock: no such texture %d", h)
	}
	return d, nil
}

func (b *Backend) CubemapCreate(desc graphics.CubemapDesc) (graphics.Cubemap, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := graphics.Cubemap(b.allocate())
	b.cubemaps[h] = desc
	return h, nil
}

func (b *Backend) CubemapDestroy(h graphics.Cubemap) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.cubemaps, h)
}

func (b *Backend) CubemapUpdate(h graphics.Cubemap, desc graphics.CubemapDesc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.cubemaps[h]; !ok {
		return fmt.Errorf("mock: update of unknown cubemap %d", h)
	}
	b.cubemaps[h] = desc
	return nil
}

func (b *Backend) CubemapDesc(h graphics.Cubemap) (graphics.CubemapDesc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.cubemaps[h]
	if !ok {
		return graphics.CubemapDesc{}, fmt.Errorf("mock: no such cubemap %d", h)
	}
	return d, nil
}

func (b *Backend) ShaderCreate(desc graphics.ShaderDesc) (graphics.Shader, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := graphics.Shader(b.allocate())
	b.shaders[h] = desc
	return h, nil
}

func (b *Backend) ShaderDestroy(h graphics.Shader) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.shaders, h)
}

// ShaderUpdate replaces source without changing h.
func (b *Backend) ShaderUpdate(h graphics.Shader, desc graphics.ShaderDesc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.shaders[h]; !ok {
		return fmt.Errorf("mock: update of unknown shader %d", h)
	}
	b.shaders[h] = desc
	return nil
}

func (b *Backend) ShaderDesc(h graphics.Shader) (graphics.ShaderDesc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.shaders[h]
	if !ok {
		return graphics.ShaderDesc{}, fmt.Errorf("mock: no such shader %d", h)
	}
	return d, nil
}

func (b *Backend) PipelineCreate(desc graphics.PipelineDesc) (graphics.Pipeline, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := graphics.Pipeline(b.allocate())
	b.pipelines[h] = desc
	return h, nil
}

func (b *Backend) PipelineDestroy(h graphics.Pipeline) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pipelines, h)
}

func (b *Backend) PipelineDesc(h graphics.Pipeline) (graphics.PipelineDesc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	d, ok := b.pipelines[h]
	if !ok {
		return graphics.PipelineDesc{}, fmt.Errorf("mock: no such pipeline %d", h)
	}
	return d, nil
}

func (b *Backend) DefaultTexture() graphics.Texture      { return b.defaultTexture }
func (b *Backend) DefaultUniformBuffer() graphics.Buffer { return b.defaultUniform }

var _ graphics.Backend = (*Backend)(nil)
