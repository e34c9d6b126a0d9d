package mock

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
)

func TestContextCreateSeedsDefaults(t *testing.T) {
	b := New()
	require.NoError(t, b.ContextCreate(graphics.ContextDesc{}))
	require.NotEqual(t, graphics.Texture(graphics.InvalidHandle), b.DefaultTexture())
	require.NotEqual(t, graphics.Buffer(graphics.InvalidHandle), b.DefaultUniformBuffer())
}

func TestTextureUpdatePreservesHandle(t *testing.T) {
	b := New()
	require.NoError(t, b.ContextCreate(graphics.ContextDesc{}))

	tex, err := b.TextureCreate(graphics.TextureDesc{Width: 2, Height: 2, Channels: 4, Format: graphics.PixelFormatRGBA8, Data: make([]byte, 16)})
	require.NoError(t, err)

	newDesc := graphics.TextureDesc{Width: 4, Height: 4, Channels: 4, Format: graphics.PixelFormatRGBA8, Data: make([]byte, 64)}
	require.NoError(t, b.TextureUpdate(tex, newDesc))

	got, err := b.TextureDesc(tex)
	require.NoError(t, err)
	require.Equal(t, uint32(4), got.Width)
}

func TestShaderUpdatePreservesHandle(t *testing.T) {
	b := New()
	sh, err := b.ShaderCreate(graphics.ShaderDesc{VertexSource: "v1", PixelSource: "p1"})
	require.NoError(t, err)

	require.NoError(t, b.ShaderUpdate(sh, graphics.ShaderDesc{VertexSource: "v2", PixelSource: "p2"}))
	got, err := b.ShaderDesc(sh)
	require.NoError(t, err)
	require.Equal(t, "v2", got.VertexSource)
}

func TestDestroyedHandleErrorsOnUpdate(t *testing.T) {
	b := New()
	buf, err := b.BufferCreate(graphics.BufferDesc{Kind: graphics.BufferKindVertex, Size: 64})
	require.NoError(t, err)

	b.BufferDestroy(buf)
	err = b.BufferUpdate(buf, graphics.BufferDesc{Kind: graphics.BufferKindVertex, Size: 128})
	require.Error(t, err)
}
