package nbr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

func TestRoundTripTexture(t *testing.T) {
	tex := &Texture{
		Width: 2, Height: 2, Channels: 4, Format: PixelFormatRGBA8,
		Pixels: []byte{
			0xFF, 0, 0, 0xFF,
			0, 0xFF, 0, 0xFF,
			0, 0, 0xFF, 0xFF,
			0xFF, 0xFF, 0xFF, 0xFF,
		},
	}
	path := tempPath(t, "t.nbrtexture")
	require.NoError(t, Save(path, tex))

	f, err := Load(path)
	require.NoError(t, err)
	require.True(t, f.Valid)
	got := f.Payload.(*Texture)
	require.Equal(t, tex.Pixels, got.Pixels)
	require.Equal(t, tex.Width, got.Width)
	require.Equal(t, tex.Height, got.Height)
}

func TestRoundTripCubemap(t *testing.T) {
	cm := &Cubemap{Width: 1, Height: 1, Channels: 4, Format: PixelFormatRGBA8, FacesCount: 6}
	for f := 0; f < 6; f++ {
		cm.Faces = append(cm.Faces, []byte{byte(f), byte(f), byte(f), 0xFF})
	}
	path := tempPath(t, "c.nbrcubemap")
	require.NoError(t, Save(path, cm))

	f, err := Load(path)
	require.NoError(t, err)
	got := f.Payload.(*Cubemap)
	require.Len(t, got.Faces, 6)
	for i, face := range got.Faces {
		require.Equal(t, cm.Faces[i], face)
	}
}

func TestRoundTripShader(t *testing.T) {
	s := &Shader{
		VertexSource: "#version 420 core\nvoid main(){gl_Position=vec4(0);}",
		PixelSource:  "#version 420 core\nvoid main(){}",
	}
	path := tempPath(t, "s.nbrshader")
	require.NoError(t, Save(path, s))

	f, err := Load(path)
	require.NoError(t, err)
	got := f.Payload.(*Shader)
	require.Equal(t, s.VertexSource, got.VertexSource)
	require.Equal(t, s.PixelSource, got.PixelSource)
	require.Empty(t, got.ComputeSource)
}

func TestRoundTripModel(t *testing.T) {
	model := &Model{
		Meshes: []Mesh{{
			VertexComponentBits: VertexComponentPosition | VertexComponentUV,
			VerticesCount:       15,
			Vertices:            []float32{0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
			IndicesCount:        3,
			Indices:             []uint32{0, 1, 2},
			MaterialIndex:       0,
		}},
		Materials: []Material{{Color: [3]float32{1, 1, 1}, AlbedoIndex: 0, MetallicIndex: -1, RoughnessIndex: -1, NormalIndex: -1}},
		Textures:  []Texture{{Width: 1, Height: 1, Channels: 4, Format: PixelFormatRGBA8, Pixels: []byte{1, 2, 3, 4}}},
	}
	path := tempPath(t, "m.nbrmodel")
	require.NoError(t, Save(path, model))

	f, err := Load(path)
	require.NoError(t, err)
	got := f.Payload.(*Model)
	require.Len(t, got.Meshes, 1)
	require.Len(t, got.Materials, 1)
	require.Len(t, got.Textures, 1)
	require.Equal(t, model.Textures[0].Pixels, got.Textures[0].Pixels)

	for i, mi := range []int8{got.Materials[0].AlbedoIndex} {
		_ = i
		require.GreaterOrEqual(t, int(mi), 0)
		require.Less(t, int(mi), len(got.Textures))
	}
}

func TestRoundTripFont(t *testing.T) {
	font := &Font{
		Glyphs: []Glyph{{
			Unicode: 65, Width: 2, Height: 2,
			Pixels: []byte{1, 2, 3, 4},
		}},
		Ascent: 10, Descent: -2, LineGap: 1,
	}
	path := tempPath(t, "f.nbrfont")
	require.NoError(t, Save(path, font))

	f, err := Load(path)
	require.NoError(t, err)
	got := f.Payload.(*Font)
	require.Equal(t, font.Glyphs[0].Pixels, got.Glyphs[0].Pixels)
	require.Equal(t, font.Ascent, got.Ascent)
}

func TestRoundTripAudio(t *testing.T) {
	a := &Audio{Format: AudioFormatI16, SampleRate: 44100, Channels: 2, Size: 4, Samples: []byte{1, 2, 3, 4}}
	path := tempPath(t, "a.nbraudio")
	require.NoError(t, Save(path, a))

	f, err := Load(path)
	require.NoError(t, err)
	got := f.Payload.(*Audio)
	require.Equal(t, a.Samples, got.Samples)
	require.Equal(t, a.SampleRate, got.SampleRate)
}

func TestHeaderStrictness(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Channels: 1, Format: PixelFormatR8, Pixels: []byte{9}}
	path := tempPath(t, "bad.nbrtexture")
	require.NoError(t, Save(path, tex))

	corruptSentinel := func() {
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		b[0] = 0
		require.NoError(t, os.WriteFile(path, b, 0o644))
	}
	corruptSentinel()
	f, err := Load(path)
	require.Error(t, err)
	require.False(t, f.Valid)
}

func TestHeaderVersionMismatch(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Channels: 1, Format: PixelFormatR8, Pixels: []byte{9}}
	path := tempPath(t, "ver.nbrtexture")
	require.NoError(t, Save(path, tex))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	b[1] = 99 // major version low byte
	require.NoError(t, os.WriteFile(path, b, 0o644))

	f, err := Load(path)
	require.Error(t, err)
	require.False(t, f.Valid)
}

func TestExtensionTypeMismatchRejected(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Channels: 1, Format: PixelFormatR8, Pixels: []byte{9}}
	path := tempPath(t, "t.nbrtexture")
	require.NoError(t, Save(path, tex))

	renamed := tempPath(t, "t.nbrshader")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(renamed, b, 0o644))

	f, err := Load(renamed)
	require.Error(t, err)
	require.False(t, f.Valid)
}

func TestValidExtension(t *testing.T) {
	require.True(t, ValidExtension("foo.nbrtexture"))
	require.True(t, ValidExtension("foo.nbrmodel"))
	require.False(t, ValidExtension("foo.png"))
	require.False(t, ValidExtension("foo"))
}

func TestTextureChannelFormatMismatchForbidden(t *testing.T) {
	tex := &Texture{Width: 1, Height: 1, Channels: 1, Format: PixelFormatRGBA16F, Pixels: make([]byte, 4)}
	path := tempPath(t, "bad2.nbrtexture")
	require.Error(t, Save(path, tex))
}
