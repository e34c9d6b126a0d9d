package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

const epsilon = 1e-4

func vertexAt(m Mesh, index int, component nbr.VertexComponent) [3]float32 {
	stride := nbr.Stride(m.VertexBits)
	offset := nbr.Offset(m.VertexBits, component)
	base := index*stride + offset
	return [3]float32{m.Vertices[base], m.Vertices[base+1], m.Vertices[base+2]}
}

func length(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func TestCubeHasExpectedVertexAndIndexCounts(t *testing.T) {
	m := GenerateCube(CubeConfig{Width: 1, Height: 1, Depth: 1, TileX: 1, TileY: 1})
	require.Len(t, m.Indices, 36)
	require.Equal(t, 24*nbr.Stride(m.VertexBits), len(m.Vertices))
}

func TestCubeFaceNormalsUnitLength(t *testing.T) {
	m := GenerateCube(CubeConfig{Width: 2, Height: 2, Depth: 2, TileX: 1, TileY: 1})
	for face := 0; face < 6; face++ {
		n := vertexAt(m, face*4, nbr.VertexComponentNormal)
		require.InDelta(t, 1.0, length(n), epsilon)
	}
}

func TestCubeTangentsPerpendicularToNormal(t *testing.T) {
	m := GenerateCube(CubeConfig{Width: 3, Height: 1, Depth: 2, TileX: 2, TileY: 3})
	for v := 0; v < 24; v++ {
		n := vertexAt(m, v, nbr.VertexComponentNormal)
		tg := vertexAt(m, v, nbr.VertexComponentTangent)
		require.InDelta(t, 1.0, length(tg), epsilon)
		require.InDelta(t, 0.0, dot(n, tg), epsilon)
	}
}

func TestCubeLiteralFaceNormals(t *testing.T) {
	m := GenerateCube(CubeConfig{Width: 1, Height: 1, Depth: 1, TileX: 1, TileY: 1})
	n012 := vertexAt(m, 0, nbr.VertexComponentNormal)
	require.InDelta(t, 0, n012[0], epsilon)
	require.InDelta(t, 0, n012[1], epsilon)
	require.InDelta(t, -1, n012[2], epsilon)

	n456 := vertexAt(m, 4, nbr.VertexComponentNormal)
	require.InDelta(t, 0, n456[0], epsilon)
	require.InDelta(t, 0, n456[1], epsilon)
	require.InDelta(t, 1, n456[2], epsilon)
}

func TestSkyboxIsPositionOnlyWith36Vertices(t *testing.T) {
	m := GenerateSkybox()
	require.Equal(t, nbr.VertexComponentPosition, m.VertexBits)
	require.Len(t, m.Vertices, 36*3)
}

func TestBillboardCounts(t *testing.T) {
	m := GenerateBillboard()
	require.Len(t, m.Indices, 6)
	require.Equal(t, 4*nbr.Stride(m.VertexBits), len(m.Vertices))
}

func TestDebugCubeIsPositionOnly(t *testing.T) {
	m := GenerateDebugCube(CubeConfig{Width: 1, Height: 1, Depth: 1})
	require.Equal(t, nbr.VertexComponentPosition, m.VertexBits)
	require.Len(t, m.Indices, 36)
	require.Len(t, m.Vertices, 24*3)
}
