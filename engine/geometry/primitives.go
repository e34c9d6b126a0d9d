// Package geometry implements procedural generation of the engine's
// fixed shape set (cube, skybox, billboard, debug cube), each producing
// interleaved vertex data plus an index buffer ready to push into a
// resource group. Normal/tangent synthesis is reused directly from
// engine/math, which already ships pure, generic geometry math
// (engine/math/geometry.go).
package geometry

import (
	"github.com/spaghettifunk/nbrengine/engine/math"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// CubeConfig parameterizes GenerateCube: extents plus UV tiling.
type CubeConfig struct {
	Width, Height, Depth float32
	TileX, TileY         float32
}

// Mesh is the generator output: interleaved float32 vertex data (laid out
// per VertexBits, matching NBRMesh's bitmask ordering), indices, and the
// component bitmask itself.
type Mesh struct {
	VertexBits nbr.VertexComponent
	Vertices   []float32
	Indices    []uint32
}

func normalizeCubeConfig(cfg *CubeConfig) {
	if cfg.Width == 0 {
		cfg.Width = 1
	}
	if cfg.Height == 0 {
		cfg.Height = 1
	}
	if cfg.Depth == 0 {
		cfg.Depth = 1
	}
	if cfg.TileX == 0 {
		cfg.TileX = 1
	}
	if cfg.TileY == 0 {
		cfg.TileY = 1
	}
}

// GenerateCube produces 24 unique vertices (4 per face) and 36 indices:
// position3, normal3, tangent3, color4, color4, uv2. Normals are
// synthesized per indexed triangle (flat-shaded, one normal per face);
// tangents from the standard edge/UV-delta formula.
func GenerateCube(cfg CubeConfig) Mesh {
	normalizeCubeConfig(&cfg)

	halfW, halfH, halfD := cfg.Width*0.5, cfg.Height*0.5, cfg.Depth*0.5
	minX, minY, minZ := -halfW, -halfH, -halfD
	maxX, maxY, maxZ := halfW, halfH, halfD
	minU, minV := float32(0), float32(0)
	maxU, maxV := cfg.TileX, cfg.TileY

	verts := make([]math.Vertex3D, 24)

	// Back (at indices 0-3, so triangle (0,1,2) faces -Z: a consequence of
	// vertex order, not a label choice).
	verts[0].Position = math.NewVec3(maxX, minY, minZ)
	verts[1].Position = math.NewVec3(minX, maxY, minZ)
	verts[2].Position = math.NewVec3(maxX, maxY, minZ)
	verts[3].Position = math.NewVec3(minX, minY, minZ)
	// Front (at indices 4-7, so triangle (4,5,6) faces +Z)
	verts[4].Position = math.NewVec3(minX, minY, maxZ)
	verts[5].Position = math.NewVec3(maxX, maxY, maxZ)
	verts[6].Position = math.NewVec3(minX, maxY, maxZ)
	verts[7].Position = math.NewVec3(maxX, minY, maxZ)
	// Left
	verts[8].Position = math.NewVec3(minX, minY, minZ)
	verts[9].Position = math.NewVec3(minX, maxY, maxZ)
	verts[10].Position = math.NewVec3(minX, maxY, minZ)
	verts[11].Position = math.NewVec3(minX, minY, maxZ)
	// Right
	verts[12].Position = math.NewVec3(maxX, minY, maxZ)
	verts[13].Position = math.NewVec3(maxX, maxY, minZ)
	verts[14].Position = math.NewVec3(maxX, maxY, maxZ)
	verts[15].Position = math.NewVec3(maxX, minY, minZ)
	// Bottom
	verts[16].Position = math.NewVec3(maxX, minY, maxZ)
	verts[17].Position = math.NewVec3(minX, minY, minZ)
	verts[18].Position = math.NewVec3(maxX, minY, minZ)
	verts[19].Position = math.NewVec3(minX, minY, maxZ)
	// Top
	verts[20].Position = math.NewVec3(minX, maxY, maxZ)
	verts[21].Position = math.NewVec3(maxX, maxY, minZ)
	verts[22].Position = math.NewVec3(minX, maxY, minZ)
	verts[23].Position = math.NewVec3(maxX, maxY, maxZ)

	for face := 0; face < 6; face++ {
		o := face * 4
		verts[o+0].Texcoord = math.NewVec2(minU, minV)
		verts[o+1].Texcoord = math.NewVec2(maxU, maxV)
		verts[o+2].Texcoord = math.NewVec2(minU, maxV)
		verts[o+3].Texcoord = math.NewVec2(maxU, minV)
	}

	indices := make([]uint32, 36)
	for face := 0; face < 6; face++ {
		vo := uint32(face * 4)
		io := face * 6
		indices[io+0] = vo + 0
		indices[io+1] = vo + 1
		indices[io+2] = vo + 2
		indices[io+3] = vo + 0
		indices[io+4] = vo + 3
		indices[io+5] = vo + 1
	}

	math.GeometryGenerateNormals(24, verts, 36, indices)
	verts = math.GeometryGenerateTangents(24, verts, 36, indices)
	_, verts = math.GeometryDeduplicateVertices(24, verts, 36, indices)

	bits := nbr.VertexComponentPosition | nbr.VertexComponentNormal | nbr.VertexComponentTangent |
		nbr.VertexComponentColor0 | nbr.VertexComponentColor1 | nbr.VertexComponentUV
	return Mesh{VertexBits: bits, Vertices: interleave(verts, bits), Indices: indices}
}

// GenerateSkybox produces the inward-facing 36-vertex, position-only cube
// (one unique vertex per triangle corner with sequential indices 0..35,
// winding reversed relative to GenerateCube so faces render from inside).
func GenerateSkybox() Mesh {
	const s = 1.0
	positions := [][3]float32{
		{-s, s, -s}, {-s, -s, -s}, {s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {-s, -s, -s}, {-s, s, -s}, {-s, s, -s}, {-s, s, s}, {-s, -s, s},
		{s, -s, -s}, {s, -s, s}, {s, s, s}, {s, s, s}, {s, s, -s}, {s, -s, -s},
		{-s, -s, s}, {-s, s, s}, {s, s, s}, {s, s, s}, {s, -s, s}, {-s, -s, s},
		{-s, s, -s}, {s, s, -s}, {s, s, s}, {s, s, s}, {-s, s, s}, {-s, s, -s},
		{-s, -s, -s}, {-s, -s, s}, {s, -s, -s}, {s, -s, -s}, {-s, -s, s}, {s, -s, s},
	}

	verts := make([]float32, 0, len(positions)*3)
	for _, p := range positions {
		verts = append(verts, p[0], p[1], p[2])
	}
	indices := make([]uint32, len(positions))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return Mesh{VertexBits: nbr.VertexComponentPosition, Vertices: verts, Indices: indices}
}

// GenerateBillboard produces a 4-vertex, 6-index quad: position3/normal3/
// uv2, facing +Z, centered on the origin.
func GenerateBillboard() Mesh {
	bits := nbr.VertexComponentPosition | nbr.VertexComponentNormal | nbr.VertexComponentUV
	verts := []float32{
		-0.5, -0.5, 0, 0, 0, 1, 0, 0,
		0.5, 0.5, 0, 0, 0, 1, 1, 1,
		-0.5, 0.5, 0, 0, 0, 1, 0, 1,
		0.5, -0.5, 0, 0, 0, 1, 1, 0,
	}
	indices := []uint32{0, 1, 2, 0, 3, 1}
	return Mesh{VertexBits: bits, Vertices: verts, Indices: indices}
}

// GenerateDebugCube produces position-only vertices + 36 indices, sharing
// GenerateCube's corner layout (after deduplication) but with every other
// component stripped (used for wireframe/bounds visualization).
func GenerateDebugCube(cfg CubeConfig) Mesh {
	full := GenerateCube(cfg)
	bits := nbr.VertexComponentPosition
	stride := nbr.Stride(full.VertexBits)
	posOffset := nbr.Offset(full.VertexBits, nbr.VertexComponentPosition)
	vertexCount := len(full.Vertices) / stride
	verts := make([]float32, 0, vertexCount*3)
	for v := 0; v < vertexCount; v++ {
		base := v * stride
		verts = append(verts, full.Vertices[base+posOffset:base+posOffset+3]...)
	}
	return Mesh{VertexBits: bits, Vertices: verts, Indices: full.Indices}
}

// interleave packs math.Vertex3D fields into NBRMesh's authoritative
// component order (Position, Normal, Tangent, Color0, Color1, UV),
// omitting any component absent from bits.
func interleave(verts []math.Vertex3D, bits nbr.VertexComponent) []float32 {
	out := make([]float32, 0, len(verts)*nbr.Stride(bits))
	for _, v := range verts {
		if bits.Has(nbr.VertexComponentPosition) {
			out = append(out, v.Position.X, v.Position.Y, v.Position.Z)
		}
		if bits.Has(nbr.VertexComponentNormal) {
			out = append(out, v.Normal.X, v.Normal.Y, v.Normal.Z)
		}
		if bits.Has(nbr.VertexComponentTangent) {
			out = append(out, v.Tangent.X, v.Tangent.Y, v.Tangent.Z)
		}
		if bits.Has(nbr.VertexComponentColor0) {
			out = append(out, v.Colour.X, v.Colour.Y, v.Colour.Z, v.Colour.W)
		}
		if bits.Has(nbr.VertexComponentColor1) {
			out = append(out, v.Colour.X, v.Colour.Y, v.Colour.Z, v.Colour.W)
		}
		if bits.Has(nbr.VertexComponentUV) {
			out = append(out, v.Texcoord.X, v.Texcoord.Y)
		}
	}
	return out
}
