package importers

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// ImportScale is the global scale applied to every imported position.
const ImportScale = 1.0

// ImportModel decodes a .gltf or .glb file into an NBRModel: one NBRMesh per
// primitive, one NBRMaterial per material with -1 texture indices when a
// slot is absent, and embedded NBRTexture entries for every referenced
// image. Primitives are copied as the source accessors store them: their
// topology mode is not checked, and no triangulation, vertex joining or
// cache-locality reordering is applied.
func ImportModel(path string) (*nbr.Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: gltf open %q: %v", core.ErrBadInputPath, path, err)
	}

	textureIndex, textures, err := importGLTFTextures(doc, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	materials := make([]nbr.Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		materials[i] = gltfMaterialToNBR(gm, textureIndex)
	}
	if len(materials) == 0 {
		materials = append(materials, nbr.Material{AlbedoIndex: -1, MetallicIndex: -1, RoughnessIndex: -1, NormalIndex: -1})
	}

	var meshes []nbr.Mesh
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			mesh, err := importGLTFPrimitive(doc, prim)
			if err != nil {
				core.LogWarn("model importer: skipping %s mesh %d primitive %d: %v", path, mi, pi, err)
				continue
			}
			if prim.Material != nil {
				mesh.MaterialIndex = uint8(*prim.Material)
			}
			meshes = append(meshes, *mesh)
		}
	}

	return &nbr.Model{Meshes: meshes, Materials: materials, Textures: textures}, nil
}

// importGLTFTextures decodes every glTF texture into an embedded NBRTexture,
// returning a map from glTF texture index to its position in the returned
// slice so materials can reference them.
func importGLTFTextures(doc *gltf.Document, dir string) (map[int]int8, []nbr.Texture, error) {
	index := make(map[int]int8, len(doc.Textures))
	var out []nbr.Texture

	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *nbr.Texture
		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				core.LogWarn("model importer: texture %d bufferview read: %v", i, err)
				continue
			}
			decoded, err := decodeImageBytes(raw)
			if err != nil {
				core.LogWarn("model importer: texture %d decode: %v", i, err)
				continue
			}
			tex = decoded
		case img.URI != "" && !img.IsEmbeddedResource():
			decoded, err := ImportImage(filepath.Join(dir, img.URI))
			if err != nil {
				core.LogWarn("model importer: texture %d (%s): %v", i, img.URI, err)
				continue
			}
			tex = decoded
		default:
			continue
		}

		index[i] = int8(len(out))
		out = append(out, *tex)
	}
	return index, out, nil
}

// gltfMaterialToNBR maps a glTF PBR metallic-roughness material directly
// onto NBRMaterial's already-PBR fields; no Blinn-Phong approximation is
// needed since the engine's material payload is PBR-native.
func gltfMaterialToNBR(gm *gltf.Material, textureIndex map[int]int8) nbr.Material {
	m := nbr.Material{AlbedoIndex: -1, MetallicIndex: -1, RoughnessIndex: -1, NormalIndex: -1}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		m.Color = [3]float32{float32(cf[0]), float32(cf[1]), float32(cf[2])}
		m.Metallic = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())

		if pbr.BaseColorTexture != nil {
			if idx, ok := textureIndex[pbr.BaseColorTexture.Index]; ok {
				m.AlbedoIndex = idx
			}
		}
		if pbr.MetallicRoughnessTexture != nil {
			if idx, ok := textureIndex[pbr.MetallicRoughnessTexture.Index]; ok {
				m.MetallicIndex = idx
				m.RoughnessIndex = idx
			}
		}
	} else {
		m.Color = [3]float32{1, 1, 1}
	}

	if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
		if idx, ok := textureIndex[*gm.NormalTexture.Index]; ok {
			m.NormalIndex = idx
		}
	}
	return m
}

// importGLTFPrimitive reads one primitive's accessors into an interleaved
// NBRMesh. The vertex component bitmask is derived from which attributes
// the primitive actually carries: a primitive lacking TEXCOORD_0 produces a
// mesh with no UV bit set and a correspondingly shorter stride, rather
// than a zero-filled slot.
func importGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive) (*nbr.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	vertexCount := len(positions)

	var normals, tangents3 [][3]float32
	var uvs [][2]float32

	bits := nbr.VertexComponentPosition
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if len(normals) == vertexCount {
			bits |= nbr.VertexComponentNormal
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if len(uvs) == vertexCount {
			bits |= nbr.VertexComponentUV
		}
	}
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		tangents4, _ := modeler.ReadTangent(doc, doc.Accessors[idx], nil)
		if len(tangents4) == vertexCount {
			tangents3 = make([][3]float32, vertexCount)
			for i, t := range tangents4 {
				tangents3[i] = [3]float32{t[0], t[1], t[2]}
			}
			bits |= nbr.VertexComponentTangent
		}
	}

	vertices := make([]float32, 0, vertexCount*nbr.Stride(bits))
	for i, p := range positions {
		if bits.Has(nbr.VertexComponentPosition) {
			vertices = append(vertices, p[0]*ImportScale, p[1]*ImportScale, p[2]*ImportScale)
		}
		if bits.Has(nbr.VertexComponentNormal) {
			n := normals[i]
			vertices = append(vertices, n[0], n[1], n[2])
		}
		if bits.Has(nbr.VertexComponentTangent) {
			t := tangents3[i]
			vertices = append(vertices, t[0], t[1], t[2])
		}
		if bits.Has(nbr.VertexComponentUV) {
			uv := uvs[i]
			vertices = append(vertices, uv[0], uv[1])
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, vertexCount)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return &nbr.Mesh{
		VertexComponentBits: bits,
		VerticesCount:       uint32(len(vertices)),
		Vertices:            vertices,
		IndicesCount:        uint32(len(indices)),
		Indices:             indices,
	}, nil
}
