package resources

import (
	"fmt"

	"github.com/spaghettifunk/nbrengine/engine/graphics"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// The functions in this file are the runtime NBR importers: they take a
// decoded NBR* payload already in memory and produce a graphics-backend
// descriptor, never touching the file system. They are the online
// counterpart to engine/nbr/importers' offline, file-to-NBR converters.

func pixelFormatFromNBR(f nbr.PixelFormat) graphics.PixelFormat { return graphics.PixelFormat(f) }

// textureDescFromNBR builds a Texture descriptor whose data pointer
// aliases the NBR pixel buffer for the duration of backend creation.
// Depth is always 0, mips is always 1, and the target is always 2D:
// runtime NBR textures carry no mip chain or volume data.
func textureDescFromNBR(t *nbr.Texture) graphics.TextureDesc {
	return graphics.TextureDesc{
		Width:    t.Width,
		Height:   t.Height,
		Depth:    0,
		Mips:     1,
		Channels: uint8(t.Channels),
		Format:   pixelFormatFromNBR(t.Format),
		Target:   graphics.TextureTarget2D,
		Data:     t.Pixels,
	}
}

func cubemapDescFromNBR(c *nbr.Cubemap) graphics.CubemapDesc {
	return graphics.CubemapDesc{
		Width:      c.Width,
		Height:     c.Height,
		Format:     pixelFormatFromNBR(c.Format),
		FacesCount: c.FacesCount,
		Faces:      c.Faces,
	}
}

func shaderDescFromNBR(s *nbr.Shader) graphics.ShaderDesc {
	return graphics.ShaderDesc{
		ComputeSource: s.ComputeSource,
		VertexSource:  s.VertexSource,
		PixelSource:   s.PixelSource,
	}
}

// pipelineDescFromMesh assembles a layout + stride from the NBR mesh's
// vertex-component bitmask.
func pipelineDescFromMesh(bits nbr.VertexComponent, shader graphics.Shader) graphics.PipelineDesc {
	type namedComponent struct {
		name string
		c    nbr.VertexComponent
	}
	ordered := []namedComponent{
		{"position", nbr.VertexComponentPosition},
		{"normal", nbr.VertexComponentNormal},
		{"tangent", nbr.VertexComponentTangent},
		{"color0", nbr.VertexComponentColor0},
		{"color1", nbr.VertexComponentColor1},
		{"uv", nbr.VertexComponentUV},
	}

	var attrs []graphics.VertexAttribute
	for _, nc := range ordered {
		if !bits.Has(nc.c) {
			continue
		}
		offset := nbr.Offset(bits, nc.c)
		floats := nbr.Stride(bits|nc.c) - nbr.Stride(bits&^nc.c)
		attrs = append(attrs, graphics.VertexAttribute{Name: nc.name, FloatCount: floats, Offset: offset})
	}

	return graphics.PipelineDesc{
		Attributes:   attrs,
		StrideFloats: nbr.Stride(bits),
		Topology:     graphics.TopologyTriangleList,
		Shader:       shader,
	}
}

func audioEntryFromNBR(a *nbr.Audio) AudioEntry {
	return AudioEntry{Format: a.Format, SampleRate: a.SampleRate, Channels: a.Channels, Data: a.Samples}
}

// textureIDAt converts an NBRMaterial's -1-sentinel int8 texture index
// into a group-relative resource ID; -1 (or an out-of-range index)
// yields Invalid.
func textureIDAt(textureIDs []ID, idx int8) ID {
	if idx < 0 || int(idx) >= len(textureIDs) {
		return Invalid
	}
	return textureIDs[idx]
}

func validateModelIndices(m *nbr.Model) error {
	for i, mat := range m.Materials {
		for _, idx := range []int8{mat.AlbedoIndex, mat.MetallicIndex, mat.RoughnessIndex, mat.NormalIndex} {
			if idx >= 0 && int(idx) >= len(m.Textures) {
				return fmt.Errorf("model material %d references texture index %d, have %d textures", i, idx, len(m.Textures))
			}
		}
	}
	for i, mesh := range m.Meshes {
		if int(mesh.MaterialIndex) >= len(m.Materials) {
			return fmt.Errorf("model mesh %d references material index %d, have %d materials", i, mesh.MaterialIndex, len(m.Materials))
		}
	}
	return nil
}
