package nbr

import (
	"fmt"

	"github.com/spaghettifunk/nbrengine/engine/byteio"
)

// This file is the authoritative round-trip definition for every NBR*
// payload: each Write/Read pair is the sole definition of that type's
// on-disk layout.

func writeTexturePixels(w *byteio.Writer, t *Texture) error {
	if int(t.Channels) != t.Format.Channels() {
		return fmt.Errorf("nbr: texture channels=%d disagrees with format %d (expects %d)", t.Channels, t.Format, t.Format.Channels())
	}
	w.U32(t.Width)
	w.U32(t.Height)
	w.I8(t.Channels)
	w.U8(uint8(t.Format))
	w.Bytes(t.Pixels)
	return w.Err()
}

func readTexturePixels(r *byteio.Reader) (*Texture, error) {
	t := &Texture{}
	t.Width = r.U32()
	t.Height = r.U32()
	t.Channels = r.I8()
	t.Format = PixelFormat(r.U8())
	size := int(t.Width) * int(t.Height) * int(t.Channels) * t.Format.BytesPerPixel()
	t.Pixels = r.Bytes(size)
	return t, r.Err()
}

func writeCubemap(w *byteio.Writer, c *Cubemap) error {
	if int(c.Channels) != c.Format.Channels() {
		return fmt.Errorf("nbr: cubemap channels=%d disagrees with format %d", c.Channels, c.Format)
	}
	w.U32(c.Width)
	w.U32(c.Height)
	w.I8(c.Channels)
	w.U8(uint8(c.Format))
	w.U8(c.FacesCount)
	for i := 0; i < int(c.FacesCount); i++ {
		w.Bytes(c.Faces[i])
	}
	return w.Err()
}

func readCubemap(r *byteio.Reader) (*Cubemap, error) {
	c := &Cubemap{}
	c.Width = r.U32()
	c.Height = r.U32()
	c.Channels = r.I8()
	c.Format = PixelFormat(r.U8())
	c.FacesCount = r.U8()
	faceSize := int(c.Width) * int(c.Height) * int(c.Channels) * c.Format.BytesPerPixel()
	c.Faces = make([][]byte, c.FacesCount)
	for i := 0; i < int(c.FacesCount); i++ {
		c.Faces[i] = r.Bytes(faceSize)
	}
	return c, r.Err()
}

// writeShader uses u32 length prefixes, wide enough for any real shader
// source without a practical size ceiling.
func writeShader(w *byteio.Writer, s *Shader) error {
	if s.ComputeSource != "" {
		w.NulTerminatedU32Len(s.ComputeSource)
	} else {
		w.U32(0)
		w.NulTerminatedU32Len(s.VertexSource)
		w.NulTerminatedU32Len(s.PixelSource)
	}
	return w.Err()
}

func readShader(r *byteio.Reader) (*Shader, error) {
	s := &Shader{}
	computeLen := r.U32()
	if computeLen > 0 {
		s.ComputeSource = readNulBody(r, computeLen)
	} else {
		vertexLen := r.U32()
		s.VertexSource = readNulBody(r, vertexLen)
		pixelLen := r.U32()
		s.PixelSource = readNulBody(r, pixelLen)
	}
	return s, r.Err()
}

// readNulBody reads `length` bytes (the length already consumed by the
// caller) and strips the trailing NUL, mirroring NulTerminatedU32Len's
// encoding without re-reading the length field.
func readNulBody(r *byteio.Reader, length uint32) string {
	if length == 0 {
		return ""
	}
	b := r.Bytes(int(length))
	return string(b[:len(b)-1])
}

func writeMaterial(w *byteio.Writer, m *Material) error {
	for _, c := range m.Color {
		w.F32(c)
	}
	w.F32(m.Metallic)
	w.F32(m.Roughness)
	w.I8(m.AlbedoIndex)
	w.I8(m.MetallicIndex)
	w.I8(m.RoughnessIndex)
	w.I8(m.NormalIndex)
	return w.Err()
}

func readMaterial(r *byteio.Reader) (*Material, error) {
	m := &Material{}
	for i := range m.Color {
		m.Color[i] = r.F32()
	}
	m.Metallic = r.F32()
	m.Roughness = r.F32()
	m.AlbedoIndex = r.I8()
	m.MetallicIndex = r.I8()
	m.RoughnessIndex = r.I8()
	m.NormalIndex = r.I8()
	return m, r.Err()
}

func writeMesh(w *byteio.Writer, m *Mesh) error {
	w.U8(uint8(m.VertexComponentBits))
	w.U32(m.VerticesCount)
	w.F32SliceRaw(m.Vertices)
	w.U32(m.IndicesCount)
	w.U32SliceRaw(m.Indices)
	w.U8(m.MaterialIndex)
	return w.Err()
}

func readMesh(r *byteio.Reader) (*Mesh, error) {
	m := &Mesh{}
	m.VertexComponentBits = VertexComponent(r.U8())
	m.VerticesCount = r.U32()
	m.Vertices = r.F32SliceRaw(int(m.VerticesCount))
	m.IndicesCount = r.U32()
	m.Indices = r.U32SliceRaw(int(m.IndicesCount))
	m.MaterialIndex = r.U8()
	return m, r.Err()
}

func writeModel(w *byteio.Writer, m *Model) error {
	w.U16(uint16(len(m.Meshes)))
	for i := range m.Meshes {
		if err := writeMesh(w, &m.Meshes[i]); err != nil {
			return err
		}
	}
	w.U8(uint8(len(m.Materials)))
	for i := range m.Materials {
		if err := writeMaterial(w, &m.Materials[i]); err != nil {
			return err
		}
	}
	w.U8(uint8(len(m.Textures)))
	for i := range m.Textures {
		if err := writeTexturePixels(w, &m.Textures[i]); err != nil {
			return err
		}
	}
	return w.Err()
}

func readModel(r *byteio.Reader) (*Model, error) {
	m := &Model{}
	meshCount := r.U16()
	m.Meshes = make([]Mesh, meshCount)
	for i := range m.Meshes {
		mesh, err := readMesh(r)
		if err != nil {
			return nil, err
		}
		m.Meshes[i] = *mesh
	}
	matCount := r.U8()
	m.Materials = make([]Material, matCount)
	for i := range m.Materials {
		mat, err := readMaterial(r)
		if err != nil {
			return nil, err
		}
		m.Materials[i] = *mat
	}
	texCount := r.U8()
	m.Textures = make([]Texture, texCount)
	for i := range m.Textures {
		tex, err := readTexturePixels(r)
		if err != nil {
			return nil, err
		}
		m.Textures[i] = *tex
	}
	return m, r.Err()
}

func writeJointSamples(w *byteio.Writer, samples []JointSample, hasW bool) {
	w.U16(uint16(len(samples)))
	for _, s := range samples {
		w.F32(s.X)
		w.F32(s.Y)
		w.F32(s.Z)
		if hasW {
			w.F32(s.W)
		}
		w.F32(s.Time)
	}
}

func readJointSamples(r *byteio.Reader, hasW bool) []JointSample {
	n := r.U16()
	out := make([]JointSample, n)
	for i := range out {
		out[i].X = r.F32()
		out[i].Y = r.F32()
		out[i].Z = r.F32()
		if hasW {
			out[i].W = r.F32()
		}
		out[i].Time = r.F32()
	}
	return out
}

func writeAnimation(w *byteio.Writer, a *Animation) error {
	w.U16(uint16(len(a.Joints)))
	for _, j := range a.Joints {
		w.I16(j.ParentIndex)
		w.F32SliceRaw(j.InverseBindPose[:])
		writeJointSamples(w, j.Positions, false)
		writeJointSamples(w, j.Rotations, true)
		writeJointSamples(w, j.Scales, false)
	}
	w.F32(a.Duration)
	w.F32(a.FrameRate)
	return w.Err()
}

func readAnimation(r *byteio.Reader) (*Animation, error) {
	a := &Animation{}
	jointCount := r.U16()
	a.Joints = make([]Joint, jointCount)
	for i := range a.Joints {
		j := &a.Joints[i]
		j.ParentIndex = r.I16()
		copy(j.InverseBindPose[:], r.F32SliceRaw(16))
		j.Positions = readJointSamples(r, false)
		j.Rotations = readJointSamples(r, true)
		j.Scales = readJointSamples(r, false)
	}
	a.Duration = r.F32()
	a.FrameRate = r.F32()
	return a, r.Err()
}

func writeFont(w *byteio.Writer, f *Font) error {
	w.U32(uint32(len(f.Glyphs)))
	for _, g := range f.Glyphs {
		w.I8(g.Unicode)
		w.U16(g.Width)
		w.U16(g.Height)
		w.I16(g.Left)
		w.I16(g.Right)
		w.I16(g.Top)
		w.I16(g.Bottom)
		w.I16(g.OffsetX)
		w.I16(g.OffsetY)
		w.I16(g.AdvanceX)
		w.I16(g.Kern)
		w.I16(g.LeftBearing)
		w.Bytes(g.Pixels)
	}
	w.I16(f.Ascent)
	w.I16(f.Descent)
	w.I16(f.LineGap)
	return w.Err()
}

func readFont(r *byteio.Reader) (*Font, error) {
	f := &Font{}
	glyphCount := r.U32()
	f.Glyphs = make([]Glyph, glyphCount)
	for i := range f.Glyphs {
		g := &f.Glyphs[i]
		g.Unicode = r.I8()
		g.Width = r.U16()
		g.Height = r.U16()
		g.Left = r.I16()
		g.Right = r.I16()
		g.Top = r.I16()
		g.Bottom = r.I16()
		g.OffsetX = r.I16()
		g.OffsetY = r.I16()
		g.AdvanceX = r.I16()
		g.Kern = r.I16()
		g.LeftBearing = r.I16()
		g.Pixels = r.Bytes(int(g.Width) * int(g.Height))
	}
	f.Ascent = r.I16()
	f.Descent = r.I16()
	f.LineGap = r.I16()
	return f, r.Err()
}

// writeAudio treats Format as authoritative: the byte width of Samples
// must agree with it.
func writeAudio(w *byteio.Writer, a *Audio) error {
	bps := a.Format.BytesPerSample()
	if bps == 0 || int(a.Size) != len(a.Samples) {
		return fmt.Errorf("nbr: audio size=%d disagrees with len(samples)=%d", a.Size, len(a.Samples))
	}
	if len(a.Samples)%bps != 0 {
		return fmt.Errorf("nbr: audio format %d implies %d-byte samples, but size %d isn't a multiple of it", a.Format, bps, len(a.Samples))
	}
	w.U8(uint8(a.Format))
	w.U32(a.SampleRate)
	w.U8(a.Channels)
	w.U32(a.Size)
	w.Bytes(a.Samples)
	return w.Err()
}

func readAudio(r *byteio.Reader) (*Audio, error) {
	a := &Audio{}
	a.Format = AudioFormat(r.U8())
	a.SampleRate = r.U32()
	a.Channels = r.U8()
	a.Size = r.U32()
	a.Samples = r.Bytes(int(a.Size))
	if bps := a.Format.BytesPerSample(); bps == 0 || int(a.Size)%bps != 0 {
		return a, fmt.Errorf("nbr: audio format %d disagrees with declared size %d", a.Format, a.Size)
	}
	return a, r.Err()
}
