package nbr

import (
	"fmt"
	"path/filepath"

	"github.com/spaghettifunk/nbrengine/engine/byteio"
	"github.com/spaghettifunk/nbrengine/engine/core"
)

// File is the in-memory decoded container. Payload holds one of
// *Texture, *Cubemap, *Shader, *Material, *Mesh, *Model, *Animation,
// *Font, *Audio depending on Type. A File with Valid == false carries no
// payload and must not be dereferenced.
type File struct {
	Type    ResourceType
	Payload interface{}
	Valid   bool
}

// ValidExtension is the pure classifier the resource manager runs before
// opening a file.
func ValidExtension(path string) bool {
	_, ok := extensionToType[filepath.Ext(path)]
	return ok
}

func writeHeader(w *byteio.Writer, t ResourceType) {
	w.U8(HeaderSentinel)
	w.I16(CurrentMajorVersion)
	w.I16(CurrentMinorVersion)
	w.U16(uint16(t))
}

func readHeader(r *byteio.Reader) (Header, error) {
	h := Header{}
	h.Identifier = r.U8()
	h.MajorVersion = r.I16()
	h.MinorVersion = r.I16()
	h.ResourceType = r.U16()
	return h, r.Err()
}

// validateHeader checks, in order, the sentinel byte, the version, and
// then type-tag-vs-extension agreement. Extension/open is the caller's
// responsibility.
func validateHeader(h Header, expectExt string) error {
	if h.Identifier != HeaderSentinel {
		return fmt.Errorf("%w: sentinel byte %d != %d", core.ErrCorruptContainer, h.Identifier, HeaderSentinel)
	}
	if h.MajorVersion != CurrentMajorVersion || h.MinorVersion != CurrentMinorVersion {
		return fmt.Errorf("%w: version %d.%d != %d.%d", core.ErrCorruptContainer, h.MajorVersion, h.MinorVersion, CurrentMajorVersion, CurrentMinorVersion)
	}
	extType, ok := extensionToType[expectExt]
	if !ok {
		return fmt.Errorf("%w: unrecognized extension %q", core.ErrCorruptContainer, expectExt)
	}
	if ResourceType(h.ResourceType) != extType {
		return fmt.Errorf("%w: header type %d disagrees with extension %q (wants %d)", core.ErrCorruptContainer, h.ResourceType, expectExt, extType)
	}
	return nil
}

// Save opens path truncated for writing, writes the header for payload's
// concrete type, writes the payload, then closes the file on every exit
// path. The extension of path is not inspected; callers should construct it
// from the payload's ResourceType().Extension().
func Save(path string, payload interface{}) error {
	t, writeFn, err := dispatchWriter(payload)
	if err != nil {
		return err
	}

	f, err := byteio.Open(path, byteio.ModeWrite|byteio.ModeTruncate)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	w := byteio.NewWriter(f)
	writeHeader(w, t)
	if err := writeFn(w); err != nil {
		return err
	}
	return w.Err()
}

// Load opens path, reads and validates the header, dispatches to the
// per-type payload reader, and closes the file on every return path. On
// validation failure it returns a File with Valid == false and no partial
// allocation is retained (the partially-read payload, if any, is discarded
// with the function's return).
func Load(path string) (*File, error) {
	if !ValidExtension(path) {
		return &File{}, fmt.Errorf("%w: unrecognized extension for %q", core.ErrBadInputPath, path)
	}

	f, err := byteio.Open(path, byteio.ModeRead)
	if err != nil {
		return &File{}, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	r := byteio.NewReader(f)
	h, err := readHeader(r)
	if err != nil {
		return &File{}, fmt.Errorf("%w: %v", core.ErrCorruptContainer, err)
	}

	ext := filepath.Ext(path)
	if err := validateHeader(h, ext); err != nil {
		return &File{}, err
	}

	payload, err := dispatchReader(ResourceType(h.ResourceType), r)
	if err != nil {
		return &File{}, err
	}
	if err := r.Err(); err != nil {
		return &File{}, fmt.Errorf("%w: %v", core.ErrCorruptContainer, err)
	}

	return &File{Type: ResourceType(h.ResourceType), Payload: payload, Valid: true}, nil
}

// LoadExpect is Load plus a caller-supplied expected-type check.
func LoadExpect(path string, want ResourceType) (*File, error) {
	f, err := Load(path)
	if err != nil {
		return f, err
	}
	if f.Type != want {
		return &File{}, fmt.Errorf("%w: loaded type %s, expected %s", core.ErrCorruptContainer, f.Type, want)
	}
	return f, nil
}

// Unload recursively frees the per-type heap-allocated internals inside f
// (pixel arrays, source strings, per-mesh arrays, embedded textures, glyph
// pixels, samples). The GPU objects derived from f, if any, are untouched:
// they are owned by whatever runtime importer consumed f.
func Unload(f *File) {
	if f == nil {
		return
	}
	switch p := f.Payload.(type) {
	case *Texture:
		p.Pixels = nil
	case *Cubemap:
		p.Faces = nil
	case *Shader:
		p.ComputeSource, p.VertexSource, p.PixelSource = "", "", ""
	case *Mesh:
		p.Vertices, p.Indices = nil, nil
	case *Model:
		for i := range p.Meshes {
			p.Meshes[i].Vertices, p.Meshes[i].Indices = nil, nil
		}
		for i := range p.Textures {
			p.Textures[i].Pixels = nil
		}
		p.Meshes, p.Materials, p.Textures = nil, nil, nil
	case *Animation:
		for i := range p.Joints {
			p.Joints[i].Positions, p.Joints[i].Rotations, p.Joints[i].Scales = nil, nil, nil
		}
		p.Joints = nil
	case *Font:
		for i := range p.Glyphs {
			p.Glyphs[i].Pixels = nil
		}
		p.Glyphs = nil
	case *Audio:
		p.Samples = nil
	}
	f.Payload = nil
	f.Valid = false
}

func dispatchWriter(payload interface{}) (ResourceType, func(*byteio.Writer) error, error) {
	switch p := payload.(type) {
	case *Texture:
		return ResourceTypeTexture, func(w *byteio.Writer) error { return writeTexturePixels(w, p) }, nil
	case *Cubemap:
		return ResourceTypeCubemap, func(w *byteio.Writer) error { return writeCubemap(w, p) }, nil
	case *Shader:
		return ResourceTypeShader, func(w *byteio.Writer) error { return writeShader(w, p) }, nil
	case *Material:
		return ResourceTypeMaterial, func(w *byteio.Writer) error { return writeMaterial(w, p) }, nil
	case *Mesh:
		return ResourceTypeMesh, func(w *byteio.Writer) error { return writeMesh(w, p) }, nil
	case *Model:
		return ResourceTypeModel, func(w *byteio.Writer) error { return writeModel(w, p) }, nil
	case *Animation:
		return ResourceTypeAnimation, func(w *byteio.Writer) error { return writeAnimation(w, p) }, nil
	case *Font:
		return ResourceTypeFont, func(w *byteio.Writer) error { return writeFont(w, p) }, nil
	case *Audio:
		return ResourceTypeAudio, func(w *byteio.Writer) error { return writeAudio(w, p) }, nil
	default:
		return 0, nil, fmt.Errorf("nbr: Save: unsupported payload type %T", payload)
	}
}

func dispatchReader(t ResourceType, r *byteio.Reader) (interface{}, error) {
	switch t {
	case ResourceTypeTexture:
		return readTexturePixels(r)
	case ResourceTypeCubemap:
		return readCubemap(r)
	case ResourceTypeShader:
		return readShader(r)
	case ResourceTypeMaterial:
		return readMaterial(r)
	case ResourceTypeMesh:
		return readMesh(r)
	case ResourceTypeModel:
		return readModel(r)
	case ResourceTypeAnimation:
		return readAnimation(r)
	case ResourceTypeFont:
		return readFont(r)
	case ResourceTypeAudio:
		return readAudio(r)
	default:
		return nil, fmt.Errorf("%w: unknown resource type %d", core.ErrCorruptContainer, t)
	}
}
