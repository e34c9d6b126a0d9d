// Package importers implements offline, engine-runtime-free converters
// from third-party asset formats into NBR payloads.
package importers

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// imageDecoders maps a recognized source extension to its stdlib/x/image
// decoder. TGA/PSD/HDR/PIC/PPM/PGM have no pure-Go decoder in the pack's
// dependency surface (golang.org/x/image); ImportImage reports
// ErrUnsupportedFeature for those rather than silently mis-decoding them.
var imageDecoders = map[string]func(r io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif": func(r io.Reader) (image.Image, error) { return gif.Decode(r) },
	".bmp": bmp.Decode,
}

// ImportImage decodes path to 4-channel 8-bit RGBA and produces an
// NBRTexture.
func ImportImage(path string) (*nbr.Texture, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := imageDecoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: image importer cannot decode %q", core.ErrUnsupportedFeature, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		core.LogError("image importer: failed to decode %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedFeature, err)
	}

	return imageToTexture(img), nil
}

// decodeImageBytes decodes an in-memory PNG/JPEG/GIF/BMP image, for glTF
// textures embedded in a .glb buffer view rather than referenced by path.
func decodeImageBytes(data []byte) (*nbr.Texture, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedFeature, err)
	}
	_ = format
	return imageToTexture(img), nil
}

// imageToTexture flattens any image.Image into tightly-packed RGBA8 pixels,
// top-left origin, row-major: the canonical NBRTexture layout.
func imageToTexture(img image.Image) *nbr.Texture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &nbr.Texture{
		Width:    uint32(width),
		Height:   uint32(height),
		Channels: 4,
		Format:   nbr.PixelFormatRGBA8,
		Pixels:   rgba.Pix,
	}
}
