package importers

import (
	"fmt"
	"image"
	"math"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/rangetable"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// assignedRunes bounds the glyph-range check against Unicode's own assigned
// codepoints, so asciiRange can be widened later without baking glyphs for
// codepoints no font could plausibly define.
var assignedRunes = rangetable.Assigned("6.2.0")

// TrueTypePixelSize is the rasterization scale used for TrueType/OpenType
// import: glyphs are baked once at this size and reused at runtime via
// distance-independent scaling of the quad, not re-rasterized.
const TrueTypePixelSize = 256

// asciiRange is the glyph set a TrueType import bakes: printable ASCII.
// The bitmap-font importer is not bound to it; it takes every character
// the .fnt file declares.
var asciiRange = [2]rune{32, 126}

// ImportTrueType decodes a .ttf/.otf file and rasterizes the printable
// ASCII range into an NBRFont.
func ImportTrueType(path string) (*nbr.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}

	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: sfnt parse: %v", core.ErrUnsupportedFeature, err)
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(TrueTypePixelSize << 6)
	metrics, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnsupportedFeature, err)
	}

	out := &nbr.Font{
		Ascent:  int16(metrics.Ascent.Round()),
		Descent: int16(-metrics.Descent.Round()),
		LineGap: int16(metrics.Height.Round() - metrics.Ascent.Round() - metrics.Descent.Round()),
	}

	for r := asciiRange[0]; r <= asciiRange[1]; r++ {
		if !unicode.Is(assignedRunes, r) {
			continue
		}
		glyph, err := rasterizeGlyph(f, &buf, r, ppem)
		if err != nil {
			core.LogWarn("font importer: skipping rune %d in %s: %v", r, path, err)
			continue
		}
		out.Glyphs = append(out.Glyphs, *glyph)
	}
	if len(out.Glyphs) == 0 {
		return nil, fmt.Errorf("%w: %q produced no glyphs", core.ErrUnsupportedFeature, path)
	}
	return out, nil
}

func rasterizeGlyph(f *sfnt.Font, buf *sfnt.Buffer, r rune, ppem fixed.Int26_6) (*nbr.Glyph, error) {
	idx, err := f.GlyphIndex(buf, r)
	if err != nil {
		return nil, err
	}
	if idx == 0 {
		return nil, fmt.Errorf("no glyph for rune %d", r)
	}

	segments, err := f.LoadGlyph(buf, idx, ppem, nil)
	if err != nil {
		return nil, err
	}

	advance, err := f.GlyphAdvance(buf, idx, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}

	bounds, _, err := f.GlyphBounds(buf, idx, ppem, font.HintingNone)
	if err != nil {
		return nil, err
	}

	width := bounds.Max.X.Ceil() - bounds.Min.X.Floor()
	height := bounds.Max.Y.Ceil() - bounds.Min.Y.Floor()
	if width <= 0 || height <= 0 {
		// whitespace: zero-area glyph, advance-only
		return &nbr.Glyph{Unicode: int8(r), AdvanceX: int16(advance.Round())}, nil
	}

	raster := vector.NewRasterizer(width, height)
	ox, oy := float32(bounds.Min.X.Floor()), float32(bounds.Min.Y.Floor())
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			raster.MoveTo(fx(seg.Args[0].X)-ox, fx(seg.Args[0].Y)-oy)
		case sfnt.SegmentOpLineTo:
			raster.LineTo(fx(seg.Args[0].X)-ox, fx(seg.Args[0].Y)-oy)
		case sfnt.SegmentOpQuadTo:
			raster.QuadTo(fx(seg.Args[0].X)-ox, fx(seg.Args[0].Y)-oy, fx(seg.Args[1].X)-ox, fx(seg.Args[1].Y)-oy)
		case sfnt.SegmentOpCubeTo:
			raster.CubeTo(
				fx(seg.Args[0].X)-ox, fx(seg.Args[0].Y)-oy,
				fx(seg.Args[1].X)-ox, fx(seg.Args[1].Y)-oy,
				fx(seg.Args[2].X)-ox, fx(seg.Args[2].Y)-oy,
			)
		}
	}

	alpha := image.NewAlpha(image.Rect(0, 0, width, height))
	raster.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})

	return &nbr.Glyph{
		Unicode:     int8(r),
		Width:       uint16(width),
		Height:      uint16(height),
		Left:        int16(bounds.Min.X.Floor()),
		Top:         int16(bounds.Min.Y.Floor()),
		Right:       int16(bounds.Max.X.Ceil()),
		Bottom:      int16(bounds.Max.Y.Ceil()),
		AdvanceX:    int16(advance.Round()),
		LeftBearing: int16(bounds.Min.X.Floor()),
		Pixels:      alpha.Pix,
	}, nil
}

func fx(v fixed.Int26_6) float32 {
	return float32(math.Round(float64(v) / 64.0 * 1000)) / 1000
}
