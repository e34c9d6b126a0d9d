package importers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// ImportBitmapFont decodes an AngelCode BMFont .fnt description (text or
// binary) plus its referenced page images into an NBRFont, supplementing
// TrueType rasterization with the legacy pre-baked atlas path used by
// content that predates it.
func ImportBitmapFont(path string) (*nbr.Font, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}
	defer raw.Close()

	bf, err := bmfont.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: bmfont parse: %v", core.ErrUnsupportedFeature, err)
	}
	if len(bf.Pages) == 0 {
		return nil, fmt.Errorf("%w: %q declares no pages", core.ErrUnsupportedFeature, path)
	}

	dir := filepath.Dir(path)
	pages := make([]*nbr.Texture, len(bf.Pages))
	for i, p := range bf.Pages {
		tex, err := ImportImage(filepath.Join(dir, p.File))
		if err != nil {
			return nil, fmt.Errorf("bitmap font page %q: %w", p.File, err)
		}
		pages[i] = tex
	}

	out := &nbr.Font{
		Ascent:  int16(bf.Common.Base),
		Descent: int16(bf.Common.Base - bf.Common.LineHeight),
		LineGap: 0,
	}

	for _, c := range bf.Chars {
		if c.Page < 0 || c.Page >= len(pages) {
			core.LogWarn("bitmap font importer: char %d references missing page %d", c.ID, c.Page)
			continue
		}
		page := pages[c.Page]
		out.Glyphs = append(out.Glyphs, nbr.Glyph{
			Unicode:     int8(c.ID),
			Width:       uint16(c.Width),
			Height:      uint16(c.Height),
			OffsetX:     int16(c.XOffset),
			OffsetY:     int16(c.YOffset),
			AdvanceX:    int16(c.XAdvance),
			LeftBearing: int16(c.XOffset),
			Pixels:      cropPage(page, c.X, c.Y, c.Width, c.Height),
		})
	}
	if len(out.Glyphs) == 0 {
		return nil, fmt.Errorf("%w: %q has no characters", core.ErrUnsupportedFeature, path)
	}
	return out, nil
}

// cropPage extracts one glyph's single-channel coverage rectangle from its
// RGBA8 atlas page, taking each pixel's alpha byte, matching NBRFont's
// per-glyph pixel layout (one byte per pixel, no shared atlas at runtime).
func cropPage(page *nbr.Texture, x, y, w, h int) []byte {
	out := make([]byte, w*h)
	for row := 0; row < h; row++ {
		srcRowOff := ((y+row)*int(page.Width) + x) * 4
		dstOff := row * w
		for col := 0; col < w; col++ {
			srcOff := srcRowOff + col*4
			if srcOff < 0 || srcOff+4 > len(page.Pixels) {
				continue
			}
			out[dstOff+col] = page.Pixels[srcOff+3]
		}
	}
	return out
}
