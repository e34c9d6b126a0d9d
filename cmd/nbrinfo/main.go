// Command nbrinfo prints an .nbr* file's header and payload summary,
// exercising engine/nbr standalone without touching a graphics backend.
package main

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: nbrinfo <path.nbr*>")
		os.Exit(2)
	}
	path := os.Args[1]

	f, err := nbr.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nbrinfo: %v\n", err)
		os.Exit(1)
	}
	defer nbr.Unload(f)

	fmt.Printf("path:      %s\n", path)
	fmt.Printf("type:      %s\n", f.Type)
	fmt.Printf("summary:   %s\n", summarize(f))
}

func summarize(f *nbr.File) string {
	switch p := f.Payload.(type) {
	case *nbr.Texture:
		return fmt.Sprintf("%dx%d, %d channel(s), format %v, %d byte(s) of pixels", p.Width, p.Height, p.Channels, p.Format, len(p.Pixels))
	case *nbr.Cubemap:
		return fmt.Sprintf("%dx%d, %d face(s), format %v", p.Width, p.Height, p.FacesCount, p.Format)
	case *nbr.Shader:
		return fmt.Sprintf("compute=%t vertex=%t pixel=%t", p.ComputeSource != "", p.VertexSource != "", p.PixelSource != "")
	case *nbr.Material:
		return fmt.Sprintf("color=%v metallic=%.2f roughness=%.2f", p.Color, p.Metallic, p.Roughness)
	case *nbr.Mesh:
		return fmt.Sprintf("%d vertex float(s), %d index(es), components=%08b", p.VerticesCount, p.IndicesCount, p.VertexComponentBits)
	case *nbr.Model:
		return fmt.Sprintf("%d mesh(es), %d material(s), %d embedded texture(s)", len(p.Meshes), len(p.Materials), len(p.Textures))
	case *nbr.Animation:
		return fmt.Sprintf("%d joint(s), duration=%.2fs, %.0f fps", len(p.Joints), p.Duration, p.FrameRate)
	case *nbr.Font:
		return fmt.Sprintf("%d glyph(s), ascent=%d descent=%d", len(p.Glyphs), p.Ascent, p.Descent)
	case *nbr.Audio:
		return fmt.Sprintf("format=%v sampleRate=%d channels=%d %d byte(s)", p.Format, p.SampleRate, p.Channels, p.Size)
	default:
		return "(unrecognized payload)"
	}
}
