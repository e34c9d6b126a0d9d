// Command nbrc converts a third-party asset on disk into its .nbr* form.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
	"github.com/spaghettifunk/nbrengine/engine/nbr/importers"
)

func main() {
	kind := flag.String("kind", "", "asset kind: texture, cubemap, model, animation, ttf, bmfont, audio (default: infer from input extension)")
	in := flag.String("in", "", "input path (file, or directory for cubemap)")
	out := flag.String("out", "", "output .nbr* path")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: nbrc -in <path> -out <path.nbr*> [-kind <kind>]")
		os.Exit(2)
	}

	k := *kind
	if k == "" {
		k = inferKind(*in)
	}

	clock := core.NewClock()
	clock.Start()
	payload, err := importKind(k, *in)
	clock.Update()
	if err != nil {
		core.LogFatal("nbrc: %v", err)
	}
	core.LogDebug("nbrc: imported %s as %s in %.2fms", *in, k, clock.Elapsed()/1e6)

	if err := nbr.Save(*out, payload); err != nil {
		core.LogFatal("nbrc: save %s: %v", *out, err)
	}
	fmt.Printf("wrote %s\n", *out)
}

func inferKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return "model"
	case ".ttf", ".otf":
		return "ttf"
	case ".fnt":
		return "bmfont"
	case ".wav", ".mp3", ".ogg":
		return "audio"
	default:
		return "texture"
	}
}

func importKind(kind, path string) (interface{}, error) {
	switch kind {
	case "texture":
		return importers.ImportImage(path)
	case "cubemap":
		return importers.ImportCubemapDir(path)
	case "model":
		return importers.ImportModel(path)
	case "animation":
		return importers.ImportAnimation(path)
	case "ttf":
		return importers.ImportTrueType(path)
	case "bmfont":
		return importers.ImportBitmapFont(path)
	case "audio":
		return importers.ImportAudio(path)
	default:
		return nil, fmt.Errorf("unknown -kind %q", kind)
	}
}
