package importers

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
)

// ImportCubemapDir decodes the six face images found directly under dir
// (non-recursive), ordered by directory traversal (lexical filename order),
// into an NBRCubemap. Missing or extra faces is an error.
func ImportCubemapDir(dir string) (*nbr.Cubemap, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrBadInputPath, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if _, ok := imageDecoders[ext]; ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	const facesCount = 6
	if len(names) != facesCount {
		return nil, fmt.Errorf("%w: cubemap directory %q has %d face images, want exactly %d", core.ErrUnsupportedFeature, dir, len(names), facesCount)
	}

	cm := &nbr.Cubemap{FacesCount: facesCount}
	for i, name := range names {
		tex, err := ImportImage(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if i == 0 {
			cm.Width, cm.Height, cm.Channels, cm.Format = tex.Width, tex.Height, tex.Channels, tex.Format
		} else if tex.Width != cm.Width || tex.Height != cm.Height {
			return nil, fmt.Errorf("%w: cubemap face %q is %dx%d, expected %dx%d", core.ErrUnsupportedFeature, name, tex.Width, tex.Height, cm.Width, cm.Height)
		}
		cm.Faces = append(cm.Faces, tex.Pixels)
	}
	return cm, nil
}
