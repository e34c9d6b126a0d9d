package resources

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/nbrengine/engine/core"
	"github.com/spaghettifunk/nbrengine/engine/nbr"
	"github.com/spaghettifunk/nbrengine/engine/watch"
)

// reloadableTypes lists the families HandleReload updates in place: only
// texture, cubemap, and shader expose a backend XUpdate that preserves
// the handle. Mesh, font, model, animation, material and audio are not
// reloaded.
var reloadableTypes = map[nbr.ResourceType]bool{
	nbr.ResourceTypeTexture: true,
	nbr.ResourceTypeCubemap: true,
	nbr.ResourceTypeShader:  true,
}

// HandleReload implements the hot-reload protocol: ignore anything but a
// modification, resolve the changed path's owning group by its parent
// directory, resolve its stem against that group's name table, and for a
// reloadable family, reload the NBR file and push it through the backend's
// Update call so the resource id and handle stay exactly as they were.
// Model reload is out of scope: rebuilding one requires re-deriving every
// mesh, material, and texture id it produced, which this protocol does
// not attempt.
func (m *Manager) HandleReload(ev watch.Event) {
	if ev.Status != watch.StatusModified {
		return
	}

	g := m.groupOwning(ev.Path)
	if g == nil {
		return
	}

	stem := strings.TrimSuffix(filepath.Base(ev.Path), filepath.Ext(ev.Path))
	id := g.GetID(stem)
	if id.IsInvalid() {
		return
	}
	if !reloadableTypes[id.Type] {
		core.LogDebug("resources: ignoring reload of %s (type %s has no in-place update)", ev.Path, id.Type)
		return
	}

	f, err := nbr.LoadExpect(ev.Path, id.Type)
	if err != nil {
		core.LogWarn("resources: reload of %s failed to load: %v", ev.Path, err)
		return
	}
	defer nbr.Unload(f)

	switch id.Type {
	case nbr.ResourceTypeTexture:
		m.reloadTexture(g, id, f.Payload.(*nbr.Texture))
	case nbr.ResourceTypeCubemap:
		m.reloadCubemap(g, id, f.Payload.(*nbr.Cubemap))
	case nbr.ResourceTypeShader:
		m.reloadShader(g, id, f.Payload.(*nbr.Shader))
	}
}

func (m *Manager) reloadTexture(g *Group, id ID, t *nbr.Texture) {
	entry := &g.Textures[id.Slot]
	desc := textureDescFromNBR(t)
	if err := m.backend.TextureUpdate(entry.Handle, desc); err != nil {
		core.LogError("resources: texture reload of slot %d failed: %v", id.Slot, err)
		return
	}
	entry.Width, entry.Height, entry.Channels, entry.Format = desc.Width, desc.Height, desc.Channels, nbr.PixelFormat(desc.Format)
}

func (m *Manager) reloadCubemap(g *Group, id ID, c *nbr.Cubemap) {
	entry := &g.Cubemaps[id.Slot]
	if err := m.backend.CubemapUpdate(entry.Handle, cubemapDescFromNBR(c)); err != nil {
		core.LogError("resources: cubemap reload of slot %d failed: %v", id.Slot, err)
	}
}

func (m *Manager) reloadShader(g *Group, id ID, s *nbr.Shader) {
	entry := &g.Shaders[id.Slot]
	if err := m.backend.ShaderUpdate(entry.Handle, shaderDescFromNBR(s)); err != nil {
		core.LogError("resources: shader reload of slot %d failed: %v", id.Slot, err)
	}
}

// groupOwning finds the group whose parent directory contains path. A
// single Watcher is shared across every group, so an event carries no
// group tag of its own: the parent-directory prefix is the only thing
// that distinguishes one group's files from another's.
func (m *Manager) groupOwning(path string) *Group {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, g := range m.groups {
		if g.ParentDir == "" {
			continue
		}
		dir, err := filepath.Abs(g.ParentDir)
		if err != nil {
			dir = g.ParentDir
		}
		if rel, err := filepath.Rel(dir, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return g
		}
	}
	return nil
}

// PollReloads drains the watcher's buffered events once, dispatching each
// through HandleReload. The host calls this once per frame, keeping the
// core single-threaded and cooperative; there is no suspension point
// inside the callback.
func (m *Manager) PollReloads() {
	if m.watcher == nil {
		return
	}
	m.watcher.Poll(func(ev watch.Event) {
		m.HandleReload(ev)
	})
}
