// Package resources implements the runtime NBR importers and the grouped
// resource manager: named registries of backend resources, hot-reloadable
// in place, with identifiers stable across a group's lifetime.
package resources

import "github.com/spaghettifunk/nbrengine/engine/nbr"

// ID is a value quadruple identifying one resource within one group:
// type, slot index, group id, and a generation counter. Generation is
// the owning group's generation counter at push time, not a
// per-slot counter: family arrays only grow for the life of a group (push
// appends, clear/destroy operate on the whole group), so the only way an
// ID can go stale is its group being destroyed and the group id recycled
// by the free list, which Generation catches.
type ID struct {
	Type       nbr.ResourceType
	Slot       uint32
	Group      uint32
	Generation uint16
}

// Invalid is the group's seeded "invalid" sentinel id, returned by GetID
// when a name is unknown instead of an error.
var Invalid = ID{Slot: ^uint32(0)}

// IsInvalid reports whether id is the Invalid sentinel (all-ones Slot). The
// zero-value ID has Slot 0 and is not treated as invalid.
func (id ID) IsInvalid() bool {
	return id.Slot == ^uint32(0)
}
