package core

import "fmt"

// FreeList hands out dense slot indices with per-slot generation counters,
// so a released slot can be reused without a stale caller mistaking the new
// occupant for the old one. It is an explicit, instantiable collaborator
// rather than a package-level singleton, so two independent managers don't
// have to share one global slice.
type FreeList struct {
	owners      []interface{}
	generations []uint16
	free        []uint32
}

// NewFreeList creates an empty free list.
func NewFreeList() *FreeList {
	return &FreeList{}
}

// Acquire reserves a slot for owner and returns its index and current
// generation. A released slot is reused before the list grows.
func (fl *FreeList) Acquire(owner interface{}) (slot uint32, generation uint16) {
	if n := len(fl.free); n > 0 {
		slot = fl.free[n-1]
		fl.free = fl.free[:n-1]
		fl.owners[slot] = owner
		return slot, fl.generations[slot]
	}
	slot = uint32(len(fl.owners))
	fl.owners = append(fl.owners, owner)
	fl.generations = append(fl.generations, 0)
	return slot, 0
}

// Release frees slot, bumping its generation so prior identifiers referring
// to it become stale.
func (fl *FreeList) Release(slot uint32) error {
	if int(slot) >= len(fl.owners) {
		return fmt.Errorf("identifier: release of out-of-range slot %d (len=%d)", slot, len(fl.owners))
	}
	fl.owners[slot] = nil
	fl.generations[slot]++
	fl.free = append(fl.free, slot)
	return nil
}

// Valid reports whether slot/generation still refers to a live entry.
func (fl *FreeList) Valid(slot uint32, generation uint16) bool {
	if int(slot) >= len(fl.owners) {
		return false
	}
	return fl.owners[slot] != nil && fl.generations[slot] == generation
}

// Owner returns the value passed to Acquire for slot, or nil if stale.
func (fl *FreeList) Owner(slot uint32, generation uint16) interface{} {
	if !fl.Valid(slot, generation) {
		return nil
	}
	return fl.owners[slot]
}
