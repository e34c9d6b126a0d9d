package byteio

import stdmath "math"

// Thin wrappers over the standard math package's bit-reinterpretation
// helpers, named to avoid colliding with this module's own engine/math
// package at call sites that import both.
func mathFloat32bits(f float32) uint32     { return stdmath.Float32bits(f) }
func mathFloat32frombits(b uint32) float32 { return stdmath.Float32frombits(b) }
func mathFloat64bits(f float64) uint64     { return stdmath.Float64bits(f) }
func mathFloat64frombits(b uint64) float64 { return stdmath.Float64frombits(b) }
