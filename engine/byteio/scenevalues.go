package byteio

import "github.com/spaghettifunk/nbrengine/engine/math"

// This file provides a small set of engine value type overloads (Transform,
// Camera, DirectionalLight, PointLight, SpotLight, FrameData,
// AudioSourceDesc, AudioListenerDesc, PhysicsBodyDesc, ColliderDesc). They
// back the engine example's ad-hoc .nscn scene files and are otherwise
// unused by the core NBR contract. Each overload is the authoritative
// round-trip definition for its type, mirroring the fields of the
// corresponding out-of-scope subsystem at a data-only level: no behavior
// is implemented here.

func WriteVec2(w *Writer, v math.Vec2) { w.F32(v.X); w.F32(v.Y) }
func ReadVec2(r *Reader) math.Vec2     { return math.Vec2{X: r.F32(), Y: r.F32()} }

func WriteVec3(w *Writer, v math.Vec3) { w.F32(v.X); w.F32(v.Y); w.F32(v.Z) }
func ReadVec3(r *Reader) math.Vec3     { return math.Vec3{X: r.F32(), Y: r.F32(), Z: r.F32()} }

func WriteVec4(w *Writer, v math.Vec4) {
	w.F32(v.X)
	w.F32(v.Y)
	w.F32(v.Z)
	w.F32(v.W)
}
func ReadVec4(r *Reader) math.Vec4 {
	return math.Vec4{X: r.F32(), Y: r.F32(), Z: r.F32(), W: r.F32()}
}

func WriteQuaternion(w *Writer, q math.Quaternion) { WriteVec4(w, math.Vec4(q)) }
func ReadQuaternion(r *Reader) math.Quaternion     { return math.Quaternion(ReadVec4(r)) }

func WriteMat4(w *Writer, m math.Mat4) { w.F32SliceRaw(m.Data[:]) }
func ReadMat4(r *Reader) math.Mat4 {
	var m math.Mat4
	copy(m.Data[:], r.F32SliceRaw(16))
	return m
}

// WriteTransform round-trips position/rotation/scale. Parent links are not
// serialized; .nscn files reconstruct hierarchy from sibling ordering in the
// example application, which is outside the core's scope.
func WriteTransform(w *Writer, t *math.Transform) {
	WriteVec3(w, t.Position)
	WriteQuaternion(w, t.Rotation)
	WriteVec3(w, t.Scale)
}

func ReadTransform(r *Reader) *math.Transform {
	t := &math.Transform{}
	t.Position = ReadVec3(r)
	t.Rotation = ReadQuaternion(r)
	t.Scale = ReadVec3(r)
	t.IsDirty = true
	return t
}

// CameraDesc is the data-only shape of a scene camera. The camera math
// itself (view/projection matrix derivation) is out of the core's scope.
type CameraDesc struct {
	Position math.Vec3
	Rotation math.Quaternion
	FovY     float32
	Near     float32
	Far      float32
}

func WriteCameraDesc(w *Writer, c CameraDesc) {
	WriteVec3(w, c.Position)
	WriteQuaternion(w, c.Rotation)
	w.F32(c.FovY)
	w.F32(c.Near)
	w.F32(c.Far)
}

func ReadCameraDesc(r *Reader) CameraDesc {
	return CameraDesc{
		Position: ReadVec3(r),
		Rotation: ReadQuaternion(r),
		FovY:     r.F32(),
		Near:     r.F32(),
		Far:      r.F32(),
	}
}

type DirectionalLightDesc struct {
	Direction math.Vec3
	Colour    math.Vec4
	Intensity float32
}

func WriteDirectionalLightDesc(w *Writer, l DirectionalLightDesc) {
	WriteVec3(w, l.Direction)
	WriteVec4(w, l.Colour)
	w.F32(l.Intensity)
}

func ReadDirectionalLightDesc(r *Reader) DirectionalLightDesc {
	return DirectionalLightDesc{Direction: ReadVec3(r), Colour: ReadVec4(r), Intensity: r.F32()}
}

type PointLightDesc struct {
	Position  math.Vec3
	Colour    math.Vec4
	Constant  float32
	Linear    float32
	Quadratic float32
}

func WritePointLightDesc(w *Writer, l PointLightDesc) {
	WriteVec3(w, l.Position)
	WriteVec4(w, l.Colour)
	w.F32(l.Constant)
	w.F32(l.Linear)
	w.F32(l.Quadratic)
}

func ReadPointLightDesc(r *Reader) PointLightDesc {
	return PointLightDesc{
		Position:  ReadVec3(r),
		Colour:    ReadVec4(r),
		Constant:  r.F32(),
		Linear:    r.F32(),
		Quadratic: r.F32(),
	}
}

type SpotLightDesc struct {
	Position    math.Vec3
	Direction   math.Vec3
	Colour      math.Vec4
	CutOff      float32
	OuterCutOff float32
}

func WriteSpotLightDesc(w *Writer, l SpotLightDesc) {
	WriteVec3(w, l.Position)
	WriteVec3(w, l.Direction)
	WriteVec4(w, l.Colour)
	w.F32(l.CutOff)
	w.F32(l.OuterCutOff)
}

func ReadSpotLightDesc(r *Reader) SpotLightDesc {
	return SpotLightDesc{
		Position:    ReadVec3(r),
		Direction:   ReadVec3(r),
		Colour:      ReadVec4(r),
		CutOff:      r.F32(),
		OuterCutOff: r.F32(),
	}
}

// FrameData carries the per-frame scalars an .nscn replay driver would
// want to restore.
type FrameData struct {
	DeltaTime float64
	FrameNum  uint64
}

func WriteFrameData(w *Writer, f FrameData) {
	w.F64(f.DeltaTime)
	w.U64(f.FrameNum)
}

func ReadFrameData(r *Reader) FrameData {
	return FrameData{DeltaTime: r.F64(), FrameNum: r.U64()}
}

type AudioSourceDesc struct {
	Position    math.Vec3
	Gain        float32
	Pitch       float32
	Loop        bool
	AudioBuffer string
}

func WriteAudioSourceDesc(w *Writer, a AudioSourceDesc) {
	WriteVec3(w, a.Position)
	w.F32(a.Gain)
	w.F32(a.Pitch)
	w.Bool(a.Loop)
	w.StringU16(a.AudioBuffer)
}

func ReadAudioSourceDesc(r *Reader) AudioSourceDesc {
	return AudioSourceDesc{
		Position:    ReadVec3(r),
		Gain:        r.F32(),
		Pitch:       r.F32(),
		Loop:        r.Bool(),
		AudioBuffer: r.StringU16(),
	}
}

type AudioListenerDesc struct {
	Position math.Vec3
	Forward  math.Vec3
	Up       math.Vec3
	Gain     float32
}

func WriteAudioListenerDesc(w *Writer, a AudioListenerDesc) {
	WriteVec3(w, a.Position)
	WriteVec3(w, a.Forward)
	WriteVec3(w, a.Up)
	w.F32(a.Gain)
}

func ReadAudioListenerDesc(r *Reader) AudioListenerDesc {
	return AudioListenerDesc{
		Position: ReadVec3(r),
		Forward:  ReadVec3(r),
		Up:       ReadVec3(r),
		Gain:     r.F32(),
	}
}

type PhysicsBodyDesc struct {
	Mass         float32
	Transform    math.Vec3
	IsKinematic  bool
	ColliderName string
}

func WritePhysicsBodyDesc(w *Writer, p PhysicsBodyDesc) {
	w.F32(p.Mass)
	WriteVec3(w, p.Transform)
	w.Bool(p.IsKinematic)
	w.StringU16(p.ColliderName)
}

func ReadPhysicsBodyDesc(r *Reader) PhysicsBodyDesc {
	return PhysicsBodyDesc{
		Mass:         r.F32(),
		Transform:    ReadVec3(r),
		IsKinematic:  r.Bool(),
		ColliderName: r.StringU16(),
	}
}

type ColliderShape uint8

const (
	ColliderShapeBox ColliderShape = iota
	ColliderShapeSphere
	ColliderShapeCapsule
)

type ColliderDesc struct {
	Shape  ColliderShape
	Extent math.Vec3
}

func WriteColliderDesc(w *Writer, c ColliderDesc) {
	w.U8(uint8(c.Shape))
	WriteVec3(w, c.Extent)
}

func ReadColliderDesc(r *Reader) ColliderDesc {
	return ColliderDesc{Shape: ColliderShape(r.U8()), Extent: ReadVec3(r)}
}
