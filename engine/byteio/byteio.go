// Package byteio implements strongly-typed, little-endian, tightly-packed
// binary serialization over a single file handle. Every Write* has a
// matching Read*; the pair is the sole definition of on-disk layout for
// the corresponding Go type.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// OpenMode is a bitmask of file-open modes: read, write, binary, append,
// truncate, at-end, read+write. "binary" has no effect on POSIX systems
// (there's no distinct text mode) and exists only to keep the bitmask's
// meaning self-documenting at call sites.
type OpenMode uint8

const (
	ModeRead OpenMode = 1 << iota
	ModeWrite
	ModeBinary
	ModeAppend
	ModeTruncate
	ModeAtEnd
	ModeReadWrite
)

// Open opens path under the given mode bitmask, translating it into the
// stdlib os.O_* flags. The returned file must be closed on every exit path;
// callers typically `defer f.Close()` immediately.
func Open(path string, mode OpenMode) (*os.File, error) {
	flag := 0
	switch {
	case mode&ModeReadWrite != 0:
		flag |= os.O_RDWR
	case mode&ModeWrite != 0:
		flag |= os.O_WRONLY
	case mode&ModeRead != 0:
		flag |= os.O_RDONLY
	default:
		return nil, fmt.Errorf("byteio: Open(%q): mode must include at least one of Read/Write/ReadWrite", path)
	}
	if mode&ModeWrite != 0 || mode&ModeReadWrite != 0 {
		flag |= os.O_CREATE
	}
	if mode&ModeTruncate != 0 {
		flag |= os.O_TRUNC
	}
	if mode&ModeAppend != 0 {
		flag |= os.O_APPEND
	}

	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, err
	}
	if mode&ModeAtEnd != 0 {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Writer writes little-endian, tightly-packed scalar and slice data to an
// underlying io.Writer. Every method returns the first error encountered so
// callers can write a whole structure and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Err returns the first error encountered by any Write call.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(p)
}

func (w *Writer) U8(v uint8)   { w.write([]byte{v}) }
func (w *Writer) I8(v int8)    { w.write([]byte{byte(v)}) }
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

func (w *Writer) U16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.write(b[:])
}

func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

func (w *Writer) U32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.write(b[:])
}

func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

func (w *Writer) U64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.write(b[:])
}

func (w *Writer) I64(v int64) { w.U64(uint64(v)) }

func (w *Writer) F32(v float32) { w.U32(mathFloat32bits(v)) }
func (w *Writer) F64(v float64) { w.U64(mathFloat64bits(v)) }

// Bytes writes raw bytes with no length prefix; the caller is responsible
// for the length being implied by a prior field or the format definition.
func (w *Writer) Bytes(p []byte) { w.write(p) }

// U32SliceRaw writes every uint32 in v with no length prefix.
func (w *Writer) U32SliceRaw(v []uint32) {
	for _, x := range v {
		w.U32(x)
	}
}

func (w *Writer) F32SliceRaw(v []float32) {
	for _, x := range v {
		w.F32(x)
	}
}

// StringU16 writes a u16-length-prefixed raw byte string.
func (w *Writer) StringU16(s string) {
	w.U16(uint16(len(s)))
	w.write([]byte(s))
}

// NulTerminatedU16Len writes a u16 length equal to len(s)+1 followed by s
// and a trailing NUL byte, the legacy NBRShader source encoding.
func (w *Writer) NulTerminatedU16Len(s string) {
	w.U16(uint16(len(s) + 1))
	w.write([]byte(s))
	w.U8(0)
}

// NulTerminatedU32Len is NulTerminatedU16Len with a u32 length prefix, wide
// enough that no real shader source could overflow it.
func (w *Writer) NulTerminatedU32Len(s string) {
	w.U32(uint32(len(s) + 1))
	w.write([]byte(s))
	w.U8(0)
}

// Reader reads little-endian, tightly-packed scalar and slice data from an
// underlying io.Reader. Reading past end-of-file sets Err(); callers must
// check it where ambiguity exists (headers, variable-length payloads).
type Reader struct {
	r   io.Reader
	err error
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (r *Reader) Err() error { return r.err }

func (r *Reader) read(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = err
	}
	return buf
}

func (r *Reader) U8() uint8 { return r.read(1)[0] }
func (r *Reader) I8() int8  { return int8(r.read(1)[0]) }
func (r *Reader) Bool() bool {
	return r.U8() != 0
}

func (r *Reader) U16() uint16 { return binary.LittleEndian.Uint16(r.read(2)) }
func (r *Reader) I16() int16  { return int16(r.U16()) }
func (r *Reader) U32() uint32 { return binary.LittleEndian.Uint32(r.read(4)) }
func (r *Reader) I32() int32  { return int32(r.U32()) }
func (r *Reader) U64() uint64 { return binary.LittleEndian.Uint64(r.read(8)) }
func (r *Reader) I64() int64  { return int64(r.U64()) }

func (r *Reader) F32() float32 { return mathFloat32frombits(r.U32()) }
func (r *Reader) F64() float64 { return mathFloat64frombits(r.U64()) }

// Bytes reads exactly n raw bytes.
func (r *Reader) Bytes(n int) []byte { return r.read(n) }

func (r *Reader) U32SliceRaw(count int) []uint32 {
	out := make([]uint32, count)
	for i := range out {
		out[i] = r.U32()
	}
	return out
}

func (r *Reader) F32SliceRaw(count int) []float32 {
	out := make([]float32, count)
	for i := range out {
		out[i] = r.F32()
	}
	return out
}

// StringU16 reads a u16-length-prefixed raw byte string.
func (r *Reader) StringU16() string {
	n := int(r.U16())
	return string(r.read(n))
}

// NulTerminatedU16Len reads a u16 length L followed by L bytes, the last of
// which is a NUL terminator that is stripped from the returned string.
func (r *Reader) NulTerminatedU16Len() string {
	n := int(r.U16())
	if n == 0 {
		return ""
	}
	b := r.read(n)
	return string(b[:len(b)-1])
}

func (r *Reader) NulTerminatedU32Len() string {
	n := int(r.U32())
	if n == 0 {
		return ""
	}
	b := r.read(n)
	return string(b[:len(b)-1])
}
