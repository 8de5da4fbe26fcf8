// Package atom reads and writes LV2 atoms: the size/type tagged values that
// hosts and plugins exchange through event sequence ports.
//
// All multi-byte fields use the host's native byte order and every atom
// body is padded to 8 bytes inside containers.
package atom

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// HeaderSize is the size of an atom header (size + type).
const HeaderSize = 8

var order = binary.NativeEndian

// Atom is an atom header. Size counts body bytes only.
type Atom struct {
	Size uint32
	Type lv2.URID
}

// View is an atom header plus its body bytes.
type View struct {
	Atom
	Body []byte
}

// PadSize rounds n up to the next multiple of 8.
func PadSize(n uint32) uint32 {
	return (n + 7) &^ 7
}

func readHeader(b []byte) (Atom, bool) {
	if len(b) < HeaderSize {
		return Atom{}, false
	}
	return Atom{
		Size: order.Uint32(b[0:4]),
		Type: lv2.URID(order.Uint32(b[4:8])),
	}, true
}

// Read decodes the atom at the start of b.
func Read(b []byte) (View, bool) {
	a, ok := readHeader(b)
	if !ok || uint64(HeaderSize)+uint64(a.Size) > uint64(len(b)) {
		return View{}, false
	}
	return View{Atom: a, Body: b[HeaderSize : HeaderSize+a.Size]}, true
}

// FromPointer returns the bytes of the atom (header included) that starts
// at p, as sized by its own header. p must point at a valid atom.
func FromPointer(p unsafe.Pointer) []byte {
	if p == nil {
		return nil
	}
	hdr := unsafe.Slice((*byte)(p), HeaderSize)
	size := order.Uint32(hdr[0:4])
	return unsafe.Slice((*byte)(p), HeaderSize+int(size))
}

// Uint32 returns the body as a 32-bit unsigned value (URID atoms).
func (v View) Uint32() (uint32, bool) {
	if len(v.Body) < 4 {
		return 0, false
	}
	return order.Uint32(v.Body), true
}

// Int32 returns the body as a 32-bit signed value (Int and Bool atoms).
func (v View) Int32() (int32, bool) {
	u, ok := v.Uint32()
	return int32(u), ok
}

// Int64 returns the body as a 64-bit signed value (Long atoms).
func (v View) Int64() (int64, bool) {
	if len(v.Body) < 8 {
		return 0, false
	}
	return int64(order.Uint64(v.Body)), true
}

// Float32 returns the body as a 32-bit float (Float atoms).
func (v View) Float32() (float32, bool) {
	u, ok := v.Uint32()
	return math.Float32frombits(u), ok
}

// Float64 returns the body as a 64-bit float (Double atoms).
func (v View) Float64() (float64, bool) {
	if len(v.Body) < 8 {
		return 0, false
	}
	return math.Float64frombits(order.Uint64(v.Body)), true
}
