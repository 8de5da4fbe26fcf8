package atom

import (
	"errors"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// ErrOverflow is returned when a forge runs out of buffer space.
var ErrOverflow = errors.New("atom: forge buffer overflow")

// Property is one key/value pair of a forged object.
type Property struct {
	Key   lv2.URID
	Value Value
}

// Forge writes a sequence of events into a fixed buffer, the way a host
// fills an input port before calling run.
type Forge struct {
	urids URIDs
	buf   []byte
	n     int
	err   error
}

// NewForge creates a forge writing into buf.
func NewForge(urids URIDs, buf []byte) *Forge {
	return &Forge{urids: urids, buf: buf}
}

func (f *Forge) reserve(size int) []byte {
	if f.err != nil {
		return nil
	}
	if f.n+size > len(f.buf) {
		f.err = ErrOverflow
		return nil
	}
	b := f.buf[f.n : f.n+size]
	for i := range b {
		b[i] = 0
	}
	f.n += size
	return b
}

func (f *Forge) putHeader(b []byte, size uint32, typ lv2.URID) {
	order.PutUint32(b[0:4], size)
	order.PutUint32(b[4:8], uint32(typ))
}

// BeginSequence starts a new sequence at the beginning of the buffer.
func (f *Forge) BeginSequence() {
	f.n = 0
	f.err = nil
	b := f.reserve(HeaderSize + sequenceBodySize)
	if b != nil {
		f.putHeader(b, sequenceBodySize, f.urids.Sequence)
	}
}

// Event appends an event with an arbitrary atom body.
func (f *Forge) Event(frames int64, typ lv2.URID, body []byte) {
	b := f.reserve(eventHeaderSize + int(PadSize(uint32(len(body)))))
	if b == nil {
		return
	}
	order.PutUint64(b[0:8], uint64(frames))
	f.putHeader(b[8:], uint32(len(body)), typ)
	copy(b[eventHeaderSize:], body)
}

// MIDI appends a raw MIDI event.
func (f *Forge) MIDI(frames int64, msg ...byte) {
	f.Event(frames, f.urids.MIDIEvent, msg)
}

// Object appends an object event with the given properties.
func (f *Forge) Object(frames int64, otype lv2.URID, props ...Property) {
	size := objectBodySize
	for _, p := range props {
		size += propertyFullSize + int(PadSize(uint32(len(p.Value.Body))))
	}
	body := make([]byte, size)
	order.PutUint32(body[4:8], uint32(otype))
	pos := objectBodySize
	for _, p := range props {
		order.PutUint32(body[pos:], uint32(p.Key))
		f.putHeader(body[pos+propertyHdrSize:], uint32(len(p.Value.Body)), p.Value.Type)
		copy(body[pos+propertyFullSize:], p.Value.Body)
		pos += propertyFullSize + int(PadSize(uint32(len(p.Value.Body))))
	}
	f.Event(frames, f.urids.Object, body)
}

// PatchSet appends a patch:Set object addressing property.
func (f *Forge) PatchSet(frames int64, property lv2.URID, value Value) {
	f.Object(frames, f.urids.PatchSet,
		Property{Key: f.urids.PatchProperty, Value: f.urids.URIDValue(property)},
		Property{Key: f.urids.PatchValue, Value: value},
	)
}

// End finalizes the sequence header and returns the written bytes.
func (f *Forge) End() ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.n < HeaderSize {
		return nil, errors.New("atom: no sequence started")
	}
	order.PutUint32(f.buf[0:4], uint32(f.n-HeaderSize))
	return f.buf[:f.n], nil
}
