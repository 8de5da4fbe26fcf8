package atom

import "github.com/justyntemme/lv2go/pkg/lv2"

// Appender writes events into an output sequence port. Hosts hand the
// plugin an atom whose size field holds the capacity of the port; Reset
// claims that space and leaves an empty sequence behind.
type Appender struct {
	urids URIDs
	buf   []byte
	n     int
}

// NewAppender creates an appender for sequences typed with urids.Sequence.
func NewAppender(urids URIDs) *Appender {
	return &Appender{urids: urids}
}

// Reset claims buf (header included, sized by the host) and writes an
// empty sequence into it. It reports false when buf cannot hold one.
func (a *Appender) Reset(buf []byte) bool {
	a.buf = nil
	a.n = 0
	if len(buf) < HeaderSize+sequenceBodySize || a.urids.Sequence == 0 {
		return false
	}
	a.buf = buf
	order.PutUint32(buf[0:4], sequenceBodySize)
	order.PutUint32(buf[4:8], uint32(a.urids.Sequence))
	clear(buf[HeaderSize : HeaderSize+sequenceBodySize])
	a.n = HeaderSize + sequenceBodySize
	return true
}

// Append adds one event. It returns false when the port is full or not
// claimed.
func (a *Appender) Append(frames int64, typ lv2.URID, body []byte) bool {
	size := eventHeaderSize + int(PadSize(uint32(len(body))))
	if a.buf == nil || a.n+size > len(a.buf) {
		return false
	}
	b := a.buf[a.n : a.n+size]
	order.PutUint64(b[0:8], uint64(frames))
	order.PutUint32(b[8:12], uint32(len(body)))
	order.PutUint32(b[12:16], uint32(typ))
	copy(b[eventHeaderSize:], body)
	clear(b[eventHeaderSize+len(body):])
	a.n += size
	order.PutUint32(a.buf[0:4], uint32(a.n-HeaderSize))
	return true
}

// AppendMIDI adds a three-byte MIDI event.
func (a *Appender) AppendMIDI(frames int64, status, data1, data2 uint8) bool {
	msg := [3]byte{status, data1, data2}
	return a.Append(frames, a.urids.MIDIEvent, msg[:])
}

// Len returns the number of bytes written, header included.
func (a *Appender) Len() int {
	return a.n
}
