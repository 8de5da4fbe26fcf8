package atom

// sequenceBodySize is the unit + pad header that follows a sequence's
// atom header.
const sequenceBodySize = 8

// eventHeaderSize is the frame time + body atom header of one event.
const eventHeaderSize = 8 + HeaderSize

// Event is one time-stamped entry of a sequence.
type Event struct {
	Frames int64
	Body   View
}

// Iterator walks the events of a sequence in storage order without
// allocating. The zero value is an empty iterator; Reset starts a new walk.
type Iterator struct {
	buf       []byte
	pos       int
	ev        Event
	truncated bool
}

// Reset points the iterator at the sequence atom stored in buf (header
// included). It reports false if buf does not hold a sequence header.
func (it *Iterator) Reset(buf []byte) bool {
	*it = Iterator{}
	a, ok := readHeader(buf)
	if !ok || a.Size < sequenceBodySize {
		return false
	}
	end := uint64(HeaderSize) + uint64(a.Size)
	if end > uint64(len(buf)) {
		// Trust the buffer we were given over the header.
		end = uint64(len(buf))
		it.truncated = true
	}
	it.buf = buf[:end]
	it.pos = HeaderSize + sequenceBodySize
	return true
}

// Next advances to the next event. It returns false when the sequence is
// exhausted or the next event does not fit in the buffer.
func (it *Iterator) Next() bool {
	if it.pos+eventHeaderSize > len(it.buf) {
		return false
	}
	frames := int64(order.Uint64(it.buf[it.pos:]))
	a, _ := readHeader(it.buf[it.pos+8:])
	start := it.pos + eventHeaderSize
	end := uint64(start) + uint64(a.Size)
	if end > uint64(len(it.buf)) {
		it.truncated = true
		it.pos = len(it.buf)
		return false
	}
	it.ev = Event{
		Frames: frames,
		Body:   View{Atom: a, Body: it.buf[start:end]},
	}
	it.pos = start + int(PadSize(a.Size))
	return true
}

// Event returns the current event. Its body aliases the sequence buffer.
func (it *Iterator) Event() Event {
	return it.ev
}

// Truncated reports whether the walk hit an atom that overran the buffer.
func (it *Iterator) Truncated() bool {
	return it.truncated
}
