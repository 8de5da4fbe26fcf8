package plugin

import (
	"math"

	"github.com/justyntemme/lv2go/pkg/lv2"
	"github.com/justyntemme/lv2go/pkg/lv2/atom"
	"github.com/justyntemme/lv2go/pkg/midi"
)

// EventKind tags a decoded input event.
type EventKind uint8

// Event kinds
const (
	EventUnknown EventKind = iota
	EventParameterSet
	EventMIDI
)

func (k EventKind) String() string {
	switch k {
	case EventParameterSet:
		return "ParameterSet"
	case EventMIDI:
		return "MIDI"
	default:
		return "Unknown"
	}
}

// ParameterSet is a decoded patch:Set for a known parameter.
type ParameterSet struct {
	Identifier lv2.URID
	Ordinal    int
	Value      float64
}

// TimedEvent is one input event with its offset clamped into the block.
// Only the field matching Kind is meaningful.
type TimedEvent struct {
	Offset int32
	Kind   EventKind
	Param  ParameterSet
	MIDI   midi.Message
}

// Demux decodes the input event sequence of one block. It holds no state
// across blocks besides its tables: Reset starts a new walk, Next decodes
// lazily in storage order.
type Demux struct {
	urids atom.URIDs
	ids   *IdentifierMap
	it    atom.Iterator
	n     int
	ev    TimedEvent
}

// NewDemux creates a demultiplexer using the mapped vocabulary and the
// parameter identifier map.
func NewDemux(urids atom.URIDs, ids *IdentifierMap) *Demux {
	return &Demux{urids: urids, ids: ids}
}

// Reset starts decoding buf, the events-in sequence of a block of n
// samples. It reports false when there is nothing to decode: no buffer, no
// sequence header, or no mapped vocabulary.
func (d *Demux) Reset(buf []byte, n int) bool {
	d.n = n
	d.ev = TimedEvent{}
	if !d.urids.Valid() {
		d.it = atom.Iterator{}
		return false
	}
	return d.it.Reset(buf)
}

// Next decodes the next event. Events that cannot be used are returned
// with Kind EventUnknown so callers can count them.
func (d *Demux) Next() bool {
	if !d.it.Next() {
		return false
	}
	e := d.it.Event()
	d.ev = TimedEvent{Offset: d.clamp(e.Frames)}
	switch {
	case d.urids.IsObject(e.Body.Type):
		d.decodePatch(e.Body)
	case e.Body.Type == d.urids.MIDIEvent:
		d.decodeMIDI(e.Body.Body)
	}
	return true
}

// Event returns the event decoded by the last call to Next.
func (d *Demux) Event() TimedEvent {
	return d.ev
}

// Truncated reports whether decoding stopped at an atom that overran the
// buffer.
func (d *Demux) Truncated() bool {
	return d.it.Truncated()
}

func (d *Demux) clamp(frames int64) int32 {
	switch {
	case frames < 0 || d.n <= 0:
		return 0
	case frames >= int64(d.n):
		return int32(d.n - 1)
	default:
		return int32(frames)
	}
}

func (d *Demux) decodePatch(body atom.View) {
	obj, ok := atom.AsObject(body)
	if !ok || obj.OType != d.urids.PatchSet {
		return
	}
	prop, ok := obj.Get(d.urids.PatchProperty)
	if !ok || prop.Type != d.urids.URID {
		return
	}
	id, ok := prop.Uint32()
	if !ok {
		return
	}
	val, ok := obj.Get(d.urids.PatchValue)
	if !ok {
		return
	}
	value, ok := d.urids.Number(val)
	if !ok || math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	ordinal, ok := d.ids.Lookup(lv2.URID(id))
	if !ok {
		return
	}
	d.ev.Kind = EventParameterSet
	d.ev.Param = ParameterSet{Identifier: lv2.URID(id), Ordinal: ordinal, Value: value}
}

func (d *Demux) decodeMIDI(data []byte) {
	if len(data) == 0 {
		return
	}
	status := data[0]
	switch midi.MessageType(status) {
	case 0, midi.StatusSystemExclusive:
		// Running status and SysEx do not fit a three byte message.
		return
	}
	msg := midi.Message{Offset: d.ev.Offset, Status: status}
	if len(data) > 1 {
		msg.Data1 = data[1]
	}
	if len(data) > 2 {
		msg.Data2 = data[2]
	}
	d.ev.Kind = EventMIDI
	d.ev.MIDI = msg
}
