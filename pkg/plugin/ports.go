package plugin

import "unsafe"

// Port indices of the two event ports, which always come first.
const (
	PortEventsIn  = 0
	PortEventsOut = 1

	eventPortCount = 2
)

// PortKind classifies a port index.
type PortKind int

// Port kinds in layout order.
const (
	PortInvalid PortKind = iota
	PortEvents
	PortAudioIn
	PortAudioOut
	PortControl
)

func (k PortKind) String() string {
	switch k {
	case PortEvents:
		return "events"
	case PortAudioIn:
		return "audio-in"
	case PortAudioOut:
		return "audio-out"
	case PortControl:
		return "control"
	default:
		return "invalid"
	}
}

// Layout describes the port numbering of an instance: event ports, audio
// inputs, audio outputs and then one control port per parameter when
// control ports are enabled.
type Layout struct {
	Inputs   int
	Outputs  int
	Controls int
}

// Count returns the total number of ports.
func (l Layout) Count() int {
	return eventPortCount + l.Inputs + l.Outputs + l.Controls
}

// ControlOffset returns the index of the first control port. UIs address
// parameters at this offset even when control ports are disabled.
func (l Layout) ControlOffset() int {
	return eventPortCount + l.Inputs + l.Outputs
}

// Resolve maps a global port index to its kind and the index within that
// kind.
func (l Layout) Resolve(port uint32) (PortKind, int) {
	p := int(port)
	if p < 0 {
		return PortInvalid, 0
	}
	if p < eventPortCount {
		return PortEvents, p
	}
	p -= eventPortCount
	if p < l.Inputs {
		return PortAudioIn, p
	}
	p -= l.Inputs
	if p < l.Outputs {
		return PortAudioOut, p
	}
	p -= l.Outputs
	if p < l.Controls {
		return PortControl, p
	}
	return PortInvalid, 0
}

// portTable records the buffers the host connected. It is written only by
// ConnectPort, which the host never calls during Run.
type portTable struct {
	layout   Layout
	events   [eventPortCount]unsafe.Pointer
	audioIn  []unsafe.Pointer
	audioOut []unsafe.Pointer
	control  []unsafe.Pointer
}

func newPortTable(layout Layout) *portTable {
	return &portTable{
		layout:   layout,
		audioIn:  make([]unsafe.Pointer, layout.Inputs),
		audioOut: make([]unsafe.Pointer, layout.Outputs),
		control:  make([]unsafe.Pointer, layout.Controls),
	}
}

// bind records data for port. Out of range ports are ignored and reported
// as false.
func (t *portTable) bind(port uint32, data unsafe.Pointer) bool {
	kind, i := t.layout.Resolve(port)
	switch kind {
	case PortEvents:
		t.events[i] = data
	case PortAudioIn:
		t.audioIn[i] = data
	case PortAudioOut:
		t.audioOut[i] = data
	case PortControl:
		t.control[i] = data
	default:
		return false
	}
	return true
}

func (t *portTable) release() {
	t.events = [eventPortCount]unsafe.Pointer{}
	clear(t.audioIn)
	clear(t.audioOut)
	clear(t.control)
}
