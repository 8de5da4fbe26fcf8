// Package lv2 defines the host-facing vocabulary of the LV2 plugin API:
// well-known URIs, instantiation features, options and the URID mapping
// service.
package lv2

// Core namespaces
const (
	AtomPrefix    = "http://lv2plug.in/ns/ext/atom#"
	BufSizePrefix = "http://lv2plug.in/ns/ext/buf-size#"
	MIDIPrefix    = "http://lv2plug.in/ns/ext/midi#"
	OptionsPrefix = "http://lv2plug.in/ns/ext/options#"
	PatchPrefix   = "http://lv2plug.in/ns/ext/patch#"
	UIPrefix      = "http://lv2plug.in/ns/extensions/ui#"
)

// Feature URIs
const (
	OptionsURI   = "http://lv2plug.in/ns/ext/options#options"
	URIDMapURI   = "http://lv2plug.in/ns/ext/urid#map"
	URIDUnmapURI = "http://lv2plug.in/ns/ext/urid#unmap"

	UIParentURI        = UIPrefix + "parent"
	UIIdleInterfaceURI = UIPrefix + "idleInterface"
	UIResizeURI        = UIPrefix + "resize"
)

// Atom types
const (
	AtomBlank    = AtomPrefix + "Blank"
	AtomBool     = AtomPrefix + "Bool"
	AtomDouble   = AtomPrefix + "Double"
	AtomFloat    = AtomPrefix + "Float"
	AtomInt      = AtomPrefix + "Int"
	AtomLong     = AtomPrefix + "Long"
	AtomObject   = AtomPrefix + "Object"
	AtomSequence = AtomPrefix + "Sequence"
	AtomURID     = AtomPrefix + "URID"
)

// Buffer size options
const (
	BufSizeMaxBlockLength     = BufSizePrefix + "maxBlockLength"
	BufSizeNominalBlockLength = BufSizePrefix + "nominalBlockLength"
)

// MIDIEvent is the atom type of a raw MIDI message.
const MIDIEvent = MIDIPrefix + "MidiEvent"

// Patch vocabulary
const (
	PatchSet      = PatchPrefix + "Set"
	PatchProperty = PatchPrefix + "property"
	PatchValue    = PatchPrefix + "value"
)
