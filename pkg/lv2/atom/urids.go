package atom

import (
	"math"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// URIDs holds the mapped identifiers of the atom, MIDI and patch
// vocabulary. The zero value maps nothing and matches no atom.
type URIDs struct {
	Blank    lv2.URID
	Bool     lv2.URID
	Double   lv2.URID
	Float    lv2.URID
	Int      lv2.URID
	Long     lv2.URID
	Object   lv2.URID
	Sequence lv2.URID
	URID     lv2.URID

	MIDIEvent lv2.URID

	PatchSet      lv2.URID
	PatchProperty lv2.URID
	PatchValue    lv2.URID
}

// MapURIDs maps the whole vocabulary through m.
func MapURIDs(m lv2.URIDMapper) URIDs {
	return URIDs{
		Blank:         m.Map(lv2.AtomBlank),
		Bool:          m.Map(lv2.AtomBool),
		Double:        m.Map(lv2.AtomDouble),
		Float:         m.Map(lv2.AtomFloat),
		Int:           m.Map(lv2.AtomInt),
		Long:          m.Map(lv2.AtomLong),
		Object:        m.Map(lv2.AtomObject),
		Sequence:      m.Map(lv2.AtomSequence),
		URID:          m.Map(lv2.AtomURID),
		MIDIEvent:     m.Map(lv2.MIDIEvent),
		PatchSet:      m.Map(lv2.PatchSet),
		PatchProperty: m.Map(lv2.PatchProperty),
		PatchValue:    m.Map(lv2.PatchValue),
	}
}

// Valid reports whether the vocabulary has been mapped.
func (u URIDs) Valid() bool {
	return u.Object != 0 && u.MIDIEvent != 0
}

// IsObject reports whether t is an object type (Object or Blank).
func (u URIDs) IsObject(t lv2.URID) bool {
	return t != 0 && (t == u.Object || t == u.Blank)
}

// Number converts a numeric atom to float64. Float, Double, Int, Long and
// Bool atoms are accepted.
func (u URIDs) Number(v View) (float64, bool) {
	if v.Type == 0 {
		return 0, false
	}
	switch v.Type {
	case u.Float:
		f, ok := v.Float32()
		return float64(f), ok
	case u.Double:
		return v.Float64()
	case u.Int:
		i, ok := v.Int32()
		return float64(i), ok
	case u.Long:
		i, ok := v.Int64()
		return float64(i), ok
	case u.Bool:
		i, ok := v.Int32()
		if i != 0 {
			return 1, ok
		}
		return 0, ok
	}
	return 0, false
}

// Value is a typed atom body ready to be forged.
type Value struct {
	Type lv2.URID
	Body []byte
}

// FloatValue builds a Float atom value.
func (u URIDs) FloatValue(f float32) Value {
	b := make([]byte, 4)
	order.PutUint32(b, math.Float32bits(f))
	return Value{Type: u.Float, Body: b}
}

// DoubleValue builds a Double atom value.
func (u URIDs) DoubleValue(f float64) Value {
	b := make([]byte, 8)
	order.PutUint64(b, math.Float64bits(f))
	return Value{Type: u.Double, Body: b}
}

// IntValue builds an Int atom value.
func (u URIDs) IntValue(i int32) Value {
	b := make([]byte, 4)
	order.PutUint32(b, uint32(i))
	return Value{Type: u.Int, Body: b}
}

// BoolValue builds a Bool atom value.
func (u URIDs) BoolValue(v bool) Value {
	var i int32
	if v {
		i = 1
	}
	val := u.IntValue(i)
	val.Type = u.Bool
	return val
}

// URIDValue builds a URID atom value.
func (u URIDs) URIDValue(id lv2.URID) Value {
	b := make([]byte, 4)
	order.PutUint32(b, uint32(id))
	return Value{Type: u.URID, Body: b}
}
