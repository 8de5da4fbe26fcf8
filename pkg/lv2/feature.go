package lv2

import "unsafe"

// URID is a host-assigned numeric identifier for a URI. Zero is never a
// valid URID.
type URID uint32

// Feature is one entry of the feature list passed at instantiation.
type Feature struct {
	URI  string
	Data any
}

// URIDMapper maps URIs to URIDs. The mapping is stable for the lifetime of
// the process.
type URIDMapper interface {
	Map(uri string) URID
}

// URIDUnmapper reverses a URIDMapper.
type URIDUnmapper interface {
	Unmap(urid URID) string
}

// OptionContext identifies what an option applies to.
type OptionContext uint32

const (
	OptionInstance OptionContext = iota
	OptionResource
	OptionBlank
	OptionPort
)

// Option is one entry of the options feature. Value points at Size bytes of
// data whose type is described by Type.
type Option struct {
	Context OptionContext
	Subject uint32
	Key     URID
	Size    uint32
	Type    URID
	Value   unsafe.Pointer
}

// UIResizer is the host side of ui:resize. UIResize returns 0 on success.
type UIResizer interface {
	UIResize(width, height int) int
}
