package atom

import "github.com/justyntemme/lv2go/pkg/lv2"

const (
	objectBodySize   = 8 // id + otype
	propertyHdrSize  = 8 // key + context
	propertyFullSize = propertyHdrSize + HeaderSize
)

// Object is a decoded object atom body.
type Object struct {
	ID    lv2.URID
	OType lv2.URID
	props []byte
}

// AsObject decodes v as an object. The caller checks v.Type.
func AsObject(v View) (Object, bool) {
	if len(v.Body) < objectBodySize {
		return Object{}, false
	}
	return Object{
		ID:    lv2.URID(order.Uint32(v.Body[0:4])),
		OType: lv2.URID(order.Uint32(v.Body[4:8])),
		props: v.Body[objectBodySize:],
	}, true
}

// Get returns the value of the first property with the given key.
func (o Object) Get(key lv2.URID) (View, bool) {
	found := View{}
	ok := false
	o.Each(func(k lv2.URID, v View) bool {
		if k == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Each calls fn for every property in storage order until fn returns false.
func (o Object) Each(fn func(key lv2.URID, value View) bool) {
	pos := 0
	for pos+propertyFullSize <= len(o.props) {
		key := lv2.URID(order.Uint32(o.props[pos:]))
		a, _ := readHeader(o.props[pos+propertyHdrSize:])
		start := pos + propertyFullSize
		end := uint64(start) + uint64(a.Size)
		if end > uint64(len(o.props)) {
			return
		}
		if !fn(key, View{Atom: a, Body: o.props[start:end]}) {
			return
		}
		pos = start + int(PadSize(a.Size))
	}
}
