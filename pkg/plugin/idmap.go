package plugin

import (
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/lv2"
)

// IdentifierMap resolves the URIDs hosts use in patch messages to parameter
// ordinals. It is built once and never modified, so the audio thread reads
// it without locking.
type IdentifierMap struct {
	ids map[lv2.URID]int
}

// NewIdentifierMap maps the key of every parameter ordinal in [0, count).
// A nil mapper yields an empty map.
func NewIdentifierMap(m lv2.URIDMapper, info fwplugin.Info, count int) *IdentifierMap {
	im := &IdentifierMap{ids: make(map[lv2.URID]int, count)}
	if m == nil {
		return im
	}
	for n := 0; n < count; n++ {
		if id := m.Map(info.ParameterKey(n)); id != 0 {
			im.ids[id] = n
		}
	}
	return im
}

// Lookup returns the ordinal registered for id.
func (m *IdentifierMap) Lookup(id lv2.URID) (int, bool) {
	n, ok := m.ids[id]
	return n, ok
}

// Len returns the number of mapped parameters.
func (m *IdentifierMap) Len() int {
	return len(m.ids)
}
