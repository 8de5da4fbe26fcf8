// Package urid provides an in-process URID map, the service a host offers
// through the urid:map and urid:unmap features.
package urid

import (
	"sync"

	"github.com/justyntemme/lv2go/pkg/lv2"
)

// Table maps URIs to URIDs and back. Identifiers start at 1 and are never
// reused.
type Table struct {
	ids  map[string]lv2.URID
	uris []string // index = URID - 1
	mu   sync.RWMutex
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		ids:  make(map[string]lv2.URID),
		uris: make([]string, 0, 64),
	}
}

// Map returns the URID for uri, assigning a new one on first use.
func (t *Table) Map(uri string) lv2.URID {
	t.mu.RLock()
	id, ok := t.ids[uri]
	t.mu.RUnlock()
	if ok {
		return id
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[uri]; ok {
		return id
	}
	t.uris = append(t.uris, uri)
	id = lv2.URID(len(t.uris))
	t.ids[uri] = id
	return id
}

// Unmap returns the URI for id, or "" if id was never assigned.
func (t *Table) Unmap(id lv2.URID) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if id == 0 || int(id) > len(t.uris) {
		return ""
	}
	return t.uris[id-1]
}

// Len returns the number of mapped URIs
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.uris)
}

// Features returns the urid:map and urid:unmap features backed by t.
func (t *Table) Features() []lv2.Feature {
	return []lv2.Feature{
		{URI: lv2.URIDMapURI, Data: lv2.URIDMapper(t)},
		{URI: lv2.URIDUnmapURI, Data: lv2.URIDUnmapper(t)},
	}
}
