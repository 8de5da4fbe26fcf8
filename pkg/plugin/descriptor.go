package plugin

import (
	"fmt"
	"sync"

	"github.com/justyntemme/lv2go/pkg/framework/bus"
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/lv2"
)

// Descriptor is what a host sees for one I/O configuration of a plugin.
type Descriptor struct {
	Index int
	URI   string
	// IOConfig describes the configuration for hosts and tools. It does not
	// shape instances, see Instantiate.
	IOConfig *bus.Configuration

	plugin Plugin
}

// Instantiate creates an instance through this descriptor. Every
// descriptor of a plugin produces the same port layout, sized for the
// largest channel counts across all I/O configurations; a host using a
// smaller configuration leaves the extra audio ports unconnected, and they
// read as silence.
func (d *Descriptor) Instantiate(sampleRate float64, features []lv2.Feature, opts ...InstanceOption) (*Instance, error) {
	return Instantiate(d.plugin, sampleRate, features, opts...)
}

// DescriptorTable maps I/O configuration indices to descriptors. It is
// built on first use and never changes afterwards.
type DescriptorTable struct {
	plugin Plugin
	once   sync.Once
	descs  []*Descriptor
	err    error
}

// NewDescriptorTable creates the descriptor table of p.
func NewDescriptorTable(p Plugin) *DescriptorTable {
	return &DescriptorTable{plugin: p}
}

func (t *DescriptorTable) build() {
	t.once.Do(func() {
		if t.plugin == nil {
			t.err = fmt.Errorf("%w: no plugin", ErrInvalidConfig)
			return
		}
		cfg := t.plugin.Config()
		if cfg == nil {
			t.err = fmt.Errorf("%w: nil config", ErrInvalidConfig)
			return
		}
		if err := cfg.Validate(); err != nil {
			t.err = err
			return
		}
		configs, err := cfg.IOConfigurations()
		if err != nil {
			t.err = err
			return
		}
		for i, io := range configs {
			t.descs = append(t.descs, &Descriptor{
				Index:    i,
				URI:      cfg.Plugin.DescriptorURI(i),
				IOConfig: io,
				plugin:   t.plugin,
			})
		}
	})
}

// Descriptor returns the descriptor for index i.
func (t *DescriptorTable) Descriptor(i int) (*Descriptor, bool) {
	t.build()
	if i < 0 || i >= len(t.descs) {
		return nil, false
	}
	return t.descs[i], true
}

// Len returns the number of descriptors.
func (t *DescriptorTable) Len() int {
	t.build()
	return len(t.descs)
}

// Err returns the error that prevented building the table, if any.
func (t *DescriptorTable) Err() error {
	t.build()
	return t.err
}

// Global descriptor table of the registered plugin
var (
	globalMu    sync.Mutex
	globalTable *DescriptorTable
)

// Register sets the plugin exposed through the package level descriptor
// lookup.
func Register(p Plugin) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalTable = NewDescriptorTable(p)
}

// Lookup returns descriptor i of the registered plugin.
func Lookup(i int) (*Descriptor, bool) {
	globalMu.Lock()
	t := globalTable
	globalMu.Unlock()
	if t == nil {
		return nil, false
	}
	return t.Descriptor(i)
}

// FromConfig adapts a description and a processor constructor to Plugin.
func FromConfig(cfg *fwplugin.Config, create func(base *fwplugin.Base) (Processor, error)) Plugin {
	return configPlugin{cfg: cfg, create: create}
}

type configPlugin struct {
	cfg    *fwplugin.Config
	create func(base *fwplugin.Base) (Processor, error)
}

func (p configPlugin) Config() *fwplugin.Config {
	return p.cfg
}

func (p configPlugin) CreateProcessor(base *fwplugin.Base) (Processor, error) {
	if p.create == nil {
		return nil, ErrNoProcessor
	}
	proc, err := p.create(base)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		return nil, ErrNoProcessor
	}
	return proc, nil
}
