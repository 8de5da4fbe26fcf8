// Package state saves and restores plugin parameter state as CBOR.
package state

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/justyntemme/lv2go/pkg/framework/param"
)

// Version is the snapshot format version written by Save.
const Version = 1

// ErrInvalidState is returned for data that is not a parameter snapshot.
var ErrInvalidState = errors.New("invalid state format")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create state CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create state CBOR decoder mode: %v", err))
	}
}

// Snapshot is the serialized form of a plugin's state. Parameter values are
// keyed by name so that reordering parameters keeps saved sessions intact.
type Snapshot struct {
	Version uint32             `cbor:"1,keyasint"`
	Plugin  string             `cbor:"2,keyasint"`
	Values  map[string]float64 `cbor:"3,keyasint"`
	Custom  []byte             `cbor:"4,keyasint,omitempty"`
}

// CustomSaveFunc returns additional state beyond parameters.
type CustomSaveFunc func() ([]byte, error)

// CustomLoadFunc restores additional state written by a CustomSaveFunc.
type CustomLoadFunc func(data []byte) error

// Manager handles plugin state saving and loading
type Manager struct {
	plugin     string
	registry   *param.Registry
	customSave CustomSaveFunc
	customLoad CustomLoadFunc
}

// NewManager creates a new state manager for the plugin identified by uri.
func NewManager(uri string, registry *param.Registry) *Manager {
	return &Manager{
		plugin:   uri,
		registry: registry,
	}
}

// SetCustomState sets functions for saving and loading custom state
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.customSave = save
	m.customLoad = load
}

// Capture returns the current parameter values.
func (m *Manager) Capture() (*Snapshot, error) {
	params := m.registry.All()
	snap := &Snapshot{
		Version: Version,
		Plugin:  m.plugin,
		Values:  make(map[string]float64, len(params)),
	}
	for _, p := range params {
		snap.Values[p.Name] = p.GetValue()
	}
	if m.customSave != nil {
		custom, err := m.customSave()
		if err != nil {
			return nil, fmt.Errorf("save custom state: %w", err)
		}
		snap.Custom = custom
	}
	return snap, nil
}

// Save writes the plugin state to a writer
func (m *Manager) Save(w io.Writer) error {
	snap, err := m.Capture()
	if err != nil {
		return err
	}
	return Encode(w, snap)
}

// Encode writes snap to w.
func Encode(w io.Writer, snap *Snapshot) error {
	return encMode.NewEncoder(w).Encode(snap)
}

// Decode reads a snapshot without applying it.
func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := decMode.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if snap.Version == 0 {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidState)
	}
	if snap.Version > Version {
		return nil, fmt.Errorf("state version %d is newer than supported version %d", snap.Version, Version)
	}
	return &snap, nil
}

// Load reads the plugin state from a reader and applies it. changed is
// called with the ordinal of every parameter whose value moved; it may be
// nil. Unknown parameter names are ignored.
func (m *Manager) Load(r io.Reader, changed func(index int)) error {
	snap, err := Decode(r)
	if err != nil {
		return err
	}
	if snap.Plugin != "" && snap.Plugin != m.plugin {
		return fmt.Errorf("%w: state belongs to %q", ErrInvalidState, snap.Plugin)
	}
	return m.Apply(snap, changed)
}

// Apply writes snapshot values into the registry. Read-only parameters
// are skipped.
func (m *Manager) Apply(snap *Snapshot, changed func(index int)) error {
	for name, value := range snap.Values {
		p := m.registry.GetByName(name)
		if p == nil || p.ReadOnly() {
			continue
		}
		old := p.GetValue()
		p.SetValue(value)
		if changed != nil && p.GetValue() != old {
			changed(int(p.ID))
		}
	}

	if len(snap.Custom) > 0 && m.customLoad != nil {
		if err := m.customLoad(snap.Custom); err != nil {
			return fmt.Errorf("load custom state: %w", err)
		}
	}
	return nil
}
