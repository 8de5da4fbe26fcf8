// Package param provides the plugin parameter store: plain-valued
// parameters with lock-free reads, indexed by dense ordinal.
package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Parameter represents a plugin parameter. Values are stored in plain
// units (the range [Min, Max]), which is what LV2 ports and patch messages
// carry.
type Parameter struct {
	ID           uint32 // dense ordinal, assigned by the registry
	Name         string
	ShortName    string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64
	StepCount    int32
	Flags        uint32

	// Atomic value for lock-free access in audio thread
	value atomic.Uint64
}

// Flags for parameters
const (
	CanAutomate uint32 = 1 << 0
	IsReadOnly  uint32 = 1 << 1
	IsHidden    uint32 = 1 << 4
	IsBypass    uint32 = 1 << 16
)

// GetValue returns the current plain value
func (p *Parameter) GetValue() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores value clamped to [Min, Max]. NaN is ignored.
func (p *Parameter) SetValue(value float64) {
	if math.IsNaN(value) {
		return
	}
	p.value.Store(math.Float64bits(p.Clamp(value)))
}

// ReadOnly reports whether only the plugin itself may write p.
func (p *Parameter) ReadOnly() bool {
	return p.Flags&IsReadOnly != 0
}

// Reset restores the default value
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// Clamp limits value to the parameter range.
func (p *Parameter) Clamp(value float64) float64 {
	if p.Max <= p.Min {
		return p.Min
	}
	if value < p.Min {
		return p.Min
	}
	if value > p.Max {
		return p.Max
	}
	return value
}

// GetNormalized returns the current value mapped to 0-1
func (p *Parameter) GetNormalized() float64 {
	return p.Normalize(p.GetValue())
}

// Normalize converts plain value to normalized (0-1)
func (p *Parameter) Normalize(plain float64) float64 {
	if p.Max <= p.Min {
		return 0
	}
	normalized := (plain - p.Min) / (p.Max - p.Min)
	if normalized < 0 {
		return 0
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

// Denormalize converts normalized (0-1) to plain value
func (p *Parameter) Denormalize(normalized float64) float64 {
	return p.Min + normalized*(p.Max-p.Min)
}

// FormatValue returns a display string for a plain value
func (p *Parameter) FormatValue(plain float64) string {
	var s string
	if p.StepCount > 0 {
		// For discrete parameters, show integer
		s = fmt.Sprintf("%.0f", plain)
	} else {
		s = fmt.Sprintf("%.2f", plain)
	}
	if p.Unit != "" {
		s += " " + p.Unit
	}
	return s
}
