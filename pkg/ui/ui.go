// Package ui is the UI side of an LV2 plugin. It runs on the host's UI
// thread, embeds an Editor into the host-provided parent widget and keeps
// its own parameter store in sync with the DSP side through control port
// notifications.
package ui

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/google/uuid"

	"github.com/justyntemme/lv2go/pkg/framework/debug"
	"github.com/justyntemme/lv2go/pkg/framework/param"
	fwplugin "github.com/justyntemme/lv2go/pkg/framework/plugin"
	"github.com/justyntemme/lv2go/pkg/lv2"
	"github.com/justyntemme/lv2go/pkg/plugin"
)

// ErrNoEditor is returned when a UI is created without an editor.
var ErrNoEditor = errors.New("ui: no editor")

// FloatProtocol is the port protocol of plain float control values.
const FloatProtocol = 0

// Editor is the window-system side of a plugin UI.
type Editor interface {
	// Open creates the editor view inside parent and returns its widget
	Open(parent unsafe.Pointer) unsafe.Pointer
	Close()
	Idle()
	Resize(width, height int)
}

// ParameterView is implemented by editors that display parameter values
// set from the host.
type ParameterView interface {
	SetParameterFromHost(index int, value float64)
}

// WriteFunc is the host's port write function.
type WriteFunc func(controller any, port, bufferSize, format uint32, buffer unsafe.Pointer)

// UI adapts an Editor to the host.
type UI struct {
	id         uuid.UUID
	log        *debug.Logger
	editor     Editor
	view       ParameterView
	listener   param.ChangeListener
	params     *param.Registry
	write      WriteFunc
	controller any

	parent     unsafe.Pointer
	hostIdle   bool
	resize     lv2.UIResizer
	widget     unsafe.Pointer
	portOffset int
	closed     bool
}

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the logger of a UI.
func WithLogger(l *debug.Logger) Option {
	return func(u *UI) {
		u.log = l
	}
}

// New creates the UI for base. Host features are negotiated here; missing
// ones only disable what depends on them.
func New(base *fwplugin.Base, editor Editor, write WriteFunc, controller any, features []lv2.Feature, opts ...Option) (*UI, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: nil base", fwplugin.ErrInvalidConfig)
	}
	if editor == nil {
		return nil, ErrNoEditor
	}

	u := &UI{
		id:         uuid.New(),
		editor:     editor,
		params:     base.Parameters(),
		write:      write,
		controller: controller,
		portOffset: plugin.Layout{Inputs: base.MaxInputs(), Outputs: base.MaxOutputs()}.ControlOffset(),
	}
	u.view, _ = editor.(ParameterView)
	u.listener, _ = editor.(param.ChangeListener)
	for _, opt := range opts {
		opt(u)
	}
	if u.log == nil {
		u.log = debug.Default()
	}
	u.log = u.log.With("ui", u.id.String())

	for _, f := range features {
		switch f.URI {
		case lv2.UIParentURI:
			if p, ok := f.Data.(unsafe.Pointer); ok {
				u.parent = p
			}
		case lv2.UIIdleInterfaceURI:
			u.hostIdle = true
		case lv2.UIResizeURI:
			if r, ok := f.Data.(lv2.UIResizer); ok && r != nil {
				u.resize = r
			}
		}
	}

	u.log.Debug("created for %s: parent %t, idle %t, resize %t",
		base.Info.URI, u.parent != nil, u.hostIdle, u.resize != nil)
	return u, nil
}

// PortOffset returns the port index of parameter 0.
func (u *UI) PortOffset() int {
	return u.portOffset
}

// HostSupportsIdle reports whether the host offered ui:idleInterface.
func (u *UI) HostSupportsIdle() bool {
	return u.hostIdle
}

// CreateUI opens the editor inside the host's parent widget. It is
// separate from New because the editor may need the UI to exist first.
func (u *UI) CreateUI() unsafe.Pointer {
	if u.closed {
		return nil
	}
	if u.widget == nil {
		u.widget = u.editor.Open(u.parent)
	}
	return u.widget
}

// PortEvent receives a control port value from the host. Only float values
// for parameter ports are used.
func (u *UI) PortEvent(port, bufferSize, format uint32, buffer unsafe.Pointer) {
	if u.closed || format != FloatProtocol || bufferSize != 4 || buffer == nil {
		return
	}
	if int(port) < u.portOffset {
		return
	}
	idx := int(port) - u.portOffset
	p := u.params.GetByIndex(idx)
	if p == nil {
		return
	}
	value := float64(*(*float32)(buffer))

	u.params.Lock()
	defer u.params.Unlock()
	p.SetValue(value)
	if u.view != nil {
		u.view.SetParameterFromHost(idx, p.GetValue())
	}
	if u.listener != nil {
		u.listener.OnParamChange(idx, param.SourceHost, -1)
	}
}

// InformHostOfParamChange sends the value of parameter idx to the host. It
// reports whether the host was written to.
func (u *UI) InformHostOfParamChange(idx int) bool {
	p := u.params.GetByIndex(idx)
	if p == nil || u.write == nil || u.closed {
		return false
	}
	u.params.Lock()
	value := float32(p.GetValue())
	u.params.Unlock()

	u.write(u.controller, uint32(u.portOffset+idx), 4, FloatProtocol, unsafe.Pointer(&value))
	return true
}

// SetParameter changes a parameter from the editor and tells the host.
// Read-only parameters only change through PortEvent.
func (u *UI) SetParameter(idx int, value float64) bool {
	p := u.params.GetByIndex(idx)
	if p == nil || p.ReadOnly() {
		return false
	}
	u.params.Lock()
	p.SetValue(value)
	u.params.Unlock()
	return u.InformHostOfParamChange(idx)
}

// Parameter returns the UI side value of parameter idx.
func (u *UI) Parameter(idx int) float64 {
	p := u.params.GetByIndex(idx)
	if p == nil {
		return 0
	}
	u.params.Lock()
	defer u.params.Unlock()
	return p.GetValue()
}

// Idle pumps the editor. A non-zero result asks the host to close the UI.
func (u *UI) Idle() int {
	if u.closed {
		return 1
	}
	u.editor.Idle()
	return 0
}

// ResizeFromUI asks the host to resize the editor. Without ui:resize, or
// when no platform resize is needed, it does nothing and returns false.
func (u *UI) ResizeFromUI(width, height int, needsPlatformResize bool) bool {
	if u.resize == nil || !needsPlatformResize {
		return false
	}
	if u.resize.UIResize(width, height) != 0 {
		return false
	}
	u.editor.Resize(width, height)
	return true
}

// Cleanup closes the editor. Later calls do nothing.
func (u *UI) Cleanup() {
	if u.closed {
		return
	}
	u.closed = true
	if u.widget != nil {
		u.editor.Close()
		u.widget = nil
	}
	u.log.Debug("closed")
}
