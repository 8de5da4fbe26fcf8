package plugin

import (
	"github.com/justyntemme/lv2go/pkg/framework/param"
)

// updater writes parameter values under the shared lock and notifies the
// processor of changes.
type updater struct {
	params   *param.Registry
	listener param.ChangeListener
}

// apply stores value for ordinal if it differs from the stored value and
// notifies the listener. It reports whether the value changed. Read-only
// parameters belong to the processor and are never written here.
func (u *updater) apply(ordinal int, value float64, source param.Source, offset int) bool {
	p := u.params.GetByIndex(ordinal)
	if p == nil || p.ReadOnly() {
		return false
	}

	u.params.Lock()
	defer u.params.Unlock()

	old := p.GetValue()
	p.SetValue(value)
	if p.GetValue() == old {
		return false
	}
	u.notify(ordinal, source, offset)
	return true
}

// notify must be called with the shared lock held.
func (u *updater) notify(ordinal int, source param.Source, offset int) {
	if u.listener != nil {
		u.listener.OnParamChange(ordinal, source, offset)
	}
}
