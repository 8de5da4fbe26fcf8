package plugin

import (
	"github.com/justyntemme/lv2go/pkg/lv2"
)

// features is the capability table captured from the instantiation
// feature list. It is not retained past instantiation.
type features struct {
	options []lv2.Option
	urids   lv2.URIDMapper
}

// negotiate walks the feature list once. Unknown features and features
// whose data has the wrong type are ignored.
func negotiate(list []lv2.Feature) features {
	var f features
	for _, feature := range list {
		switch feature.URI {
		case lv2.OptionsURI:
			if opts, ok := feature.Data.([]lv2.Option); ok {
				f.options = opts
			}
		case lv2.URIDMapURI:
			if m, ok := feature.Data.(lv2.URIDMapper); ok && m != nil {
				f.urids = m
			}
		}
	}
	return f
}

// blockSize returns the host's maximum block length, or def when the host
// does not announce a usable one. Options are URID keyed, so without a map
// nothing can be found.
func (f features) blockSize(def int) int {
	if f.urids == nil || len(f.options) == 0 {
		return def
	}
	key := f.urids.Map(lv2.BufSizeMaxBlockLength)
	size := def
	for _, opt := range f.options {
		if opt.Key == 0 {
			break
		}
		if opt.Key != key || opt.Size != 4 || opt.Value == nil {
			continue
		}
		if v := *(*int32)(opt.Value); v > 0 {
			size = int(v)
		}
	}
	return size
}
