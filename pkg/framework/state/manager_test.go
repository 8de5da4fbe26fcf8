package state

import (
	"bytes"
	"sort"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/lv2go/pkg/framework/param"
)

const uri = "http://example.com/plugins/test"

func newRegistry() *param.Registry {
	r := param.NewRegistry()
	r.Add(
		param.New("Gain").Range(-24, 24).Default(0).Build(),
		param.New("Mix").Range(0, 100).Default(100).Build(),
		param.New("Bypass").Bypass().Build(),
	)
	return r
}

func TestSaveLoad(t *testing.T) {
	src := newRegistry()
	src.GetByIndex(0).SetValue(-6)
	src.GetByIndex(2).SetValue(1)

	var buf bytes.Buffer
	require.NoError(t, NewManager(uri, src).Save(&buf))

	dst := newRegistry()
	var changed []int
	require.NoError(t, NewManager(uri, dst).Load(&buf, func(i int) { changed = append(changed, i) }))

	sort.Ints(changed)
	assert.Equal(t, []int{0, 2}, changed)
	assert.Equal(t, -6.0, dst.GetByIndex(0).GetValue())
	assert.Equal(t, 100.0, dst.GetByIndex(1).GetValue())
	assert.Equal(t, 1.0, dst.GetByIndex(2).GetValue())
}

func TestLoadIgnoresUnknownAndClamps(t *testing.T) {
	data, err := cbor.Marshal(&Snapshot{
		Version: Version,
		Plugin:  uri,
		Values:  map[string]float64{"Gain": 100, "Removed": 3},
	})
	require.NoError(t, err)

	r := newRegistry()
	require.NoError(t, NewManager(uri, r).Load(bytes.NewReader(data), nil))
	assert.Equal(t, 24.0, r.GetByIndex(0).GetValue())
}

func TestLoadRejects(t *testing.T) {
	other, err := cbor.Marshal(&Snapshot{Version: Version, Plugin: "http://example.com/other"})
	require.NoError(t, err)
	newer, err := cbor.Marshal(&Snapshot{Version: Version + 1, Plugin: uri})
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("LV2GO!")},
		{"empty", nil},
		{"other plugin", other},
		{"newer version", newer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewManager(uri, newRegistry()).Load(bytes.NewReader(tt.data), nil)
			assert.Error(t, err)
		})
	}
}

func TestCustomState(t *testing.T) {
	m := NewManager(uri, newRegistry())
	var loaded []byte
	m.SetCustomState(
		func() ([]byte, error) { return []byte("preset-a"), nil },
		func(data []byte) error { loaded = data; return nil },
	)

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))
	require.NoError(t, m.Load(&buf, nil))
	assert.Equal(t, []byte("preset-a"), loaded)
}

func TestLoadSkipsReadOnly(t *testing.T) {
	r := newRegistry()
	meter := param.New("Meter").Range(-60, 0).Default(-60).ReadOnly().Build()
	r.Add(meter)

	data, err := cbor.Marshal(&Snapshot{
		Version: Version,
		Plugin:  uri,
		Values:  map[string]float64{"Meter": -3, "Mix": 50},
	})
	require.NoError(t, err)

	var changed []int
	require.NoError(t, NewManager(uri, r).Load(bytes.NewReader(data), func(i int) { changed = append(changed, i) }))
	assert.Equal(t, []int{1}, changed)
	assert.Equal(t, -60.0, meter.GetValue())
	assert.Equal(t, 50.0, r.GetByIndex(1).GetValue())
}
