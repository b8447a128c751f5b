package plant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

func TestDecodeTankLevel(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"float64", 42.5, 42.5},
		{"float32", float32(12.25), 12.25},
		{"int32", int32(100), 100},
		{"int64", int64(0), 0},
		{"uint16", uint16(7), 7},
		{"int", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTankLevel(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTankLevelNonNumeric(t *testing.T) {
	for _, raw := range []any{"40.0", nil, true, []byte{1}} {
		_, err := DecodeTankLevel(raw)
		assert.Error(t, err, "raw %T", raw)
	}
}

func TestDecodeMachineState(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want model.MachineState
	}{
		{"int32 running", int32(2), model.StateRunning},
		{"int64 disabled", int64(0), model.StateDisabled},
		{"uint16 other", uint16(7), model.StateOther},
		{"byte idle", byte(1), model.StateIdle},
		{"unknown positive", int32(13), model.MachineState(13)},
		{"unknown negative", int64(-4), model.MachineState(-4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeMachineState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeMachineStateNonInteger(t *testing.T) {
	for _, raw := range []any{"2", 2.5, nil, true} {
		_, err := DecodeMachineState(raw)
		assert.Error(t, err, "raw %T", raw)
	}
}
