package plant

import (
	"fmt"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

// DecodeTankLevel coerces a raw telemetry value into a level in litres.
// OPC UA servers publish analog values under several numeric types
// depending on the tag configuration, so all of them are accepted.
// Non-numeric values fail: a tank level that is not a number is a broken
// point, not a reading.
func DecodeTankLevel(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("tank level has non-numeric type %T", raw)
	}
}

// DecodeMachineState coerces a raw telemetry value into a MachineState.
// Every integer maps to exactly one state: codes outside the documented
// range come back as unknown states, never as errors. Only a non-integer
// wire value fails.
func DecodeMachineState(raw any) (model.MachineState, error) {
	switch v := raw.(type) {
	case int64:
		return model.MachineState(v), nil
	case int32:
		return model.MachineState(v), nil
	case int16:
		return model.MachineState(v), nil
	case int8:
		return model.MachineState(v), nil
	case uint64:
		return model.MachineState(v), nil
	case uint32:
		return model.MachineState(v), nil
	case uint16:
		return model.MachineState(v), nil
	case byte:
		return model.MachineState(v), nil
	case int:
		return model.MachineState(v), nil
	default:
		return 0, fmt.Errorf("machine state has non-integer type %T", raw)
	}
}
