// Package model defines the domain types shared across the plant telemetry,
// recipe storage, and assessment layers.
package model

import "fmt"

// MachineState is the categorical operational status of a piece of production
// equipment, as published by the plant's OPC UA server. The known codes are
// 0..7; any other value is carried as-is and rendered as an unknown state.
// Plants introduce new state codes without warning, so unrecognized codes are
// data, not errors.
type MachineState int64

const (
	StateDisabled          MachineState = 0
	StateIdle              MachineState = 1
	StateRunning           MachineState = 2
	StateStarved           MachineState = 3
	StateBlocked           MachineState = 4
	StatePlannedDowntime   MachineState = 5
	StateUnplannedDowntime MachineState = 6
	StateOther             MachineState = 7
)

var stateNames = map[MachineState]string{
	StateDisabled:          "disabled",
	StateIdle:              "idle",
	StateRunning:           "running",
	StateStarved:           "starved",
	StateBlocked:           "blocked",
	StatePlannedDowntime:   "planned_downtime",
	StateUnplannedDowntime: "unplanned_downtime",
	StateOther:             "other",
}

// Known reports whether s is one of the eight documented state codes.
func (s MachineState) Known() bool {
	_, ok := stateNames[s]
	return ok
}

// String renders the state the way the plant operators see it:
// the lowercase code name, or "unknown_state_<code>" for codes
// outside the documented range.
func (s MachineState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown_state_%d", int64(s))
}

// Operational reports whether the state permits scheduling production.
//
// Policy: running, idle, starved, and blocked count as operational;
// starvation and blocking are transient flow conditions, not outages.
// Disabled, both downtime states, other, and unrecognized codes do not.
// This is a planning policy, not a protocol fact; see DESIGN.md.
func (s MachineState) Operational() bool {
	switch s {
	case StateRunning, StateIdle, StateStarved, StateBlocked:
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the state as its string rendering so the verdict's
// machine_states map stays stable for the narration layer.
func (s MachineState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// TankReading is a point-in-time level reading of one raw-material tank.
// Immutable; created once per query cycle and discarded after evaluation.
type TankReading struct {
	TankID int     `json:"tank_id"`
	Level  float64 `json:"level_litres"`
}

// MachineReading is a point-in-time state reading of one machine.
type MachineReading struct {
	Name  string       `json:"machine"`
	State MachineState `json:"state"`
}
