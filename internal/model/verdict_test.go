package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerdictStableFieldNames(t *testing.T) {
	// The narration layer keys on these names; renaming any of them is a
	// breaking change to an external contract.
	v := FeasibilityVerdict{
		ProductName:         "Product A",
		RequestedBatches:    3,
		RecipeFound:         true,
		PerMaterial:         map[string]MaterialCheck{"Water": {TankID: 1, Required: 30, Available: 40, Sufficient: true}},
		PerMachine:          map[string]MachineCheck{"mixer": {State: StateRunning, Operational: true}},
		SufficientMaterials: true,
		MachinesOperational: true,
		Decision:            true,
	}

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	for _, key := range []string{
		"product_name", "requested_batches", "recipe_found",
		"per_material", "per_machine",
		"sufficient_materials", "machines_operational", "decision",
	} {
		assert.Contains(t, got, key)
	}
}

func TestVerdictSummaryMaps(t *testing.T) {
	v := FeasibilityVerdict{
		PerMaterial: map[string]MaterialCheck{
			"Water": {TankID: 1, Available: 40},
			"Acid":  {TankID: 2, Available: 20},
		},
		PerMachine: map[string]MachineCheck{
			"mixer":   {State: StateRunning, Operational: true},
			"reactor": {State: MachineState(12)},
		},
	}

	assert.Equal(t, map[string]float64{"Water": 40, "Acid": 20}, v.MaterialAvailability())
	assert.Equal(t, map[string]string{"mixer": "running", "reactor": "unknown_state_12"}, v.MachineStates())
}
