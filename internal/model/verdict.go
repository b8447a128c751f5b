package model

// MaterialCheck is the per-material outcome of a feasibility evaluation.
type MaterialCheck struct {
	TankID     int     `json:"tank_id"`
	Required   float64 `json:"required_litres"`
	Available  float64 `json:"available_litres"`
	Sufficient bool    `json:"sufficient"`
}

// MachineCheck is the per-machine outcome of a feasibility evaluation.
type MachineCheck struct {
	State       MachineState `json:"state"`
	Operational bool         `json:"operational"`
}

// FeasibilityVerdict is the structured answer to "can the plant produce
// N batches of this product right now?". Constructed fresh per query and
// never mutated afterwards; the core keeps no history of verdicts.
//
// The decision, sufficient_materials, machine_states, and
// material_availability field names are a stable contract with the
// narration layer and must not change. Reasoning text is produced by that
// layer, never here.
type FeasibilityVerdict struct {
	ProductName      string `json:"product_name"`
	RequestedBatches int    `json:"requested_batches"`

	// RecipeFound distinguishes "no recipe on file" from "feasible":
	// an empty recipe makes sufficiency trivially true, but the decision
	// is still no.
	RecipeFound bool `json:"recipe_found"`

	PerMaterial map[string]MaterialCheck `json:"per_material"`
	PerMachine  map[string]MachineCheck  `json:"per_machine"`

	SufficientMaterials bool `json:"sufficient_materials"`
	MachinesOperational bool `json:"machines_operational"`

	// Decision = SufficientMaterials && MachinesOperational && RecipeFound.
	Decision bool `json:"decision"`
}

// MachineStates returns the machine → state-string mapping in the shape the
// narration layer consumes.
func (v FeasibilityVerdict) MachineStates() map[string]string {
	out := make(map[string]string, len(v.PerMachine))
	for name, check := range v.PerMachine {
		out[name] = check.State.String()
	}
	return out
}

// MaterialAvailability returns the material → available-litres mapping in
// the shape the narration layer consumes.
func (v FeasibilityVerdict) MaterialAvailability() map[string]float64 {
	out := make(map[string]float64, len(v.PerMaterial))
	for name, check := range v.PerMaterial {
		out[name] = check.Available
	}
	return out
}
