// Package assessment reconciles live plant telemetry with the recipe
// database into a feasibility verdict: can the plant produce N batches of a
// product right now?
//
// Evaluate is the pure core; Service is the query façade that owns the
// telemetry session for exactly one query cycle.
package assessment

import (
	"fmt"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

// MissingTankDataError reports a consistency fault between the recipe table
// and the live plant topology: a recipe line draws from a tank the telemetry
// set does not cover. Surfaced, never defaulted to zero availability: a
// silent zero would turn a configuration mismatch into a plausible-looking
// "insufficient materials" verdict.
type MissingTankDataError struct {
	MaterialName string
	TankID       int
}

func (e *MissingTankDataError) Error() string {
	return fmt.Sprintf("assessment: recipe line %q references tank %d, which has no telemetry reading",
		e.MaterialName, e.TankID)
}

// Evaluate computes the feasibility verdict for producing batches of the
// recipe's product given the current tank and machine readings.
//
// Pure and total over valid inputs; its only failure mode is
// MissingTankDataError. No I/O, no retries, no clock.
func Evaluate(recipe model.Recipe, batches int, tanks []model.TankReading, machines []model.MachineReading) (model.FeasibilityVerdict, error) {
	levels := make(map[int]float64, len(tanks))
	for _, t := range tanks {
		levels[t.TankID] = t.Level
	}

	perMaterial := make(map[string]model.MaterialCheck, len(recipe.Lines))
	sufficient := true
	for _, line := range recipe.Lines {
		available, ok := levels[line.TankID]
		if !ok {
			return model.FeasibilityVerdict{}, &MissingTankDataError{
				MaterialName: line.MaterialName,
				TankID:       line.TankID,
			}
		}
		required := line.QuantityPerBatch * float64(batches)
		check := model.MaterialCheck{
			TankID:    line.TankID,
			Required:  required,
			Available: available,
			// Exact equality is enough: the last litre counts.
			Sufficient: available >= required,
		}
		perMaterial[line.MaterialName] = check
		sufficient = sufficient && check.Sufficient
	}

	perMachine := make(map[string]model.MachineCheck, len(machines))
	operational := true
	for _, m := range machines {
		check := model.MachineCheck{
			State:       m.State,
			Operational: m.State.Operational(),
		}
		perMachine[m.Name] = check
		operational = operational && check.Operational
	}

	found := recipe.Found()
	return model.FeasibilityVerdict{
		ProductName:         recipe.ProductName,
		RequestedBatches:    batches,
		RecipeFound:         found,
		PerMaterial:         perMaterial,
		PerMachine:          perMachine,
		SufficientMaterials: sufficient,
		MachinesOperational: operational,
		Decision:            sufficient && operational && found,
	}, nil
}
