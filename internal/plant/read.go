package plant

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

// Points names the fixed points of interest on the plant server. Node IDs
// come from configuration, never from code: plants re-address their servers.
type Points struct {
	// TankNodes holds the level node for each tank; index i is tank i+1.
	TankNodes []string
	// MachineNodes maps machine name (mixer, reactor, filler, ...) to its
	// state node.
	MachineNodes map[string]string
}

// Validate checks that the point set covers the plant topology the
// evaluator expects.
func (p Points) Validate() error {
	if len(p.TankNodes) == 0 {
		return fmt.Errorf("plant: no tank nodes configured")
	}
	if len(p.MachineNodes) == 0 {
		return fmt.Errorf("plant: no machine nodes configured")
	}
	return nil
}

// Snapshot holds one query cycle's worth of decoded readings. The readings
// are taken concurrently on one session; slight temporal skew between
// points is accepted for feasibility planning.
type Snapshot struct {
	Tanks    []model.TankReading
	Machines []model.MachineReading
}

// ReadTanks reads and decodes every tank level concurrently.
// All reads must succeed; the first failure cancels the rest.
func ReadTanks(ctx context.Context, sess Session, nodes []string) ([]model.TankReading, error) {
	readings := make([]model.TankReading, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		g.Go(func() error {
			raw, err := sess.ReadValue(ctx, node)
			if err != nil {
				return err
			}
			level, err := DecodeTankLevel(raw)
			if err != nil {
				return &ReadError{NodeID: node, Err: err}
			}
			readings[i] = model.TankReading{TankID: i + 1, Level: level}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return readings, nil
}

// ReadMachines reads and decodes every machine state concurrently.
// Results are ordered by machine name so repeated reads of identical plant
// state produce structurally identical snapshots.
func ReadMachines(ctx context.Context, sess Session, nodes map[string]string) ([]model.MachineReading, error) {
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	readings := make([]model.MachineReading, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		node := nodes[name]
		g.Go(func() error {
			raw, err := sess.ReadValue(ctx, node)
			if err != nil {
				return err
			}
			state, err := DecodeMachineState(raw)
			if err != nil {
				return &ReadError{NodeID: node, Err: err}
			}
			readings[i] = model.MachineReading{Name: name, State: state}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return readings, nil
}

// ReadSnapshot reads all configured points concurrently on one session and
// returns only once every read has completed: the join barrier the
// evaluator depends on.
func ReadSnapshot(ctx context.Context, sess Session, pts Points) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tanks, err := ReadTanks(ctx, sess, pts.TankNodes)
		if err != nil {
			return err
		}
		snap.Tanks = tanks
		return nil
	})
	g.Go(func() error {
		machines, err := ReadMachines(ctx, sess, pts.MachineNodes)
		if err != nil {
			return err
		}
		snap.Machines = machines
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
