package plant

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmanditereza/industrial-ai-agent/internal/model"
)

// fakeSession serves canned values per node ID. Safe for the concurrent
// reads the production code issues.
type fakeSession struct {
	mu     sync.Mutex
	values map[string]any
	errs   map[string]error
	reads  int
	closed int
}

func (f *fakeSession) ReadValue(ctx context.Context, nodeID string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if err, ok := f.errs[nodeID]; ok {
		return nil, err
	}
	v, ok := f.values[nodeID]
	if !ok {
		return nil, &ReadError{NodeID: nodeID, Err: errors.New("no such node")}
	}
	return v, nil
}

func (f *fakeSession) Close(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func testPoints() Points {
	return Points{
		TankNodes: []string{"ns=2;i=328", "ns=2;i=352", "ns=2;i=376"},
		MachineNodes: map[string]string{
			"mixer":   "ns=3;s=MixerState",
			"reactor": "ns=3;s=Reactor1State",
			"filler":  "ns=3;s=Filler1State",
		},
	}
}

func healthySession() *fakeSession {
	return &fakeSession{values: map[string]any{
		"ns=2;i=328":           40.0,
		"ns=2;i=352":           20.0,
		"ns=2;i=376":           float32(55.5),
		"ns=3;s=MixerState":    int32(2),
		"ns=3;s=Reactor1State": int32(6),
		"ns=3;s=Filler1State":  int32(1),
	}}
}

func TestReadSnapshot(t *testing.T) {
	sess := healthySession()
	snap, err := ReadSnapshot(context.Background(), sess, testPoints())
	require.NoError(t, err)

	assert.Equal(t, []model.TankReading{
		{TankID: 1, Level: 40.0},
		{TankID: 2, Level: 20.0},
		{TankID: 3, Level: 55.5},
	}, snap.Tanks)

	// Machines come back sorted by name so repeated snapshots of the same
	// plant state are structurally identical.
	assert.Equal(t, []model.MachineReading{
		{Name: "filler", State: model.StateIdle},
		{Name: "mixer", State: model.StateRunning},
		{Name: "reactor", State: model.StateUnplannedDowntime},
	}, snap.Machines)

	assert.Equal(t, 6, sess.reads)
}

func TestReadSnapshotReadFailure(t *testing.T) {
	sess := healthySession()
	sess.errs = map[string]error{"ns=2;i=352": &ReadError{NodeID: "ns=2;i=352", Err: errors.New("timeout")}}

	_, err := ReadSnapshot(context.Background(), sess, testPoints())
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "ns=2;i=352", readErr.NodeID)
}

func TestReadSnapshotDecodeFailure(t *testing.T) {
	sess := healthySession()
	sess.values["ns=3;s=MixerState"] = "running" // strings are not state codes

	_, err := ReadSnapshot(context.Background(), sess, testPoints())
	require.Error(t, err)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, "ns=3;s=MixerState", readErr.NodeID)
}

func TestReadTanksTankIDsFollowConfigOrder(t *testing.T) {
	sess := healthySession()
	tanks, err := ReadTanks(context.Background(), sess, testPoints().TankNodes)
	require.NoError(t, err)
	for i, tank := range tanks {
		assert.Equal(t, i+1, tank.TankID)
	}
}
