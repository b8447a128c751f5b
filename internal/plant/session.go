// Package plant reads live telemetry from the batch plant's OPC UA server:
// raw-material tank levels and machine state codes.
//
// A Session is exclusively owned by one in-flight query cycle. It is opened
// by the assessment façade, used for exactly one set of reads, and closed on
// every exit path. No pooling, no implicit reconnection, no retries: a read
// failure propagates immediately and the caller decides whether to abort.
package plant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopcua/opcua"
	"github.com/gopcua/opcua/ua"
)

// Session is one open connection to the plant's live-data interface.
// Close is idempotent and safe to call on an already-closed session.
type Session interface {
	// ReadValue reads the current value of the named point. The returned
	// value is the raw wire value; callers decode it with DecodeTankLevel
	// or DecodeMachineState.
	ReadValue(ctx context.Context, nodeID string) (any, error)
	Close(ctx context.Context) error
}

// Dialer establishes telemetry sessions. The assessment façade depends on
// this interface so tests can substitute a counting fake.
type Dialer interface {
	Dial(ctx context.Context) (Session, error)
}

// Client dials anonymous OPC UA sessions against a fixed endpoint.
type Client struct {
	endpoint string
	logger   *slog.Logger
}

// NewClient creates a Client for the given opc.tcp endpoint URL.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	return &Client{endpoint: endpoint, logger: logger}
}

// Dial establishes an anonymous, unsecured session. The plant server does
// not offer authenticated endpoints; credentials, if ever introduced,
// belong in config rather than here.
func (c *Client) Dial(ctx context.Context) (Session, error) {
	client, err := opcua.NewClient(c.endpoint,
		opcua.SecurityPolicy("None"),
		opcua.SecurityModeString("None"),
		opcua.AuthAnonymous(),
	)
	if err != nil {
		return nil, &ConnectError{Endpoint: c.endpoint, Err: err}
	}
	if err := client.Connect(ctx); err != nil {
		return nil, &ConnectError{Endpoint: c.endpoint, Err: err}
	}
	c.logger.Debug("plant: session established", "endpoint", c.endpoint)
	return &opcuaSession{client: client, logger: c.logger}, nil
}

// opcuaSession wraps a connected gopcua client. OPC UA request/response is
// multiplexed over one secure channel, so concurrent ReadValue calls on a
// single session are safe.
type opcuaSession struct {
	client *opcua.Client
	logger *slog.Logger
	once   sync.Once
}

func (s *opcuaSession) ReadValue(ctx context.Context, nodeID string) (any, error) {
	id, err := ua.ParseNodeID(nodeID)
	if err != nil {
		return nil, &ReadError{NodeID: nodeID, Err: fmt.Errorf("parse node id: %w", err)}
	}

	resp, err := s.client.Read(ctx, &ua.ReadRequest{
		NodesToRead:        []*ua.ReadValueID{{NodeID: id}},
		TimestampsToReturn: ua.TimestampsToReturnNeither,
	})
	if err != nil {
		return nil, &ReadError{NodeID: nodeID, Err: err}
	}
	if len(resp.Results) != 1 {
		return nil, &ReadError{NodeID: nodeID, Err: fmt.Errorf("server returned %d results, want 1", len(resp.Results))}
	}
	result := resp.Results[0]
	if result.Status != ua.StatusOK {
		return nil, &ReadError{NodeID: nodeID, Err: fmt.Errorf("bad status: %v", result.Status)}
	}
	if result.Value == nil {
		return nil, &ReadError{NodeID: nodeID, Err: fmt.Errorf("null value")}
	}
	return result.Value.Value(), nil
}

func (s *opcuaSession) Close(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		err = s.client.Close(ctx)
		if err != nil {
			s.logger.Warn("plant: close session", "error", err)
		}
	})
	return err
}
