package plant

import "fmt"

// ConnectError reports that a telemetry session could not be established.
// Fatal to the query cycle; there is no partial result.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("plant: connect %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ReadError reports that a specific point could not be read or its value
// could not be decoded. Fatal to the query cycle: a verdict requires all
// six readings.
type ReadError struct {
	NodeID string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("plant: read %s: %v", e.NodeID, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
