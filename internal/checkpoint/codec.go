package checkpoint

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/akeefe/tagdex/pkg/types"
)

// payloadSchema is incremented whenever the serialized layout changes so an
// old blob is rejected as corrupt instead of being misread
const payloadSchema uint16 = 1

// payload wraps the run state with a schema marker for safe invalidation
type payload struct {
	Schema uint16          `msgpack:"schema"`
	State  *types.RunState `msgpack:"state"`
}

// encodeState serializes a run state for storage
func encodeState(rs *types.RunState) ([]byte, error) {
	data, err := msgpack.Marshal(&payload{Schema: payloadSchema, State: rs})
	if err != nil {
		return nil, fmt.Errorf("failed to encode run state: %w", err)
	}
	return data, nil
}

// decodeState deserializes a stored blob. Any decode failure, schema
// mismatch, or validation failure is reported as ErrCorrupt.
func decodeState(data []byte) (*types.RunState, error) {
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if p.Schema != payloadSchema {
		return nil, fmt.Errorf("%w: schema %d, want %d", ErrCorrupt, p.Schema, payloadSchema)
	}
	if p.State == nil {
		return nil, fmt.Errorf("%w: empty state", ErrCorrupt)
	}
	if err := p.State.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p.State, nil
}
