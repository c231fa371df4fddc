package checkpoint

import (
	"context"
	"errors"
	"time"

	"github.com/akeefe/tagdex/pkg/types"
)

var (
	// ErrNotFound is returned when no checkpoint exists for a document
	ErrNotFound = errors.New("checkpoint not found")
	// ErrCorrupt is returned when a persisted state fails to decode or
	// validate. Callers recover by discarding the checkpoint and starting
	// fresh.
	ErrCorrupt = errors.New("checkpoint corrupt")
)

// Store persists run state between invocations, keyed by document identity.
// Each key carries a last-modified timestamp; the engine honors a checkpoint
// only when that timestamp is strictly newer than the document's own.
type Store interface {
	// Load returns the persisted state for a document and the time it was
	// last saved. Returns ErrNotFound when absent and ErrCorrupt when the
	// blob fails to decode.
	Load(ctx context.Context, docID string) (*types.RunState, time.Time, error)

	// Save persists the state for a document, replacing any prior state
	Save(ctx context.Context, docID string, rs *types.RunState) error

	// Delete discards the state for a document. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, docID string) error

	// Close releases the underlying storage
	Close() error
}
