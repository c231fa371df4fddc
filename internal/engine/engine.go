package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akeefe/tagdex/internal/budget"
	"github.com/akeefe/tagdex/internal/checkpoint"
	"github.com/akeefe/tagdex/internal/config"
	"github.com/akeefe/tagdex/internal/document"
	"github.com/akeefe/tagdex/internal/scanner"
	"github.com/akeefe/tagdex/internal/writer"
	"github.com/akeefe/tagdex/pkg/types"
)

// ErrIndexingInProgress is returned when an invocation is already running
// against the same document
var ErrIndexingInProgress = errors.New("indexing already in progress for this document")

// OpenFunc opens the document backend for a document ID
type OpenFunc func(docID string) (document.Document, error)

// Engine coordinates the indexing pipeline: gather -> checkpoint -> write.
// A single entry point, RunIndexing, either resumes an in-flight job from
// its checkpoint or starts a fresh one, and always leaves the document in a
// valid state.
type Engine struct {
	store checkpoint.Store
	open  OpenFunc
	cfg   config.Config

	// clockFor builds the per-phase suspension clock; tests replace it to
	// force suspensions deterministically
	clockFor func(limit time.Duration) *budget.Clock

	locks lockRegistry
}

// Result describes the outcome of one invocation
type Result struct {
	Phase     types.Phase
	Suspended bool
	Resumed   bool
	Stats     Stats
}

// Stats contains statistics about the invocation
type Stats struct {
	TagsFound    int
	EntriesFound int
	StaleRemoved int
	Duration     time.Duration
}

// New creates an engine over a checkpoint store and a document opener
func New(store checkpoint.Store, open OpenFunc, cfg config.Config) *Engine {
	return &Engine{
		store:    store,
		open:     open,
		cfg:      cfg,
		clockFor: budget.NewClock,
	}
}

// RunIndexing runs or resumes the indexing job for a document. It is
// idempotent to call repeatedly: each call picks up where the last one
// left off, and a completed job simply starts over from a fresh scan.
//
// Backend failures propagate without touching the checkpoint, so a future
// invocation retries from the last saved state.
func (e *Engine) RunIndexing(ctx context.Context, docID string) (*Result, error) {
	lock := e.locks.lockFor(docID)
	if !lock.TryAcquire() {
		return nil, ErrIndexingInProgress
	}
	defer lock.Release()

	doc, err := e.open(docID)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}

	start := time.Now()
	rs, resumed, err := e.loadState(ctx, docID, doc)
	if err != nil {
		return nil, err
	}

	if rs.Phase == types.PhaseGathering {
		clock := e.clockFor(e.cfg.Budget.Gather.Duration)
		suspended, err := scanner.New(e.cfg.Index.SectionName).Run(ctx, doc, rs, clock)
		if err != nil {
			return nil, err
		}
		if suspended {
			if err := e.saveCheckpoint(ctx, docID, doc, rs); err != nil {
				return nil, err
			}
			return e.result(rs, start, true, resumed), nil
		}

		// Gathering done: freeze the tag order and persist the completed
		// index before the writer starts mutating the document
		rs.BeginWriting()
		if err := e.saveCheckpoint(ctx, docID, doc, rs); err != nil {
			return nil, err
		}
	}

	if rs.Phase == types.PhaseWriting {
		clock := e.clockFor(e.cfg.Budget.Write.Duration)
		suspended, err := writer.New(e.cfg.Index.SectionName, e.cfg.Index.MaxEntryText, e.cfg.Index.FlushEvery).
			Run(ctx, doc, rs, clock)
		if err != nil {
			return nil, err
		}
		if suspended {
			if err := e.saveCheckpoint(ctx, docID, doc, rs); err != nil {
				return nil, err
			}
			return e.result(rs, start, true, resumed), nil
		}
	}

	// Complete: final flush, then discard all checkpoint artifacts
	if err := doc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush document: %w", err)
	}
	if err := e.store.Delete(ctx, docID); err != nil {
		return nil, fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return e.result(rs, start, false, resumed), nil
}

// loadState loads a resumable state or starts fresh. A missing checkpoint
// starts fresh; a corrupt one is logged, discarded, and starts fresh; a
// stale one (not strictly newer than the document) is ignored and will be
// overwritten by the next save.
func (e *Engine) loadState(ctx context.Context, docID string, doc document.Document) (*types.RunState, bool, error) {
	rs, savedAt, err := e.store.Load(ctx, docID)
	switch {
	case errors.Is(err, checkpoint.ErrNotFound):
		return types.NewRunState(), false, nil
	case errors.Is(err, checkpoint.ErrCorrupt):
		log.Printf("discarding corrupt checkpoint for %s: %v", docID, err)
		if derr := e.store.Delete(ctx, docID); derr != nil {
			return nil, false, fmt.Errorf("failed to discard corrupt checkpoint: %w", derr)
		}
		return types.NewRunState(), false, nil
	case err != nil:
		return nil, false, err
	}

	if !savedAt.After(doc.ModifiedAt()) {
		log.Printf("checkpoint for %s is stale (saved %s, document modified %s), starting fresh",
			docID, savedAt.Format(time.RFC3339), doc.ModifiedAt().Format(time.RFC3339))
		return types.NewRunState(), false, nil
	}
	if rs.Phase == types.PhaseComplete {
		return types.NewRunState(), false, nil
	}
	return rs, true, nil
}

// saveCheckpoint flushes the document, then persists the state. Flushing
// first keeps the checkpoint strictly newer than the document, so the next
// invocation honors it.
func (e *Engine) saveCheckpoint(ctx context.Context, docID string, doc document.Document, rs *types.RunState) error {
	if err := doc.Flush(); err != nil {
		return fmt.Errorf("failed to flush document before checkpoint: %w", err)
	}
	if err := e.store.Save(ctx, docID, rs); err != nil {
		return err
	}
	return nil
}

func (e *Engine) result(rs *types.RunState, start time.Time, suspended, resumed bool) *Result {
	return &Result{
		Phase:     rs.Phase,
		Suspended: suspended,
		Resumed:   resumed,
		Stats: Stats{
			TagsFound:    len(rs.TagIndex),
			EntriesFound: rs.TagIndex.EntryCount(),
			StaleRemoved: rs.RemovedCount,
			Duration:     time.Since(start),
		},
	}
}
