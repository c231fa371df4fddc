// Package engine coordinates the two-phase indexing pipeline.
//
// An invocation loads or initializes the run state for a document, then
// drives the current phase under its time budget:
//
//	eng := engine.New(store, openFunc, cfg)
//
//	res, err := eng.RunIndexing(ctx, docID)
//	if res.Suspended {
//	    // state persisted; call RunIndexing again later to continue
//	}
//
// While gathering, the scanner traverses the document and builds the tag
// index. When it finishes, the tag order is frozen, the index is persisted,
// and the writer rebuilds the index section under the same budget and
// resume discipline. On full completion all checkpoint artifacts are
// discarded, so the visible result is identical whether the job ran in one
// pass or across several resumed passes.
//
// # Checkpoint policy
//
// A checkpoint is honored only when strictly newer than the document's
// last-modified timestamp; otherwise the job starts fresh. Corrupt
// checkpoints are discarded and logged. Backend failures propagate without
// deleting the checkpoint, so a later invocation can retry.
//
// # Concurrency
//
// Execution is single-threaded and cooperative. A per-document
// non-blocking lock rejects a second invocation against the same document;
// different documents may be indexed concurrently.
package engine
