// Package checkpoint persists run state between invocations so an indexing
// job can suspend under a time budget and resume later.
//
// The store is a SQLite-backed key-value table: one row per document,
// holding the phase, a msgpack-encoded RunState blob behind a schema
// version, and the save timestamp.
//
//	store, err := checkpoint.NewSQLiteStore("~/.tagdex/checkpoints.db")
//	...
//	rs, savedAt, err := store.Load(ctx, docID)
//	switch {
//	case errors.Is(err, checkpoint.ErrNotFound):
//	    rs = types.NewRunState() // fresh start
//	case errors.Is(err, checkpoint.ErrCorrupt):
//	    _ = store.Delete(ctx, docID) // discard and start fresh
//	    rs = types.NewRunState()
//	}
//
// # Staleness
//
// The save timestamp is the store's source of truth for resumption: a
// checkpoint is honored only when it is strictly newer than the document's
// last-modified time. The store does not enforce this itself; the engine
// compares the timestamps and starts fresh on a stale checkpoint.
//
// # Drivers
//
// Two SQLite drivers are selected by build tag: modernc.org/sqlite (pure
// Go, the default) and mattn/go-sqlite3 (cgo, behind the cgo_sqlite tag).
package checkpoint
