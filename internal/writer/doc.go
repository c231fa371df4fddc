// Package writer implements the writing phase of the indexing engine.
//
// The writer consumes the completed TagIndex: under the index section
// heading it emits, for each tag in sorted order, a level-2 tag heading
// followed by the tag's entries in reverse of collection order. Each entry
// is a bold anchor line (linked when the anchor resolves), the captured
// elements with tag tokens stripped and text truncated at a word boundary,
// and a blank separator.
//
// Writes are batched: the document is flushed whenever the change counter
// crosses the flush threshold, bounding the size of any single pending
// write batch. The writer suspends on an expired budget before starting a
// tag or an entry; it persists nothing itself, since cursor state lives in
// the RunState the caller checkpoints.
package writer
