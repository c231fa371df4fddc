// Package scanner implements the gathering phase of the indexing engine.
//
// The scanner makes a single pass over the document's top-level elements.
// Level-3 headings become anchors for back-links; the configured level-1
// heading marks the start of the machine-owned index region, whose stale
// content is removed for rebuild; every other element under an active
// anchor is scanned for tag tokens.
//
// A tag with a span suffix ("#goals_+2") opens a pending span that absorbs
// the next N elements into its entry before the entry is finalized.
// Gathering suspends on an expired time budget, but only between elements
// and only while no span is open, so a multi-element entry is never split
// across invocations.
package scanner
