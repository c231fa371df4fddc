// Package document defines the storage backend contract the indexing engine
// runs against, plus two implementations.
//
// The engine only ever sees the Document interface: an ordered mutable
// sequence of elements, a named-anchor registry for back-links, and a
// last-modified timestamp that drives the checkpoint staleness policy.
//
// # Implementations
//
// Memory holds elements in a slice and is the fixture backend for tests:
//
//	doc := document.NewMemory("journal",
//	    types.Heading(types.HeadingAnchor, "Jan 1"),
//	    types.Paragraph("Met with Bob #people"),
//	)
//
// File is a Markdown-backed document parsed line by line:
//
//	doc, err := document.OpenFile("journal.md")
//	...
//	err = doc.Flush() // write pending mutations back
//
// # Anchors
//
// Anchors bind a heading's literal text to its live position. Positions
// track element removals, and re-registering a name replaces the prior
// binding, so at most one live anchor exists per distinct heading text.
package document
