// Package types provides shared type definitions for the tagdex engine.
//
// This package defines the domain types used across components: document
// elements, tag entries, the tag index built during gathering, and the
// resumable run state persisted between invocations.
//
// # Core Types
//
// Element is one atomic unit of document content, captured by value:
//
//	el := types.Paragraph("Met with Bob #people")
//	heading := types.Heading(types.HeadingAnchor, "Jan 1")
//
// TagEntry ties a tag occurrence to its anchor and captured content:
//
//	entry := types.TagEntry{
//	    Tag:      "#people",
//	    Anchor:   "Jan 1",
//	    Elements: []types.Element{el},
//	}
//
// # Run State
//
// RunState carries everything needed to resume an indexing job after a
// cooperative suspension:
//
//	rs := types.NewRunState()        // phase: gathering
//	rs.BeginWriting()                // phase: writing, tags sorted
//
// The state is serialized by the checkpoint store between invocations and
// discarded once the job completes.
//
// # Validation
//
// Loaded states and captured elements implement validation methods:
//
//	if err := rs.Validate(); err != nil {
//	    // treat as a corrupt checkpoint, start fresh
//	}
package types
